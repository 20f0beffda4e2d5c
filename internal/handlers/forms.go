package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"fyyur/internal/models"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

// startTimeLayouts are tried in order when parsing the show form.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

// newValidator returns a validator that reports fields by their form name
// and knows the genre, state and phone vocabularies.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return models.IsGenre(fl.Field().String())
	})
	_ = v.RegisterValidation("us_state", func(fl validator.FieldLevel) bool {
		return models.IsState(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return models.IsPhone(fl.Field().String())
	})
	return v
}

// newFormDecoder returns a decoder for the listing forms. Text is trimmed,
// checkboxes accept the values browsers and WTForms-style forms send, and
// start times are read with startTimeLayouts.
func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return strings.TrimSpace(vals[0]), nil
	}, "")
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		switch strings.ToLower(strings.TrimSpace(vals[0])) {
		case "y", "yes", "on", "true", "1":
			return true, nil
		}
		return false, nil
	}, false)
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		raw := strings.TrimSpace(vals[0])
		if raw == "" {
			return 0, nil
		}
		return strconv.Atoi(raw)
	}, 0)
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		raw := strings.TrimSpace(vals[0])
		if raw == "" {
			return time.Time{}, nil
		}
		return parseStartTime(raw)
	}, time.Time{})
	return d
}

func (h *BaseHandler) decodeVenueForm(r *http.Request) (models.VenueRequest, error) {
	var req models.VenueRequest
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	if err := h.forms.Decode(&req, r.PostForm); err != nil {
		return req, err
	}
	req.Genres = models.NormalizeGenres(req.Genres)
	return req, nil
}

func (h *BaseHandler) decodeArtistForm(r *http.Request) (models.ArtistRequest, error) {
	var req models.ArtistRequest
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	if err := h.forms.Decode(&req, r.PostForm); err != nil {
		return req, err
	}
	req.Genres = models.NormalizeGenres(req.Genres)
	return req, nil
}

// decodeShowForm parses the show form. Values that cannot be converted are
// reported in the returned map and left zero in the request.
func (h *BaseHandler) decodeShowForm(r *http.Request) (models.ShowRequest, map[string]string, error) {
	var req models.ShowRequest
	if err := r.ParseForm(); err != nil {
		return req, nil, err
	}

	fieldErrs := map[string]string{}
	if err := h.forms.Decode(&req, r.PostForm); err != nil {
		var decodeErrs form.DecodeErrors
		if !errors.As(err, &decodeErrs) {
			return req, nil, err
		}
		for field := range decodeErrs {
			switch field {
			case "start_time":
				fieldErrs[field] = "Not a valid datetime value."
			default:
				fieldErrs[field] = "Must be a number."
			}
		}
	}

	return req, fieldErrs, nil
}

func parseStartTime(raw string) (time.Time, error) {
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", raw)
}

// validationErrors turns validator output into one message per form field.
// The first failure of a field wins.
func validationErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid form submission."
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "url":
		return "Invalid URL."
	case "us_state":
		return "Choose a valid state."
	case "phone":
		return "Invalid phone number."
	case "genre":
		return "Choose genres from the list."
	case "min":
		return "Choose at least one genre."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "gt":
		return "Must be a positive number."
	default:
		return "Invalid value."
	}
}
