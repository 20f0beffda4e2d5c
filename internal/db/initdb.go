// internal/db/initdb.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

var dbNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CreateDatabaseIfNotExists connects to the server's maintenance database
// and creates the database named in connString when it is missing.
func CreateDatabaseIfNotExists(ctx context.Context, connString string, logger *zap.Logger) error {
	dbName, adminConn, err := maintenanceDSN(connString)
	if err != nil {
		return err
	}
	if !dbNamePattern.MatchString(dbName) {
		return fmt.Errorf("invalid database name %q", dbName)
	}

	admin, err := sql.Open("postgres", adminConn)
	if err != nil {
		return fmt.Errorf("failed to open maintenance connection: %w", err)
	}
	defer admin.Close()

	var exists bool
	err = admin.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`, dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to look up database %s: %w", dbName, err)
	}
	if exists {
		return nil
	}

	logger.Info("Creating database", zap.String("database", dbName))
	// CREATE DATABASE takes no bind parameters.
	if _, err := admin.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", dbName, err)
	}
	logger.Info("Database created", zap.String("database", dbName))
	return nil
}

// maintenanceDSN returns the database named by dsn and a key/value DSN that
// reaches the "postgres" database of the same server with the same
// credentials. URL DSNs are converted with pq.ParseURL first. libpq keeps
// the last value of a repeated key, so appending dbname overrides it.
func maintenanceDSN(dsn string) (string, string, error) {
	kv := dsn
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		parsed, err := pq.ParseURL(dsn)
		if err != nil {
			return "", "", fmt.Errorf("failed to parse database url: %w", err)
		}
		kv = parsed
	}

	opts, err := parseKeywordValues(kv)
	if err != nil {
		return "", "", err
	}
	name, ok := opts["dbname"]
	if !ok || name == "" {
		return "", "", errors.New("connection string does not name a database")
	}
	return name, kv + " dbname=postgres", nil
}

// parseKeywordValues splits a libpq keyword/value connection string.
// Values may be single-quoted; a backslash escapes the next character
// inside or outside quotes. Later keys override earlier ones.
func parseKeywordValues(s string) (map[string]string, error) {
	opts := map[string]string{}
	rs := []rune(s)
	i := 0
	skipSpace := func() {
		for i < len(rs) && unicode.IsSpace(rs[i]) {
			i++
		}
	}

	for {
		skipSpace()
		if i >= len(rs) {
			return opts, nil
		}

		start := i
		for i < len(rs) && rs[i] != '=' && !unicode.IsSpace(rs[i]) {
			i++
		}
		key := string(rs[start:i])
		skipSpace()
		if i >= len(rs) || rs[i] != '=' {
			return nil, fmt.Errorf("missing \"=\" after %q in connection string", key)
		}
		i++
		skipSpace()

		var val strings.Builder
		if i < len(rs) && rs[i] == '\'' {
			i++
			closed := false
			for i < len(rs) {
				switch rs[i] {
				case '\\':
					i++
					if i < len(rs) {
						val.WriteRune(rs[i])
					}
				case '\'':
					closed = true
				default:
					val.WriteRune(rs[i])
				}
				i++
				if closed {
					break
				}
			}
			if !closed {
				return nil, fmt.Errorf("unterminated quoted value for %q in connection string", key)
			}
		} else {
			for i < len(rs) && !unicode.IsSpace(rs[i]) {
				if rs[i] == '\\' && i+1 < len(rs) {
					i++
				}
				val.WriteRune(rs[i])
				i++
			}
		}
		opts[key] = val.String()
	}
}
