package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lib/pq"
)

// maintenanceDB is the database every Postgres server ships with. The
// service database is created from a connection to it.
const maintenanceDB = "postgres"

// EnsureDatabase creates the database named in connString when the server
// does not have it yet. It reports whether a database was created.
func EnsureDatabase(ctx context.Context, connString string) (bool, error) {
	params, err := parseConnParams(connString)
	if err != nil {
		return false, err
	}
	name := params.get("dbname")
	if name == maintenanceDB {
		return false, nil
	}

	admin, err := sql.Open("postgres", params.with("dbname", maintenanceDB))
	if err != nil {
		return false, fmt.Errorf("failed to open maintenance database: %w", err)
	}
	defer admin.Close()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return createIfMissing(ctx, admin, name)
}

func createIfMissing(ctx context.Context, admin *sql.DB, name string) (bool, error) {
	var exists bool
	err := admin.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up database %s: %w", name, err)
	}
	if exists {
		return false, nil
	}

	if _, err := admin.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		// Another replica starting at the same time may have created it.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "duplicate_database" {
			return false, nil
		}
		return false, fmt.Errorf("failed to create database %s: %w", name, err)
	}
	log.Printf("Created database %s", name)
	return true, nil
}

// connParams is a connection string in lib/pq key=value form.
type connParams []string

func parseConnParams(connString string) (connParams, error) {
	connString = strings.TrimSpace(connString)
	if strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://") {
		kv, err := pq.ParseURL(connString)
		if err != nil {
			return nil, fmt.Errorf("invalid database url: %w", err)
		}
		connString = kv
	}
	params := connParams(strings.Fields(connString))
	if params.get("dbname") == "" {
		return nil, errors.New("database url does not name a database")
	}
	return params, nil
}

func (p connParams) get(key string) string {
	for _, pair := range p {
		if k, v, ok := strings.Cut(pair, "="); ok && k == key {
			return strings.Trim(v, "'")
		}
	}
	return ""
}

// with returns the connection string with key set to value.
func (p connParams) with(key, value string) string {
	out := make([]string, 0, len(p)+1)
	found := false
	for _, pair := range p {
		if k, _, _ := strings.Cut(pair, "="); k == key {
			pair = key + "=" + value
			found = true
		}
		out = append(out, pair)
	}
	if !found {
		out = append(out, key+"="+value)
	}
	return strings.Join(out, " ")
}
