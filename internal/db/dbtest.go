package db

import (
	"errors"
	"os"
)

// opens TEST_DATABASE_URL, applies the migrations and returns a Store on it.
func InitTestDB(migrationsPath string) (Store, error) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		return nil, errors.New("TEST_DATABASE_URL environment variable is not set")
	}

	if err := Init(dbURL); err != nil {
		return nil, err
	}

	if err := RunMigrations(DB, migrationsPath); err != nil {
		return nil, err
	}

	if _, err := DB.Exec(`TRUNCATE generation_runs RESTART IDENTITY;`); err != nil {
		return nil, err
	}
	return NewStore(DB), nil
}
