// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package duelstore is the sqlite-backed default implementation of the duel
// recorder and the rating provider. Both sides of the matchmaking core only
// see the interfaces; any other persistence can be swapped in.
package duelstore

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-pvp-duel/pkg/common"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Open opens (or creates) the duel database at path and brings the schema up
// to date. An empty path falls back to the DUEL_DB_PATH environment variable.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = common.GetEnv("DUEL_DB_PATH", "duel.db")
	}
	logrus.Infof("opening duel database at %s", path)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duel database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	return nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"synchronous", "NORMAL"},
		{"busy_timeout", "5000"},
		{"foreign_keys", "ON"},
	}

	for _, pragma := range pragmas {
		query := fmt.Sprintf("PRAGMA %s = %s", pragma.name, pragma.value)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to set PRAGMA %s: %w", pragma.name, err)
		}
	}

	return nil
}
