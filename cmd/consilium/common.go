package main

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/voletro/consilium/internal/db"
)

func openDB() (*sql.DB, func(), error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, func() {}, err
	}
	stateDir := filepath.Join(cwd, ".consilium")
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, func() {}, err
	}
	storeDB, err := db.Open(filepath.Join(stateDir, "consilium.db"))
	if err != nil {
		return nil, func() {}, err
	}
	return storeDB, func() { _ = storeDB.Close() }, nil
}
