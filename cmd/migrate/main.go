package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/okruhlystol/catalog/internal/config"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
}

var (
	down = flag.Bool("down", false, "run migration down")
	dir  = flag.String("dir", "db/migrations", "migrations directory, relative to the working directory")
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("error opening db connection: %w", err)
	}
	defer db.Close()
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("error invoking WithInstance: %w", err)
	}
	abs, err := filepath.Abs(*dir)
	if err != nil {
		return fmt.Errorf("error resolving migrations dir: %w", err)
	}
	source := "file://" + filepath.ToSlash(abs)
	log.WithField("source", source).Info("using migrations")
	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("NewWithDatabaseInstance error: %w", err)
	}

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error migrating (down=%t): %w", *down, err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading schema version: %w", err)
	}
	log.WithField("version", version).WithField("dirty", dirty).Info("migration done")
	return nil
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
}
