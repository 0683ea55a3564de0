package postgres

import (
	"errors"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/okruhlystol/catalog/internal/core/model"
)

// Postgres error codes translated into model sentinels.
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

// PostgresDB is a postgres adapter for persistance. It implements every repository port.
type PostgresDB struct {
	db      *pg.DB
	nowFunc func() time.Time
}

// PostgresDBArgs are the mandatory arguments for the creation of a PostgresDB
type PostgresDBArgs struct {
	// DB is a postgres database handle
	DB *pg.DB
}

// PostgresDBOptArgs are the optional arguments for building a PostgresDB
type PostgresDBOptArgs = func(*PostgresDB)

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) PostgresDBOptArgs {
	return func(p *PostgresDB) {
		p.nowFunc = nowFunc
	}
}

// NewPostgresDB creates a new PostgresDB.
func NewPostgresDB(args PostgresDBArgs, optArgs ...PostgresDBOptArgs) (*PostgresDB, error) {
	if args.DB == nil {
		return nil, errors.New("nil db handle")
	}
	p := &PostgresDB{db: args.DB, nowFunc: func() time.Time { return time.Now().UTC() }}
	for _, opt := range optArgs {
		opt(p)
	}
	return p, nil
}

// translateError maps driver errors onto model sentinels. Unknown errors are returned as is.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pg.ErrNoRows) {
		return model.ErrNotFound
	}
	var pgErr pg.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') {
		case uniqueViolation:
			return model.ErrAlreadyExists
		case foreignKeyViolation:
			return model.ErrNotFound
		}
	}
	return err
}
