package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

func NewConfig(host, user, password, port, dbname, sslmode string) Config {
	return Config{
		host:     host,
		user:     user,
		password: password,
		port:     port,
		dbname:   dbname,
		sslmode:  sslmode,
	}
}

func NewPool(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, config.ConnStr())
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return p, nil
}

var (
	ErrQueryRow    = errors.New("could not execute query")
	ErrStoreFailed = errors.New("could not store data")
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, config Config) (*Storage, error) {
	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Initialize(ctx context.Context) error {
	return s.createTables(ctx)
}

func (s *Storage) Close() {
	s.pool.Close()
}

func (s *Storage) createTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS alarm_events (
			event_id		TEXT 	NOT NULL,
			alarm_name		TEXT 	NOT NULL,
			raised			BOOLEAN	NOT NULL DEFAULT FALSE,
			node_name		TEXT 	NOT NULL,
			action_required	BOOLEAN	NOT NULL DEFAULT FALSE,
			problem_description	TEXT NULL,
			parameters 		JSONB	NULL,
			severity		NUMERIC	NOT NULL,
			observed_at		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_alarm_events PRIMARY KEY (event_id)
		);

		CREATE INDEX IF NOT EXISTS idx_alarm_events_alarm_name ON alarm_events (alarm_name, observed_at DESC);
	`)
	if err != nil {
		return err
	}

	return nil
}
