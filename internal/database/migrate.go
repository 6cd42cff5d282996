package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
    id            text PRIMARY KEY,
    first_name    text NOT NULL,
    last_name     text NOT NULL,
    phone         text NOT NULL,
    email         text NOT NULL UNIQUE,
    password_hash bytea NOT NULL,
    role          text NOT NULL DEFAULT 'customer',
    created_at    timestamptz NOT NULL DEFAULT NOW(),
    updated_at    timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS addresses (
    id     text PRIMARY KEY,
    street text NOT NULL,
    city   text NOT NULL,
    zip    text NOT NULL,
    x      double precision NOT NULL DEFAULT 0,
    y      double precision NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS addresses_zip_idx ON addresses (zip);

CREATE TABLE IF NOT EXISTS restaurants (
    id            text PRIMARY KEY,
    name          text NOT NULL,
    email         text NOT NULL UNIQUE,
    phone         text NOT NULL,
    password_hash bytea NOT NULL,
    role          text NOT NULL DEFAULT 'restaurant',
    address_id    text NOT NULL REFERENCES addresses(id),
    reg_no        text NOT NULL DEFAULT '',
    account_no    text NOT NULL DEFAULT '',
    created_at    timestamptz NOT NULL DEFAULT NOW(),
    updated_at    timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS admins (
    id            text PRIMARY KEY,
    email         text NOT NULL UNIQUE,
    password_hash bytea NOT NULL,
    role          text NOT NULL DEFAULT 'admin',
    created_at    timestamptz NOT NULL DEFAULT NOW()
);
`

// Migrate creates the credential tables. It is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
