// Package postgres is the relational entity store. Each collection is a table
// keyed by UUID; references are stored as ids but not enforced.
package postgres

import (
	"context"
	"database/sql"

	authorrepo "locallibrary/repository/author"
	bookrepo "locallibrary/repository/book"
	bookinstancerepo "locallibrary/repository/bookinstance"
	genrerepo "locallibrary/repository/genre"
)

const schema = `
CREATE TABLE IF NOT EXISTS authors (
	id            UUID PRIMARY KEY,
	first_name    TEXT NOT NULL,
	family_name   TEXT NOT NULL,
	date_of_birth DATE,
	date_of_death DATE
);
CREATE TABLE IF NOT EXISTS genres (
	id   UUID PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS books (
	id         UUID PRIMARY KEY,
	title      TEXT NOT NULL,
	author_id  UUID NOT NULL,
	summary    TEXT NOT NULL DEFAULT '',
	isbn       TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS book_genres (
	book_id  UUID NOT NULL,
	genre_id UUID NOT NULL,
	PRIMARY KEY (book_id, genre_id)
);
CREATE TABLE IF NOT EXISTS book_instances (
	id         UUID PRIMARY KEY,
	book_id    UUID NOT NULL,
	imprint    TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'Maintenance',
	due_back   DATE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// EnsureSchema creates the catalog tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) BookInstances() bookinstancerepo.Repo { return &instanceRepo{db: s.db} }
func (s *Store) Books() bookrepo.Repo                 { return &bookRepo{db: s.db} }
func (s *Store) Authors() authorrepo.Repo             { return &authorRepo{db: s.db} }
func (s *Store) Genres() genrerepo.Repo               { return &genreRepo{db: s.db} }
