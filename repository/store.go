// Package repository selects and opens the entity store backend.
package repository

import (
	"context"
	"fmt"

	"locallibrary/config"
	authorrepo "locallibrary/repository/author"
	bookrepo "locallibrary/repository/book"
	bookinstancerepo "locallibrary/repository/bookinstance"
	genrerepo "locallibrary/repository/genre"
	"locallibrary/repository/memory"
	"locallibrary/repository/postgres"
	"locallibrary/util/database"
)

// Store groups the four collections of one backend.
type Store struct {
	BookInstances bookinstancerepo.Repo
	Books         bookrepo.Repo
	Authors       authorrepo.Repo
	Genres        genrerepo.Repo

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func Open(ctx context.Context, cfg config.App) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		m, err := database.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &Store{
			BookInstances: bookinstancerepo.New(m.DB),
			Books:         bookrepo.New(m.DB),
			Authors:       authorrepo.New(m.DB),
			Genres:        genrerepo.New(m.DB),
			ping:          m.Ping,
			close:         m.Close,
		}, nil

	case config.DriverPostgres:
		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pg := postgres.New(db.SQL)
		if err := pg.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		return &Store{
			BookInstances: pg.BookInstances(),
			Books:         pg.Books(),
			Authors:       pg.Authors(),
			Genres:        pg.Genres(),
			ping:          pg.Ping,
			close:         func(context.Context) error { db.Close(); return nil },
		}, nil

	case config.DriverMemory:
		return FromMemory(memory.New()), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func FromMemory(m *memory.Store) *Store {
	return &Store{
		BookInstances: m.BookInstances(),
		Books:         m.Books(),
		Authors:       m.Authors(),
		Genres:        m.Genres(),
		ping:          m.Ping,
	}
}
