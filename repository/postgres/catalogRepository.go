package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"locallibrary/model"

	"github.com/google/uuid"
)

type bookRepo struct{ db *sql.DB }

func (r *bookRepo) ListTitles(ctx context.Context, sortByTitle bool) ([]model.BookTitle, error) {
	q := `SELECT id, title FROM books ORDER BY created_at, id`
	if sortByTitle {
		q = `SELECT id, title FROM books ORDER BY title, id`
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("book titles: %w", err)
	}
	defer rows.Close()

	var out []model.BookTitle
	for rows.Next() {
		var t model.BookTitle
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, fmt.Errorf("book titles: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *bookRepo) Create(ctx context.Context, b *model.Book) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("book create: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	id := uuid.NewString()
	const ins = `
INSERT INTO books (id, title, author_id, summary, isbn)
VALUES ($1,$2,$3,$4,$5)`
	if _, err = tx.ExecContext(ctx, ins, id, b.Title, b.AuthorID, b.Summary, b.ISBN); err != nil {
		return fmt.Errorf("book create: %w", err)
	}
	const link = `INSERT INTO book_genres (book_id, genre_id) VALUES ($1,$2)`
	for _, g := range b.GenreIDs {
		if _, err = tx.ExecContext(ctx, link, id, g); err != nil {
			return fmt.Errorf("book create: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("book create: %w", err)
	}
	b.ID = id
	return nil
}

func (r *bookRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "books")
}

type authorRepo struct{ db *sql.DB }

func (r *authorRepo) Create(ctx context.Context, a *model.Author) error {
	const q = `
INSERT INTO authors (id, first_name, family_name, date_of_birth, date_of_death)
VALUES ($1,$2,$3,$4,$5)`
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, q, id, a.FirstName, a.FamilyName, a.DateOfBirth, a.DateOfDeath); err != nil {
		return fmt.Errorf("author create: %w", err)
	}
	a.ID = id
	return nil
}

func (r *authorRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "authors")
}

type genreRepo struct{ db *sql.DB }

func (r *genreRepo) Create(ctx context.Context, g *model.Genre) error {
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, `INSERT INTO genres (id, name) VALUES ($1,$2)`, id, g.Name); err != nil {
		return fmt.Errorf("genre create: %w", err)
	}
	g.ID = id
	return nil
}

func (r *genreRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "genres")
}

// table is always one of the package's own constants.
func count(ctx context.Context, db *sql.DB, table string) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s count: %w", table, err)
	}
	return n, nil
}
