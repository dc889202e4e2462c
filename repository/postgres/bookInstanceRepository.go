package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"locallibrary/model"

	"github.com/google/uuid"
)

type instanceRepo struct{ db *sql.DB }

const selectPopulated = `
SELECT bi.id, bi.book_id, bi.imprint, bi.status, bi.due_back,
       b.id, b.title, b.author_id, b.summary, b.isbn
FROM book_instances bi
LEFT JOIN books b ON b.id = bi.book_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPopulated(row rowScanner) (model.BookInstance, error) {
	var bi model.BookInstance
	var status string
	var bookID, title, authorID, summary, isbn sql.NullString
	if err := row.Scan(&bi.ID, &bi.BookID, &bi.Imprint, &status, &bi.DueBack,
		&bookID, &title, &authorID, &summary, &isbn); err != nil {
		return bi, err
	}
	bi.Status = model.BookInstanceStatus(status)
	if bookID.Valid {
		bi.Book = &model.Book{
			ID:       bookID.String,
			Title:    title.String,
			AuthorID: authorID.String,
			Summary:  summary.String,
			ISBN:     isbn.String,
		}
	}
	return bi, nil
}

func (r *instanceRepo) List(ctx context.Context) ([]model.BookInstance, error) {
	rows, err := r.db.QueryContext(ctx, selectPopulated+`
ORDER BY bi.created_at, bi.id`)
	if err != nil {
		return nil, fmt.Errorf("bookinstance list: %w", err)
	}
	defer rows.Close()

	var out []model.BookInstance
	for rows.Next() {
		bi, err := scanPopulated(rows)
		if err != nil {
			return nil, fmt.Errorf("bookinstance list: %w", err)
		}
		out = append(out, bi)
	}
	return out, rows.Err()
}

func (r *instanceRepo) ByID(ctx context.Context, id string, populate bool) (*model.BookInstance, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var (
		bi  model.BookInstance
		err error
	)
	if populate {
		bi, err = scanPopulated(r.db.QueryRowContext(ctx, selectPopulated+`
WHERE bi.id = $1`, id))
	} else {
		const q = `
SELECT id, book_id, imprint, status, due_back
FROM book_instances
WHERE id = $1`
		var status string
		err = r.db.QueryRowContext(ctx, q, id).Scan(&bi.ID, &bi.BookID, &bi.Imprint, &status, &bi.DueBack)
		bi.Status = model.BookInstanceStatus(status)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("bookinstance by id: %w", err)
	}
	return &bi, nil
}

func (r *instanceRepo) Create(ctx context.Context, bi *model.BookInstance) error {
	const q = `
INSERT INTO book_instances (id, book_id, imprint, status, due_back)
VALUES ($1,$2,$3,$4,$5)`
	id := uuid.NewString()
	status := bi.Status
	if status == "" {
		status = model.DefaultStatus
	}
	if _, err := r.db.ExecContext(ctx, q, id, bi.BookID, bi.Imprint, string(status), bi.DueBack); err != nil {
		return fmt.Errorf("bookinstance create: %w", err)
	}
	bi.ID = id
	bi.Status = status
	return nil
}

func (r *instanceRepo) Replace(ctx context.Context, id string, bi model.BookInstance) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	const q = `
UPDATE book_instances
SET book_id = $2, imprint = $3, status = $4, due_back = $5
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, bi.BookID, bi.Imprint, string(bi.Status), bi.DueBack)
	if err != nil {
		return false, fmt.Errorf("bookinstance replace: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("bookinstance replace: %w", err)
	}
	return n > 0, nil
}

func (r *instanceRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM book_instances WHERE id = $1`, id); err != nil {
		return fmt.Errorf("bookinstance delete: %w", err)
	}
	return nil
}

func (r *instanceRepo) Count(ctx context.Context, status model.BookInstanceStatus) (int64, error) {
	var (
		n   int64
		err error
	)
	if status == "" {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM book_instances`).Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM book_instances WHERE status = $1`, string(status)).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("bookinstance count: %w", err)
	}
	return n, nil
}
