package bookinstancesvc

import (
	"context"
	"errors"

	"locallibrary/model"
	bookinstancerepo "locallibrary/repository/bookinstance"

	"golang.org/x/sync/errgroup"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound ErrCode = "NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo = bookinstancerepo.Repo

type BookLister interface {
	ReferenceBooks(ctx context.Context, sortByTitle bool) ([]model.BookTitle, error)
}

type Service interface {
	List(ctx context.Context) ([]model.BookInstance, error)

	// Detail returns the copy with its book resolved.
	Detail(ctx context.Context, id string) (*model.BookInstance, error)

	// Create persists a validated candidate and sets its ID.
	Create(ctx context.Context, bi *model.BookInstance) error

	// DeleteTarget loads the copy shown on the delete confirmation page.
	DeleteTarget(ctx context.Context, id string) (*model.BookInstance, error)

	// Delete removes targetID once pathID is known to exist. ErrNotFound
	// means pathID is already gone and nothing was removed.
	Delete(ctx context.Context, pathID, targetID string) error

	// EditForm loads the copy and the title-sorted book list together.
	EditForm(ctx context.Context, id string) (*model.BookInstance, []model.BookTitle, error)

	// Update overwrites the copy stored at id. The id of bi is ignored.
	Update(ctx context.Context, id string, bi model.BookInstance) (*model.BookInstance, error)
}

type service struct {
	r     Repo
	books BookLister
}

func New(r Repo, books BookLister) Service { return &service{r: r, books: books} }

func (s *service) List(ctx context.Context) ([]model.BookInstance, error) {
	return s.r.List(ctx)
}

func (s *service) Detail(ctx context.Context, id string) (*model.BookInstance, error) {
	bi, err := s.r.ByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if bi == nil {
		return nil, makeErr(ErrNotFound)
	}
	return bi, nil
}

func (s *service) Create(ctx context.Context, bi *model.BookInstance) error {
	return s.r.Create(ctx, bi)
}

func (s *service) DeleteTarget(ctx context.Context, id string) (*model.BookInstance, error) {
	return s.Detail(ctx, id)
}

func (s *service) Delete(ctx context.Context, pathID, targetID string) error {
	bi, err := s.r.ByID(ctx, pathID, false)
	if err != nil {
		return err
	}
	if bi == nil {
		return makeErr(ErrNotFound)
	}
	return s.r.Delete(ctx, targetID)
}

func (s *service) EditForm(ctx context.Context, id string) (*model.BookInstance, []model.BookTitle, error) {
	var (
		bi    *model.BookInstance
		books []model.BookTitle
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bi, err = s.r.ByID(gctx, id, false)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = s.books.ReferenceBooks(gctx, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if bi == nil {
		return nil, nil, makeErr(ErrNotFound)
	}
	return bi, books, nil
}

func (s *service) Update(ctx context.Context, id string, bi model.BookInstance) (*model.BookInstance, error) {
	bi.ID = id
	bi.Book = nil
	ok, err := s.r.Replace(ctx, id, bi)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrNotFound)
	}
	return &bi, nil
}
