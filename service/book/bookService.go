package booksvc

import (
	"context"

	"locallibrary/model"
)

type Repo interface {
	ListTitles(ctx context.Context, sortByTitle bool) ([]model.BookTitle, error)
}

// Service assembles the reference data shown by the copy forms.
type Service interface {
	ReferenceBooks(ctx context.Context, sortByTitle bool) ([]model.BookTitle, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) ReferenceBooks(ctx context.Context, sortByTitle bool) ([]model.BookTitle, error) {
	return s.r.ListTitles(ctx, sortByTitle)
}
