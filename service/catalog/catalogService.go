package catalogsvc

import (
	"context"
	"time"

	"locallibrary/model"

	"golang.org/x/sync/errgroup"
)

type BookRepo interface {
	Create(ctx context.Context, b *model.Book) error
	Count(ctx context.Context) (int64, error)
}

type BookInstanceRepo interface {
	Create(ctx context.Context, bi *model.BookInstance) error
	Count(ctx context.Context, status model.BookInstanceStatus) (int64, error)
}

type AuthorRepo interface {
	Create(ctx context.Context, a *model.Author) error
	Count(ctx context.Context) (int64, error)
}

type GenreRepo interface {
	Create(ctx context.Context, g *model.Genre) error
	Count(ctx context.Context) (int64, error)
}

type Counts struct {
	Books                  int64 `json:"book_count"`
	BookInstances          int64 `json:"book_instance_count"`
	BookInstancesAvailable int64 `json:"book_instance_available_count"`
	Authors                int64 `json:"author_count"`
	Genres                 int64 `json:"genre_count"`
}

type Service interface {
	// Counts runs the five count queries concurrently.
	Counts(ctx context.Context) (*Counts, error)

	// Seed fills an empty catalog with a few demo records. It reports whether
	// anything was written.
	Seed(ctx context.Context) (bool, error)
}

type service struct {
	books     BookRepo
	instances BookInstanceRepo
	authors   AuthorRepo
	genres    GenreRepo
}

func New(b BookRepo, bi BookInstanceRepo, a AuthorRepo, g GenreRepo) Service {
	return &service{books: b, instances: bi, authors: a, genres: g}
}

func (s *service) Counts(ctx context.Context) (*Counts, error) {
	var c Counts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { c.Books, err = s.books.Count(gctx); return })
	g.Go(func() (err error) { c.BookInstances, err = s.instances.Count(gctx, ""); return })
	g.Go(func() (err error) {
		c.BookInstancesAvailable, err = s.instances.Count(gctx, model.StatusAvailable)
		return
	})
	g.Go(func() (err error) { c.Authors, err = s.authors.Count(gctx); return })
	g.Go(func() (err error) { c.Genres, err = s.genres.Count(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &c, nil
}

func date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func (s *service) Seed(ctx context.Context) (bool, error) {
	n, err := s.books.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	authors := []*model.Author{
		{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: date("1973-06-06")},
		{FirstName: "Ben", FamilyName: "Bova", DateOfBirth: date("1932-11-08")},
		{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: date("1920-01-02"), DateOfDeath: date("1992-04-06")},
	}
	for _, a := range authors {
		if err := s.authors.Create(ctx, a); err != nil {
			return false, err
		}
	}

	genres := []*model.Genre{{Name: "Fantasy"}, {Name: "Science Fiction"}}
	for _, g := range genres {
		if err := s.genres.Create(ctx, g); err != nil {
			return false, err
		}
	}

	books := []*model.Book{
		{
			Title:    "The Name of the Wind",
			AuthorID: authors[0].ID,
			Summary:  "The tale of Kvothe, from his childhood in a troupe of traveling players to his years as a near-feral orphan.",
			ISBN:     "9781473211896",
			GenreIDs: []string{genres[0].ID},
		},
		{
			Title:    "Apes and Angels",
			AuthorID: authors[1].ID,
			Summary:  "Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity.",
			ISBN:     "9780765379528",
			GenreIDs: []string{genres[1].ID},
		},
		{
			Title:    "The Gods Themselves",
			AuthorID: authors[2].ID,
			Summary:  "In the twenty-second century a physicist discovers a way to exchange matter with a parallel universe.",
			ISBN:     "9780553288100",
			GenreIDs: []string{genres[1].ID},
		},
	}
	for _, b := range books {
		if err := s.books.Create(ctx, b); err != nil {
			return false, err
		}
	}

	copies := []*model.BookInstance{
		{BookID: books[0].ID, Imprint: "London Gollancz 2014", Status: model.StatusAvailable},
		{BookID: books[0].ID, Imprint: "London Gollancz 2014", Status: model.StatusLoaned, DueBack: date("2026-11-01")},
		{BookID: books[1].ID, Imprint: "New York Tom Doherty Associates 2016", Status: model.StatusMaintenance},
		{BookID: books[2].ID, Imprint: "New York Bantam 1990", Status: model.StatusReserved},
	}
	for _, bi := range copies {
		if err := s.instances.Create(ctx, bi); err != nil {
			return false, err
		}
	}
	return true, nil
}
