// Package memory is an in-process entity store. It backs STORE_DRIVER=memory
// and the handler tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"locallibrary/model"
	authorrepo "locallibrary/repository/author"
	bookrepo "locallibrary/repository/book"
	bookinstancerepo "locallibrary/repository/bookinstance"
	genrerepo "locallibrary/repository/genre"

	"github.com/google/uuid"
)

// Store keeps each collection as an id-keyed map plus the insertion order,
// which is the natural order of unsorted reads.
type Store struct {
	mu sync.RWMutex

	books     map[string]model.Book
	bookOrder []string
	instances map[string]model.BookInstance
	instOrder []string
	authors   map[string]model.Author
	genres    map[string]model.Genre
}

func New() *Store {
	return &Store{
		books:     map[string]model.Book{},
		instances: map[string]model.BookInstance{},
		authors:   map[string]model.Author{},
		genres:    map[string]model.Genre{},
	}
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) BookInstances() bookinstancerepo.Repo { return instanceRepo{s} }
func (s *Store) Books() bookrepo.Repo                 { return bookRepo{s} }
func (s *Store) Authors() authorrepo.Repo             { return authorRepo{s} }
func (s *Store) Genres() genrerepo.Repo               { return genreRepo{s} }

type instanceRepo struct{ s *Store }

func (r instanceRepo) List(ctx context.Context) ([]model.BookInstance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.BookInstance, 0, len(r.s.instOrder))
	for _, id := range r.s.instOrder {
		out = append(out, r.s.populate(r.s.instances[id]))
	}
	return out, nil
}

func (r instanceRepo) ByID(ctx context.Context, id string, populate bool) (*model.BookInstance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	bi, ok := r.s.instances[id]
	if !ok {
		return nil, nil
	}
	if populate {
		bi = r.s.populate(bi)
	}
	return &bi, nil
}

func (r instanceRepo) Create(ctx context.Context, bi *model.BookInstance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bi.ID = uuid.NewString()
	if bi.Status == "" {
		bi.Status = model.DefaultStatus
	}
	stored := *bi
	stored.Book = nil
	r.s.instances[bi.ID] = stored
	r.s.instOrder = append(r.s.instOrder, bi.ID)
	return nil
}

func (r instanceRepo) Replace(ctx context.Context, id string, bi model.BookInstance) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.instances[id]; !ok {
		return false, nil
	}
	bi.ID = id
	bi.Book = nil
	r.s.instances[id] = bi
	return true, nil
}

func (r instanceRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.instances[id]; !ok {
		return nil
	}
	delete(r.s.instances, id)
	r.s.instOrder = slices.DeleteFunc(r.s.instOrder, func(v string) bool { return v == id })
	return nil
}

func (r instanceRepo) Count(ctx context.Context, status model.BookInstanceStatus) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if status == "" {
		return int64(len(r.s.instances)), nil
	}
	var n int64
	for _, bi := range r.s.instances {
		if bi.Status == status {
			n++
		}
	}
	return n, nil
}

// populate must be called with s.mu held.
func (s *Store) populate(bi model.BookInstance) model.BookInstance {
	if b, ok := s.books[bi.BookID]; ok {
		bi.Book = &b
	}
	return bi
}

type bookRepo struct{ s *Store }

func (r bookRepo) ListTitles(ctx context.Context, sortByTitle bool) ([]model.BookTitle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.BookTitle, 0, len(r.s.bookOrder))
	for _, id := range r.s.bookOrder {
		b := r.s.books[id]
		out = append(out, model.BookTitle{ID: b.ID, Title: b.Title})
	}
	if sortByTitle {
		slices.SortStableFunc(out, func(a, b model.BookTitle) int { return strings.Compare(a.Title, b.Title) })
	}
	return out, nil
}

func (r bookRepo) Create(ctx context.Context, b *model.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b.ID = uuid.NewString()
	r.s.books[b.ID] = *b
	r.s.bookOrder = append(r.s.bookOrder, b.ID)
	return nil
}

func (r bookRepo) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.books)), nil
}

type authorRepo struct{ s *Store }

func (r authorRepo) Create(ctx context.Context, a *model.Author) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a.ID = uuid.NewString()
	r.s.authors[a.ID] = *a
	return nil
}

func (r authorRepo) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.authors)), nil
}

type genreRepo struct{ s *Store }

func (r genreRepo) Create(ctx context.Context, g *model.Genre) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g.ID = uuid.NewString()
	r.s.genres[g.ID] = *g
	return nil
}

func (r genreRepo) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.genres)), nil
}
