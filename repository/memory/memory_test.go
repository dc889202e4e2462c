package memory

import (
	"context"
	"testing"

	"locallibrary/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstances_CRUD(t *testing.T) {
	ctx := context.Background()
	s := New()
	r := s.BookInstances()

	b := model.Book{Title: "Emma"}
	require.NoError(t, s.Books().Create(ctx, &b))

	bi := model.BookInstance{BookID: b.ID, Imprint: "Penguin", Book: &model.Book{Title: "ignored"}}
	require.NoError(t, r.Create(ctx, &bi))
	require.NotEmpty(t, bi.ID)
	assert.Equal(t, model.DefaultStatus, bi.Status)

	plain, err := r.ByID(ctx, bi.ID, false)
	require.NoError(t, err)
	assert.Nil(t, plain.Book, "the reference is only resolved on request")

	full, err := r.ByID(ctx, bi.ID, true)
	require.NoError(t, err)
	require.NotNil(t, full.Book)
	assert.Equal(t, "Emma", full.Book.Title)

	ok, err := r.Replace(ctx, bi.ID, model.BookInstance{ID: "other", BookID: b.ID, Imprint: "Vintage", Status: model.StatusLoaned})
	require.NoError(t, err)
	assert.True(t, ok)
	got, _ := r.ByID(ctx, bi.ID, false)
	assert.Equal(t, bi.ID, got.ID)
	assert.Equal(t, "Vintage", got.Imprint)

	ok, err = r.Replace(ctx, "missing", model.BookInstance{})
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Delete(ctx, bi.ID))
	require.NoError(t, r.Delete(ctx, bi.ID), "deleting twice is fine")
	got, err = r.ByID(ctx, bi.ID, true)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInstances_ListOrderAndCount(t *testing.T) {
	ctx := context.Background()
	r := New().BookInstances()

	for _, st := range []model.BookInstanceStatus{model.StatusAvailable, "", model.StatusAvailable, model.StatusLoaned} {
		require.NoError(t, r.Create(ctx, &model.BookInstance{BookID: "b", Imprint: string(st), Status: st}))
	}

	rows, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Available", rows[0].Imprint)
	assert.Equal(t, model.StatusMaintenance, rows[1].Status)
	assert.Nil(t, rows[0].Book, "dangling reference")

	n, err := r.Count(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	n, err = r.Count(ctx, model.StatusAvailable)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestBooks_ListTitles(t *testing.T) {
	ctx := context.Background()
	r := New().Books()
	for _, title := range []string{"Zen", "Art", "Mind"} {
		require.NoError(t, r.Create(ctx, &model.Book{Title: title}))
	}

	titles := func(sorted bool) []string {
		got, err := r.ListTitles(ctx, sorted)
		require.NoError(t, err)
		var out []string
		for _, b := range got {
			out = append(out, b.Title)
		}
		return out
	}
	assert.Equal(t, []string{"Zen", "Art", "Mind"}, titles(false))
	assert.Equal(t, []string{"Art", "Mind", "Zen"}, titles(true))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New()

	_, err := s.BookInstances().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Books().Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Authors().Create(ctx, &model.Author{}), context.Canceled)
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}
