package view

import (
	"bytes"
	"testing"
	"time"

	"locallibrary/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, name string, data echo.Map) string {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, data, nil))
	return buf.String()
}

func TestNew_ParsesEveryPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	for _, name := range []string{
		"catalog_index", "bookinstance_list", "bookinstance_detail",
		"bookinstance_form", "bookinstance_delete", "error",
	} {
		assert.Contains(t, r.pages, name)
	}
	assert.NotContains(t, r.pages, "layout")
}

func TestRender_UnknownView(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "nope", nil, nil))
}

func TestRender_List(t *testing.T) {
	due := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	out := render(t, "bookinstance_list", echo.Map{
		"title": "Book Instance List",
		"bookinstance_list": []model.BookInstance{
			{ID: "c1", Book: &model.Book{ID: "b1", Title: "Emma"}, Imprint: "Penguin", Status: model.StatusLoaned, DueBack: &due},
			{ID: "c2", Imprint: "Vintage", Status: model.StatusAvailable},
		},
	})
	assert.Contains(t, out, `<a href="/catalog/bookinstance/c1">Emma : Penguin</a>`)
	assert.Contains(t, out, "(Due: Dec 1, 2026)")
	assert.Contains(t, out, "(unknown book) : Vintage")

	empty := render(t, "bookinstance_list", echo.Map{"title": "Book Instance List"})
	assert.Contains(t, empty, "There are no book copies in this library.")
}

func TestRender_FormSelections(t *testing.T) {
	out := render(t, "bookinstance_form", echo.Map{
		"title": "Update Book Instance",
		"book_list": []model.BookTitle{
			{ID: "b1", Title: "Art"},
			{ID: "b2", Title: "Zen"},
		},
		"bookinstance": struct {
			Book, Imprint, Status, DueBack string
		}{"b2", "Penguin", "Loaned", "2026-12-01"},
	})
	assert.Contains(t, out, `<option value="b2" selected>Zen</option>`)
	assert.Contains(t, out, `<option value="b1">Art</option>`)
	assert.Contains(t, out, `<option value="Loaned" selected>Loaned</option>`)
	assert.Contains(t, out, `value="2026-12-01"`)
}

func TestRender_FormErrorsAndEscaping(t *testing.T) {
	out := render(t, "bookinstance_form", echo.Map{
		"title":         "Create BookInstance",
		"selected_book": "b1",
		"book_list":     []model.BookTitle{{ID: "b1", Title: "Art"}},
		"errors": []struct{ Message string }{
			{Message: "Imprint must be specified"},
		},
		"bookinstance": struct {
			Book, Imprint, Status, DueBack string
		}{"b1", "&lt;b&gt;", "", ""},
	})
	assert.Contains(t, out, `<option value="b1" selected>Art</option>`)
	assert.Contains(t, out, "<li>Imprint must be specified</li>")
	assert.Contains(t, out, `value="&amp;lt;b&amp;gt;"`)
}

func TestRender_ErrorPage(t *testing.T) {
	out := render(t, "error", echo.Map{"title": "Error", "message": "Book copy not found", "status": 404})
	assert.Contains(t, out, "<h2>Book copy not found</h2>")
	assert.NotContains(t, out, "<pre>")
}
