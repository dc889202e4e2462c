package echoServer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"locallibrary/app/echoServer/controller/bookinstance"
	"locallibrary/app/echoServer/controller/catalog"
	"locallibrary/app/echoServer/validation"
	"locallibrary/app/echoServer/view"
	"locallibrary/model"
	"locallibrary/repository/memory"
	booksvc "locallibrary/service/book"
	bookinstancesvc "locallibrary/service/bookinstance"
	catalogsvc "locallibrary/service/catalog"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type server struct {
	e     *echo.Echo
	store *memory.Store
}

func newServer(t *testing.T, dev bool, ping func(context.Context) error) *server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := memory.New()

	bs := booksvc.New(m.Books())
	cs := catalogsvc.New(m.Books(), m.BookInstances(), m.Authors(), m.Genres())
	renderer, err := view.New()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = ErrorHandler(log, dev)
	RegisterMiddlewares(e, log, filepath.Join(t.TempDir(), "public"))
	Register(e, C{
		Catalog: &catalog.Controller{Svc: cs, Log: log},
		BookInstance: &bookinstance.Controller{
			Svc:   bookinstancesvc.New(m.BookInstances(), bs),
			Books: bs,
			V:     validation.New(),
			Log:   log,
		},
		Ping: ping,
	})
	return &server{e: e, store: m}
}

func (s *server) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestRootRedirectsToCatalog(t *testing.T) {
	s := newServer(t, false, nil)
	rec := s.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/catalog", rec.Header().Get(echo.HeaderLocation))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestCatalogHomeShowsCounts(t *testing.T) {
	s := newServer(t, false, nil)
	ctx := context.Background()
	require.NoError(t, s.store.BookInstances().Create(ctx, &model.BookInstance{BookID: "b", Imprint: "x", Status: model.StatusAvailable}))
	require.NoError(t, s.store.BookInstances().Create(ctx, &model.BookInstance{BookID: "b", Imprint: "y"}))

	rec := s.do(http.MethodGet, "/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Local Library Home</title>")
	assert.Contains(t, body, "<strong>Copies:</strong> 2")
	assert.Contains(t, body, "<strong>Copies available:</strong> 1")
}

func TestCreateDetailUpdateDelete(t *testing.T) {
	s := newServer(t, false, nil)
	b := model.Book{Title: "Emma", AuthorID: "a"}
	require.NoError(t, s.store.Books().Create(context.Background(), &b))

	rec := s.do(http.MethodPost, "/catalog/bookinstance/create", url.Values{
		"book":     {b.ID},
		"imprint":  {"Penguin <1996>"},
		"status":   {"Loaned"},
		"due_back": {"2026-12-01"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	detail := rec.Header().Get(echo.HeaderLocation)

	rec = s.do(http.MethodGet, detail, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Copy: Emma</title>")
	assert.Contains(t, body, "Dec 1, 2026")
	assert.Contains(t, body, "Penguin &amp;lt;1996&amp;gt;", "escaped once on input and again on output")
	assert.NotContains(t, body, "<1996>")

	rec = s.do(http.MethodGet, detail+"/update", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="`+b.ID+`" selected>Emma</option>`)

	rec = s.do(http.MethodPost, detail+"/update", url.Values{
		"book":    {b.ID},
		"imprint": {"Vintage"},
		"status":  {"Available"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, detail, rec.Header().Get(echo.HeaderLocation))

	rec = s.do(http.MethodGet, detail+"/delete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	id := strings.TrimPrefix(detail, "/catalog/bookinstance/")
	assert.Contains(t, rec.Body.String(), `name="bookInstanceId" required value="`+id+`"`)

	rec = s.do(http.MethodPost, detail+"/delete", url.Values{"bookInstanceId": {id}})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/catalog/bookinstances", rec.Header().Get(echo.HeaderLocation))

	rec = s.do(http.MethodGet, "/catalog/bookinstances", nil)
	assert.Contains(t, rec.Body.String(), "There are no book copies in this library.")
}

func TestUpdateFormErrorsRender(t *testing.T) {
	s := newServer(t, false, nil)
	bi := model.BookInstance{BookID: "b", Imprint: "Penguin"}
	require.NoError(t, s.store.BookInstances().Create(context.Background(), &bi))

	rec := s.do(http.MethodPost, bi.URL()+"/update", url.Values{"imprint": {"ab#1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Update BookInstance</title>")
	assert.Contains(t, body, "<li>Imprint has non-alphanumeric characters</li>")
}

func TestErrorPage(t *testing.T) {
	s := newServer(t, false, nil)

	rec := s.do(http.MethodGet, "/catalog/bookinstance/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h2>Book copy not found</h2>")
	assert.NotContains(t, rec.Body.String(), "<pre>")

	rec = s.do(http.MethodGet, "/no/such/route", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not Found")
}

func TestErrorHandler_DevDetail(t *testing.T) {
	renderer, err := view.New()
	require.NoError(t, err)
	e := echo.New()
	e.Renderer = renderer
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	ErrorHandler(log, true)(errors.New("mongo: connection refused"), c)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "<pre>mongo: connection refused</pre>")

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)
	ErrorHandler(log, true)(echo.NewHTTPError(http.StatusNotFound, "gone"), c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHealth(t *testing.T) {
	s := newServer(t, false, func(context.Context) error { return nil })
	rec := s.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	s = newServer(t, false, func(context.Context) error { return errors.New("no reachable servers") })
	rec = s.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no reachable servers")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t, false, nil)
	s.do(http.MethodGet, "/catalog/bookinstances", nil)
	s.do(http.MethodGet, "/catalog/bookinstance/missing", nil)

	rec := s.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "locallibrary_http_requests_total")
	assert.Contains(t, body, `route="/catalog/bookinstances"`)
	assert.Contains(t, body, `locallibrary_http_requests_total{method="GET",route="/catalog/bookinstance/:id",status="404"}`)
}
