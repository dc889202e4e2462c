package bookinstance

import (
	"log/slog"
	"net/http"

	"locallibrary/app/echoServer/validation"
	"locallibrary/model"
	booksvc "locallibrary/service/book"
	bis "locallibrary/service/bookinstance"

	"github.com/labstack/echo/v4"
)

const formView = "bookinstance_form"

type Controller struct {
	Svc   bis.Service
	Books booksvc.Service
	V     *validation.Validator
	Log   *slog.Logger
}

// storeErr logs a store failure and hands it to the error responder as is.
func (h *Controller) storeErr(c echo.Context, op string, err error) error {
	h.Log.Error(op,
		"err", err,
		"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"path", c.Path(),
	)
	return err
}

// GET /catalog/bookinstances
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.storeErr(c, "bookinstance list", err)
	}
	return c.Render(http.StatusOK, "bookinstance_list", echo.Map{
		"title":             "Book Instance List",
		"bookinstance_list": rows,
	})
}

// GET /catalog/bookinstance/:id
func (h *Controller) Detail(c echo.Context) error {
	bi, err := h.Svc.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		if bis.Code(err) == bis.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Book copy not found")
		}
		return h.storeErr(c, "bookinstance detail", err)
	}
	title := "Copy: "
	if bi.Book != nil {
		title += bi.Book.Title
	}
	return c.Render(http.StatusOK, "bookinstance_detail", echo.Map{
		"title":        title,
		"bookinstance": bi,
	})
}

// GET /catalog/bookinstance/create
func (h *Controller) CreateForm(c echo.Context) error {
	books, err := h.Books.ReferenceBooks(c.Request().Context(), false)
	if err != nil {
		return h.storeErr(c, "bookinstance create form", err)
	}
	return c.Render(http.StatusOK, formView, echo.Map{
		"title":     "Create BookInstance",
		"book_list": books,
	})
}

// POST /catalog/bookinstance/create
func (h *Controller) Create(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	ctx := c.Request().Context()

	res := h.V.Check(createRules, form)
	bi := candidate(res)

	if res.HasErrors() {
		books, err := h.Books.ReferenceBooks(ctx, false)
		if err != nil {
			return h.storeErr(c, "bookinstance create form", err)
		}
		return c.Render(http.StatusOK, formView, echo.Map{
			"title":         "Create BookInstance",
			"book_list":     books,
			"selected_book": bi.BookID,
			"errors":        res.Errors,
			"bookinstance":  formOf(bi),
		})
	}

	if err := h.Svc.Create(ctx, &bi); err != nil {
		return h.storeErr(c, "bookinstance create", err)
	}
	return c.Redirect(http.StatusFound, bi.URL())
}

// GET /catalog/bookinstance/:id/delete
func (h *Controller) DeleteForm(c echo.Context) error {
	bi, err := h.Svc.DeleteTarget(c.Request().Context(), c.Param("id"))
	if err != nil {
		if bis.Code(err) == bis.ErrNotFound {
			return c.Redirect(http.StatusFound, model.BookInstanceListURL)
		}
		return h.storeErr(c, "bookinstance delete form", err)
	}
	return c.Render(http.StatusOK, "bookinstance_delete", echo.Map{
		"title":         "Delete Book Instance",
		"book_instance": bi,
	})
}

// POST /catalog/bookinstance/:id/delete
//
// The copy removed is the one named by the bookInstanceId form field; the
// path id only has to exist.
func (h *Controller) Delete(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	err = h.Svc.Delete(c.Request().Context(), c.Param("id"), form.Get(fieldDeleteID))
	if err != nil && bis.Code(err) != bis.ErrNotFound {
		return h.storeErr(c, "bookinstance delete", err)
	}
	return c.Redirect(http.StatusFound, model.BookInstanceListURL)
}

// GET /catalog/bookinstance/:id/update
func (h *Controller) UpdateForm(c echo.Context) error {
	bi, books, err := h.Svc.EditForm(c.Request().Context(), c.Param("id"))
	if err != nil {
		if bis.Code(err) == bis.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Book Instance not found")
		}
		return h.storeErr(c, "bookinstance update form", err)
	}
	return c.Render(http.StatusOK, formView, echo.Map{
		"title":        "Update Book Instance",
		"bookinstance": formOf(*bi),
		"book_list":    books,
	})
}

// POST /catalog/bookinstance/:id/update
//
// A failed check re-renders without book_list.
func (h *Controller) Update(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	res := h.V.Check(updateRules, form)
	if res.HasErrors() {
		return c.Render(http.StatusOK, formView, echo.Map{
			"title":        "Update BookInstance",
			"bookinstance": submitted(res),
			"errors":       res.Errors,
		})
	}

	updated, err := h.Svc.Update(c.Request().Context(), c.Param("id"), candidate(res))
	if err != nil {
		if bis.Code(err) == bis.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Book Instance not found")
		}
		return h.storeErr(c, "bookinstance update", err)
	}
	return c.Redirect(http.StatusFound, updated.URL())
}
