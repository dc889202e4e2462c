package bookinstance

import (
	"locallibrary/app/echoServer/validation"
	"locallibrary/model"
)

const (
	fieldBook      = "book"
	fieldImprint   = "imprint"
	fieldStatus    = "status"
	fieldDueBack   = "due_back"
	fieldDeleteID  = "bookInstanceId"
	msgBookMissing = "Book must be specified"
	msgImprint     = "Imprint must be specified"
)

// Update checks imprint for alphanumerics and leaves book and status
// unchecked; create does the opposite.
var createRules = validation.Rules{
	validation.Body(fieldBook, msgBookMissing).Trim().NotEmpty().Escape(),
	validation.Body(fieldImprint, msgImprint).Trim().NotEmpty().Escape(),
	validation.Body(fieldStatus).Escape(),
	validation.Body(fieldDueBack, "Invalid date").Optional().ISO8601().ToDate(),
}

var updateRules = validation.Rules{
	validation.Body(fieldImprint).
		Trim().
		NotEmpty().WithMessage(msgImprint).
		Escape().
		Alphanumeric().WithMessage("Imprint has non-alphanumeric characters"),
	validation.Body(fieldDueBack, "Invalid date of delivery").Optional().ISO8601().ToDate(),
}

// BookInstanceForm holds the values a copy form is filled with.
type BookInstanceForm struct {
	ID      string
	Book    string
	Imprint string
	Status  string
	DueBack string
}

func formOf(bi model.BookInstance) BookInstanceForm {
	return BookInstanceForm{
		ID:      bi.ID,
		Book:    bi.BookID,
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: bi.DueBackISO(),
	}
}

// submitted echoes the form as posted, after whatever sanitizing the rules did.
func submitted(res *validation.Result) BookInstanceForm {
	return BookInstanceForm{
		Book:    res.Value(fieldBook),
		Imprint: res.Value(fieldImprint),
		Status:  res.Value(fieldStatus),
		DueBack: res.Value(fieldDueBack),
	}
}

// candidate is the typed copy built from a checked form.
func candidate(res *validation.Result) model.BookInstance {
	return model.BookInstance{
		BookID:  res.Value(fieldBook),
		Imprint: res.Value(fieldImprint),
		Status:  model.BookInstanceStatus(res.Value(fieldStatus)),
		DueBack: res.Date(fieldDueBack),
	}
}
