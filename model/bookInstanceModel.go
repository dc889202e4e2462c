// model/bookinstance.go
package model

import "time"

type BookInstanceStatus string

const (
	StatusAvailable   BookInstanceStatus = "Available"
	StatusMaintenance BookInstanceStatus = "Maintenance"
	StatusLoaned      BookInstanceStatus = "Loaned"
	StatusReserved    BookInstanceStatus = "Reserved"
)

// DefaultStatus is stored when a copy is created without a status.
const DefaultStatus = StatusMaintenance

// Statuses lists the options offered by the copy form, in display order.
var Statuses = []BookInstanceStatus{StatusMaintenance, StatusAvailable, StatusLoaned, StatusReserved}

const BookInstanceListURL = "/catalog/bookinstances"

// BookInstance is a physical copy of a Book. Book is only set when the
// reference was populated by the store.
type BookInstance struct {
	ID      string             `json:"id"`
	BookID  string             `json:"book"`
	Book    *Book              `json:"-"`
	Imprint string             `json:"imprint"`
	Status  BookInstanceStatus `json:"status"`
	DueBack *time.Time         `json:"due_back,omitempty"`
}

func (bi BookInstance) URL() string { return "/catalog/bookinstance/" + bi.ID }

// DueBackFormatted renders the due date as "Jan 2, 2006", or "" when absent.
func (bi BookInstance) DueBackFormatted() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.Format("Jan 2, 2006")
}

// DueBackISO renders the due date for a date input.
func (bi BookInstance) DueBackISO() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.Format(time.DateOnly)
}
