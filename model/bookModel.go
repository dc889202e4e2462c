// model/book.go
package model

type Book struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	AuthorID string   `json:"author"`
	Summary  string   `json:"summary"`
	ISBN     string   `json:"isbn"`
	GenreIDs []string `json:"genre,omitempty"`
}

func (b Book) URL() string { return "/catalog/book/" + b.ID }

// BookTitle is the projection used to fill the book selector of a form.
type BookTitle struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
