package bookrepo

import (
	"context"
	"fmt"

	"locallibrary/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "books"

type Repo interface {
	ListTitles(ctx context.Context, sortByTitle bool) ([]model.BookTitle, error)
	Create(ctx context.Context, b *model.Book) error
	Count(ctx context.Context) (int64, error)
}

type bookDoc struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty"`
	Title   string               `bson:"title"`
	Author  primitive.ObjectID   `bson:"author"`
	Summary string               `bson:"summary"`
	ISBN    string               `bson:"isbn"`
	Genre   []primitive.ObjectID `bson:"genre,omitempty"`
}

type titleDoc struct {
	ID    primitive.ObjectID `bson:"_id"`
	Title string             `bson:"title"`
}

type repo struct{ c *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{c: db.Collection(Collection)} }

func (r *repo) ListTitles(ctx context.Context, sortByTitle bool) ([]model.BookTitle, error) {
	opts := options.Find().SetProjection(bson.M{"title": 1})
	if sortByTitle {
		opts.SetSort(bson.D{{Key: "title", Value: 1}})
	}
	cur, err := r.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("book titles: %w", err)
	}
	var docs []titleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("book titles: %w", err)
	}
	out := make([]model.BookTitle, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.BookTitle{ID: d.ID.Hex(), Title: d.Title})
	}
	return out, nil
}

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	author, err := primitive.ObjectIDFromHex(b.AuthorID)
	if err != nil {
		return fmt.Errorf("book: invalid author reference %q: %w", b.AuthorID, err)
	}
	d := bookDoc{
		ID:      primitive.NewObjectID(),
		Title:   b.Title,
		Author:  author,
		Summary: b.Summary,
		ISBN:    b.ISBN,
	}
	for _, g := range b.GenreIDs {
		oid, err := primitive.ObjectIDFromHex(g)
		if err != nil {
			return fmt.Errorf("book: invalid genre reference %q: %w", g, err)
		}
		d.Genre = append(d.Genre, oid)
	}
	if _, err := r.c.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("book create: %w", err)
	}
	b.ID = d.ID.Hex()
	return nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("book count: %w", err)
	}
	return n, nil
}
