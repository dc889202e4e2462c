package bookinstancerepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"locallibrary/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	Collection     = "bookinstances"
	bookCollection = "books"
)

// Repo is the BookInstance collection of the entity store. Lookups return
// (nil, nil) when no document matches.
type Repo interface {
	List(ctx context.Context) ([]model.BookInstance, error)
	ByID(ctx context.Context, id string, populate bool) (*model.BookInstance, error)
	Create(ctx context.Context, bi *model.BookInstance) error
	Replace(ctx context.Context, id string, bi model.BookInstance) (bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status model.BookInstanceStatus) (int64, error)
}

type bookInstanceDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Book    primitive.ObjectID `bson:"book"`
	Imprint string             `bson:"imprint"`
	Status  string             `bson:"status"`
	DueBack *time.Time         `bson:"due_back,omitempty"`
}

type bookDoc struct {
	ID      primitive.ObjectID   `bson:"_id"`
	Title   string               `bson:"title"`
	Author  primitive.ObjectID   `bson:"author"`
	Summary string               `bson:"summary"`
	ISBN    string               `bson:"isbn"`
	Genre   []primitive.ObjectID `bson:"genre"`
}

// Instance must stay exported: the bson codec skips unexported fields, inline
// or not.
type populatedDoc struct {
	Instance bookInstanceDoc `bson:",inline"`
	Books    []bookDoc       `bson:"book_docs"`
}

type repo struct{ c *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{c: db.Collection(Collection)} }

func lookupBook() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: bookCollection},
		{Key: "localField", Value: "book"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "book_docs"},
	}}}
}

func (r *repo) List(ctx context.Context) ([]model.BookInstance, error) {
	cur, err := r.c.Aggregate(ctx, mongo.Pipeline{lookupBook()})
	if err != nil {
		return nil, fmt.Errorf("bookinstance list: %w", err)
	}
	var docs []populatedDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("bookinstance list: %w", err)
	}
	out := make([]model.BookInstance, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (r *repo) ByID(ctx context.Context, id string, populate bool) (*model.BookInstance, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	if !populate {
		var d bookInstanceDoc
		err := r.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("bookinstance by id: %w", err)
		}
		bi := d.toModel()
		return &bi, nil
	}

	cur, err := r.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
		{{Key: "$limit", Value: 1}},
		lookupBook(),
	})
	if err != nil {
		return nil, fmt.Errorf("bookinstance by id: %w", err)
	}
	var docs []populatedDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("bookinstance by id: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	bi := docs[0].toModel()
	return &bi, nil
}

func (r *repo) Create(ctx context.Context, bi *model.BookInstance) error {
	d, err := fromModel(*bi)
	if err != nil {
		return err
	}
	d.ID = primitive.NewObjectID()
	if d.Status == "" {
		d.Status = string(model.DefaultStatus)
	}
	if _, err := r.c.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("bookinstance create: %w", err)
	}
	bi.ID = d.ID.Hex()
	bi.Status = model.BookInstanceStatus(d.Status)
	return nil
}

func (r *repo) Replace(ctx context.Context, id string, bi model.BookInstance) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	d, err := fromModel(bi)
	if err != nil {
		return false, err
	}
	d.ID = oid
	res, err := r.c.ReplaceOne(ctx, bson.M{"_id": oid}, d)
	if err != nil {
		return false, fmt.Errorf("bookinstance replace: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := r.c.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("bookinstance delete: %w", err)
	}
	return nil
}

func (r *repo) Count(ctx context.Context, status model.BookInstanceStatus) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	n, err := r.c.CountDocuments(ctx, filter, options.Count())
	if err != nil {
		return 0, fmt.Errorf("bookinstance count: %w", err)
	}
	return n, nil
}

func fromModel(bi model.BookInstance) (bookInstanceDoc, error) {
	book, err := primitive.ObjectIDFromHex(bi.BookID)
	if err != nil {
		return bookInstanceDoc{}, fmt.Errorf("bookinstance: invalid book reference %q: %w", bi.BookID, err)
	}
	return bookInstanceDoc{
		Book:    book,
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: bi.DueBack,
	}, nil
}

func (d bookInstanceDoc) toModel() model.BookInstance {
	return model.BookInstance{
		ID:      d.ID.Hex(),
		BookID:  d.Book.Hex(),
		Imprint: d.Imprint,
		Status:  model.BookInstanceStatus(d.Status),
		DueBack: d.DueBack,
	}
}

func (d populatedDoc) toModel() model.BookInstance {
	bi := d.Instance.toModel()
	if len(d.Books) > 0 {
		b := d.Books[0]
		genres := make([]string, 0, len(b.Genre))
		for _, g := range b.Genre {
			genres = append(genres, g.Hex())
		}
		bi.Book = &model.Book{
			ID:       b.ID.Hex(),
			Title:    b.Title,
			AuthorID: b.Author.Hex(),
			Summary:  b.Summary,
			ISBN:     b.ISBN,
			GenreIDs: genres,
		}
	}
	return bi
}
