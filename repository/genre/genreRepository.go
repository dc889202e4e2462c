package genrerepo

import (
	"context"
	"fmt"

	"locallibrary/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "genres"

type Repo interface {
	Create(ctx context.Context, g *model.Genre) error
	Count(ctx context.Context) (int64, error)
}

type genreDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type repo struct{ c *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{c: db.Collection(Collection)} }

func (r *repo) Create(ctx context.Context, g *model.Genre) error {
	d := genreDoc{ID: primitive.NewObjectID(), Name: g.Name}
	if _, err := r.c.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("genre create: %w", err)
	}
	g.ID = d.ID.Hex()
	return nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("genre count: %w", err)
	}
	return n, nil
}
