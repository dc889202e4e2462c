package authorrepo

import (
	"context"
	"fmt"
	"time"

	"locallibrary/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "authors"

type Repo interface {
	Create(ctx context.Context, a *model.Author) error
	Count(ctx context.Context) (int64, error)
}

type authorDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"first_name"`
	FamilyName  string             `bson:"family_name"`
	DateOfBirth *time.Time         `bson:"date_of_birth,omitempty"`
	DateOfDeath *time.Time         `bson:"date_of_death,omitempty"`
}

type repo struct{ c *mongo.Collection }

func New(db *mongo.Database) Repo { return &repo{c: db.Collection(Collection)} }

func (r *repo) Create(ctx context.Context, a *model.Author) error {
	d := authorDoc{
		ID:          primitive.NewObjectID(),
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: a.DateOfBirth,
		DateOfDeath: a.DateOfDeath,
	}
	if _, err := r.c.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("author create: %w", err)
	}
	a.ID = d.ID.Hex()
	return nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("author count: %w", err)
	}
	return n, nil
}
