package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maptheaccused/maptheaccused-api/models"
)

const accusedName = "accused"

// AccusedDatabase contains the methods to use with the accused database
type AccusedDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.Accused, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.Accused, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (interface{}, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
	DeleteMany(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error
}

type accusedDatabase struct {
	db DatabaseHelper
}

// NewAccusedDatabase initializes a new instance of accused database with the provided db connection
func NewAccusedDatabase(db DatabaseHelper) AccusedDatabase {
	return &accusedDatabase{
		db: db,
	}
}

func (a *accusedDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Accused, error) {
	accused := &models.Accused{}
	err := a.db.Collection(accusedName).FindOne(ctx, filter, opts...).Decode(&accused)
	if err != nil {
		return nil, err
	}
	return accused, nil
}

func (a *accusedDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Accused, error) {
	cursor, err := a.db.Collection(accusedName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var records []models.Accused
	if err := cursor.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func (a *accusedDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (interface{}, error) {
	return a.db.Collection(accusedName).InsertOne(ctx, document, opts...)
}

func (a *accusedDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return a.db.Collection(accusedName).UpdateOne(ctx, filter, update, opts...)
}

func (a *accusedDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return a.db.Collection(accusedName).DeleteOne(ctx, filter, opts...)
}

func (a *accusedDatabase) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return a.db.Collection(accusedName).DeleteMany(ctx, filter, opts...)
}

func (a *accusedDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return a.db.Collection(accusedName).CountDocuments(ctx, filter, opts...)
}

func (a *accusedDatabase) Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error {
	cursor, err := a.db.Collection(accusedName).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cursor.Decode(results)
}
