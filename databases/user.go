package databases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/maptheaccused/maptheaccused-api/models"
)

const userName = "users"

// Bootstrap credentials for the first superadmin, created once if no
// superadmin exists yet. The password should be rotated after first login.
const (
	bootstrapUsername = "admin"
	bootstrapEmail    = "admin@maptheaccused.com"
	bootstrapPassword = "admin123"
)

// UserDatabase contains the methods to use with the user database
type UserDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.User, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.User, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (interface{}, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
	EnsureIndexes(context.Context) error
	EnsureSuperAdmin(context.Context) error
}

type userDatabase struct {
	db DatabaseHelper
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

func (u *userDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.User, error) {
	user := &models.User{}
	err := u.db.Collection(userName).FindOne(ctx, filter, opts...).Decode(&user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.User, error) {
	cursor, err := u.db.Collection(userName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.Decode(&users); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *userDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (interface{}, error) {
	return u.db.Collection(userName).InsertOne(ctx, document, opts...)
}

func (u *userDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return u.db.Collection(userName).DeleteOne(ctx, filter, opts...)
}

// EnsureIndexes creates the unique indexes that back the registration
// conflict checks
func (u *userDatabase) EnsureIndexes(ctx context.Context) error {
	return u.db.Collection(userName).CreateIndexes(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}

// EnsureSuperAdmin creates the bootstrap superadmin account if none exists.
// The check-and-create is a single upsert keyed on the role, so concurrent
// cold starts collapse to one insert at the store level.
func (u *userDatabase) EnsureSuperAdmin(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = u.db.Collection(userName).UpdateOne(ctx,
		bson.M{"role": models.RoleSuperAdmin},
		bson.M{"$setOnInsert": models.User{
			UserID:    uuid.NewString(),
			Username:  bootstrapUsername,
			Email:     bootstrapEmail,
			Password:  string(hash),
			Role:      models.RoleSuperAdmin,
			CreatedAt: primitive.NewDateTimeFromTime(time.Now().UTC()),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}
