package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/maptheaccused/maptheaccused-api/config"
	"github.com/maptheaccused/maptheaccused-api/databases"
	"github.com/maptheaccused/maptheaccused-api/databases/mocks"
	"github.com/maptheaccused/maptheaccused-api/models"
)

func TestNewUserDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	userDB := databases.NewUserDatabase(db)

	assert.NotEmpty(t, userDB)
}

func TestUserDatabase_FindOne(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).Username = "mocked-user"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "users").Return(collectionHelper)

	// Create new database with mocked Database interface
	userDba := databases.NewUserDatabase(dbHelper)

	// Call method with defined filter, that in our mocked function returns
	// mocked-error
	user, err := userDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, user)
	assert.EqualError(t, err, "mocked-error")

	// Now call the same function with different filter for the correct
	// mocked result
	user, err = userDba.FindOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, &models.User{Username: "mocked-user"}, user)
	assert.NoError(t, err)
}

func TestUserDatabase_Find(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelperCorrect databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelperCorrect = &mocks.CursorHelper{}

	cursorHelperCorrect.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.User)
		*arg = []models.User{{Username: "mocked-user"}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": true}).
		Return(nil, errors.New("mocked-error"))

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": false}).
		Return(cursorHelperCorrect, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "users").Return(collectionHelper)

	userDba := databases.NewUserDatabase(dbHelper)

	users, err := userDba.Find(context.Background(), bson.M{"error": true})

	assert.Empty(t, users)
	assert.EqualError(t, err, "mocked-error")

	users, err = userDba.Find(context.Background(), bson.M{"error": false})

	assert.Equal(t, []models.User{{Username: "mocked-user"}}, users)
	assert.NoError(t, err)
}

func TestUserDatabase_EnsureSuperAdmin(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	var capturedFilter bson.M
	var capturedUpdate bson.M
	var capturedOpts *options.UpdateOptions

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil).
		Run(func(args mock.Arguments) {
			capturedFilter = args.Get(1).(bson.M)
			capturedUpdate = args.Get(2).(bson.M)
			capturedOpts = args.Get(3).(*options.UpdateOptions)
		})

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "users").Return(collectionHelper)

	userDba := databases.NewUserDatabase(dbHelper)

	err := userDba.EnsureSuperAdmin(context.Background())
	assert.NoError(t, err)

	// the check-and-create must be a single upsert keyed on the role so
	// concurrent cold starts cannot create two bootstrap accounts
	assert.Equal(t, bson.M{"role": models.RoleSuperAdmin}, capturedFilter)
	assert.NotNil(t, capturedOpts.Upsert)
	assert.True(t, *capturedOpts.Upsert)

	doc, ok := capturedUpdate["$setOnInsert"].(models.User)
	assert.True(t, ok)
	assert.Equal(t, "admin", doc.Username)
	assert.Equal(t, models.RoleSuperAdmin, doc.Role)
	assert.NotEmpty(t, doc.UserID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(doc.Password), []byte("admin123")))
}

func TestUserDatabase_EnsureIndexes(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	var capturedIndexes []mongo.IndexModel

	collectionHelper.(*mocks.CollectionHelper).
		On("CreateIndexes", mock.Anything, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			capturedIndexes = args.Get(1).([]mongo.IndexModel)
		})

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "users").Return(collectionHelper)

	userDba := databases.NewUserDatabase(dbHelper)

	err := userDba.EnsureIndexes(context.Background())
	assert.NoError(t, err)
	assert.Len(t, capturedIndexes, 2)
}
