package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"access-service/internal/config"
	"access-service/internal/repository/model"
	"access-service/internal/repository/registrytypes"
)

const (
	databaseName = "access-service"

	userCollectionName     = "users"
	overrideCollectionName = "userPermissions"
)

var (
	UserNotFoundError     = errors.New("user not found")
	OverrideNotFoundError = errors.New("permission override not found")
)

type mongoRepository struct {
	logger *zap.SugaredLogger

	client   *mongo.Client
	database *mongo.Database

	userCollection     *mongo.Collection
	overrideCollection *mongo.Collection
}

func NewMongoRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup,
	cfg config.MongoDBConfig) (Repository, error) {

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetRegistry(createCodecRegistry()))
	if err != nil {
		return nil, err
	}

	database := client.Database(databaseName)
	repo := &mongoRepository{
		logger: logger,

		client:   client,
		database: database,

		userCollection:     database.Collection(userCollectionName),
		overrideCollection: database.Collection(overrideCollectionName),
	}

	repo.createIndexes(ctx)

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := client.Disconnect(ctx); err != nil {
			logger.Errorw("failed to disconnect from mongo", "error", err)
		}
	}()

	return repo, nil
}

// The (userId, permission) pair is unique so every grant/revoke is an
// in-place upsert, never a duplicate row.
func (m *mongoRepository) createIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := m.overrideCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "permission", Value: 1},
		},
		Options: options.Index().SetName("userId_permission").SetUnique(true),
	})
	if err != nil {
		m.logger.Errorw("failed to create userPermissions index", "error", err)
	}
}

func (m *mongoRepository) GetUser(ctx context.Context, userId uuid.UUID) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user model.User
	err := m.userCollection.FindOne(ctx, bson.M{"_id": userId}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, UserNotFoundError
		}
		return nil, err
	}

	return &user, nil
}

func (m *mongoRepository) GetUserRole(ctx context.Context, userId uuid.UUID) (model.Role, error) {
	user, err := m.GetUser(ctx, userId)
	if err != nil {
		return "", err
	}

	return user.Role, nil
}

func (m *mongoRepository) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := m.userCollection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var mongoResult []model.User
	if err := cursor.All(ctx, &mongoResult); err != nil {
		return nil, err
	}

	slice := make([]*model.User, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, nil
}

func (m *mongoRepository) GetOverride(ctx context.Context, userId uuid.UUID, permission model.Permission) (*model.UserPermission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var override model.UserPermission
	err := m.overrideCollection.FindOne(ctx, bson.M{"userId": userId, "permission": permission}).Decode(&override)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, OverrideNotFoundError
		}
		return nil, err
	}

	return &override, nil
}

func (m *mongoRepository) GetOverrides(ctx context.Context, userId uuid.UUID) ([]*model.UserPermission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.overrideCollection.Find(ctx, bson.M{"userId": userId})
	if err != nil {
		return nil, err
	}

	var mongoResult []model.UserPermission
	if err := cursor.All(ctx, &mongoResult); err != nil {
		return nil, err
	}

	slice := make([]*model.UserPermission, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, nil
}

func (m *mongoRepository) UpsertOverride(ctx context.Context, userId uuid.UUID, permission model.Permission, isRevoked bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.overrideCollection.UpdateOne(ctx,
		bson.M{"userId": userId, "permission": permission},
		bson.M{
			"$set":         bson.M{"isRevoked": isRevoked},
			"$setOnInsert": bson.M{"userId": userId, "permission": permission},
		},
		options.Update().SetUpsert(true),
	)

	return err
}

func (m *mongoRepository) BulkUpsertOverrides(ctx context.Context, userId uuid.UUID, permissions []model.Permission,
	isRevoked bool) error {

	if len(permissions) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, permission := range permissions {
			_, err := m.overrideCollection.UpdateOne(sc,
				bson.M{"userId": userId, "permission": permission},
				bson.M{
					"$set":         bson.M{"isRevoked": isRevoked},
					"$setOnInsert": bson.M{"userId": userId, "permission": permission},
				},
				options.Update().SetUpsert(true),
			)
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	})

	return err
}

func (m *mongoRepository) DeleteOverride(ctx context.Context, userId uuid.UUID, permission model.Permission) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.overrideCollection.DeleteOne(ctx, bson.M{"userId": userId, "permission": permission})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return OverrideNotFoundError
	}

	return nil
}

func (m *mongoRepository) DeleteAllOverrides(ctx context.Context, userId uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.overrideCollection.DeleteMany(ctx, bson.M{"userId": userId})
	return err
}

// BulkInsertOverrides inserts with skip-on-duplicate semantics: rows whose
// (userId, permission) pair already exists are left untouched.
func (m *mongoRepository) BulkInsertOverrides(ctx context.Context, overrides []model.UserPermission) error {
	if len(overrides) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(overrides))
	for i := range overrides {
		docs[i] = overrides[i]
	}

	_, err := m.overrideCollection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && duplicateKeysOnly(err) {
		return nil
	}

	return err
}

// duplicateKeysOnly reports whether err is a bulk write failure consisting
// solely of duplicate-key violations. A batch mixing duplicates with any
// genuine write failure must still surface the error.
func duplicateKeysOnly(err error) bool {
	var bulkErr mongo.BulkWriteException
	if !errors.As(err, &bulkErr) {
		return false
	}
	if bulkErr.WriteConcernError != nil || len(bulkErr.WriteErrors) == 0 {
		return false
	}
	for _, writeErr := range bulkErr.WriteErrors {
		if writeErr.Code != 11000 {
			return false
		}
	}
	return true
}

func (m *mongoRepository) CountOverrides(ctx context.Context, userId uuid.UUID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return m.overrideCollection.CountDocuments(ctx, bson.M{"userId": userId})
}

func (m *mongoRepository) TransitionUserRole(ctx context.Context, userId uuid.UUID, newRole model.Role,
	baseline []model.Permission) error {

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	// All-or-nothing: a concurrent permission check must never observe the
	// old overrides cleared but the new baseline not yet seeded.
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := m.userCollection.UpdateOne(sc, bson.M{"_id": userId}, bson.M{"$set": bson.M{"role": newRole}})
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			return nil, UserNotFoundError
		}

		if _, err := m.overrideCollection.DeleteMany(sc, bson.M{"userId": userId}); err != nil {
			return nil, err
		}

		if len(baseline) == 0 {
			return nil, nil
		}

		docs := make([]interface{}, len(baseline))
		for i, permission := range baseline {
			docs[i] = model.UserPermission{UserId: userId, Permission: permission, IsRevoked: false}
		}
		if _, err := m.overrideCollection.InsertMany(sc, docs); err != nil {
			return nil, err
		}

		return nil, nil
	})

	return err
}

func createCodecRegistry() *bsoncodec.Registry {
	return bson.NewRegistryBuilder().
		RegisterTypeEncoder(registrytypes.UUIDType, bsoncodec.ValueEncoderFunc(registrytypes.UuidEncodeValue)).
		RegisterTypeDecoder(registrytypes.UUIDType, bsoncodec.ValueDecoderFunc(registrytypes.UuidDecodeValue)).
		Build()
}
