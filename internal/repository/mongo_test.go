package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	mongoDb "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"access-service/internal/config"
	"access-service/internal/repository/model"
	"access-service/internal/utils"
)

const mongoUri = "mongodb://localhost:%s/?directConnection=true"

var (
	dbClient *mongoDb.Client
	database *mongoDb.Database
	repo     Repository
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct pool: %s", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("could not connect to docker: %s", err)
	}

	// single-node replica set so the role-transition transaction is usable
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "6.0.3",
		Cmd:        []string{"--replSet", "rs0", "--bind_ip_all"},
	}, func(cfg *docker.HostConfig) {
		cfg.AutoRemove = true
		cfg.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		log.Fatalf("could not start resource: %s", err)
	}

	uri := fmt.Sprintf(mongoUri, resource.GetPort("27017/tcp"))

	err = pool.Retry(func() (err error) {
		ctx := context.Background()

		dbClient, err = mongoDb.Connect(ctx, options.Client().ApplyURI(uri).SetRegistry(createCodecRegistry()))
		if err != nil {
			return
		}
		if err = dbClient.Ping(ctx, nil); err != nil {
			return
		}

		result := dbClient.Database("admin").RunCommand(ctx, bson.D{{Key: "replSetInitiate", Value: bson.D{}}})
		if result.Err() != nil && !strings.Contains(result.Err().Error(), "already initialized") {
			return result.Err()
		}

		// a write only succeeds once the node has elected itself primary
		readiness := dbClient.Database("readiness").Collection("readiness")
		if _, err = readiness.InsertOne(ctx, bson.M{"ok": true}); err != nil {
			return
		}

		repo, err = NewMongoRepository(ctx, zap.NewNop().Sugar(), &sync.WaitGroup{}, config.MongoDBConfig{URI: uri})
		database = dbClient.Database(databaseName)
		return
	})

	if err != nil {
		log.Fatalf("could not connect to docker: %s", err)
	}

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		log.Fatalf("could not purge resource: %s", err)
	}

	if err = dbClient.Disconnect(context.TODO()); err != nil {
		log.Panicf("could not disconnect from mongo: %s", err)
	}

	os.Exit(code)
}

var testUserIds = []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

func testUser(id uuid.UUID, email string, role model.Role) model.User {
	return model.User{
		Id:             id,
		Email:          email,
		Name:           utils.PointerOf("Test User"),
		Role:           role,
		EmailConfirmed: true,
	}
}

func cleanup() {
	ctx := context.Background()
	if _, err := database.Collection(userCollectionName).DeleteMany(ctx, bson.D{}); err != nil {
		log.Panicf("could not clean users: %s", err)
	}
	if _, err := database.Collection(overrideCollectionName).DeleteMany(ctx, bson.D{}); err != nil {
		log.Panicf("could not clean overrides: %s", err)
	}
}

func TestMongoRepository_GetUser(t *testing.T) {
	// Setup
	user := testUser(testUserIds[0], "one@example.com", model.RoleDeveloper)
	_, err := database.Collection(userCollectionName).InsertOne(context.Background(), user)
	assert.NoError(t, err)

	// Test
	got, err := repo.GetUser(context.Background(), user.Id)
	assert.NoError(t, err)
	assert.Equal(t, user, *got)

	got, err = repo.GetUser(context.Background(), testUserIds[1])
	assert.ErrorIs(t, err, UserNotFoundError)
	assert.Nil(t, got)

	cleanup()
}

func TestMongoRepository_GetUserRole(t *testing.T) {
	user := testUser(testUserIds[0], "one@example.com", model.RoleAdmin)
	_, err := database.Collection(userCollectionName).InsertOne(context.Background(), user)
	assert.NoError(t, err)

	role, err := repo.GetUserRole(context.Background(), user.Id)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	_, err = repo.GetUserRole(context.Background(), testUserIds[1])
	assert.ErrorIs(t, err, UserNotFoundError)

	cleanup()
}

func TestMongoRepository_GetAllUsers(t *testing.T) {
	users := []interface{}{
		testUser(testUserIds[0], "one@example.com", model.RoleOwner),
		testUser(testUserIds[1], "two@example.com", model.RoleDeveloper),
	}
	_, err := database.Collection(userCollectionName).InsertMany(context.Background(), users)
	assert.NoError(t, err)

	got, err := repo.GetAllUsers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	cleanup()

	got, err = repo.GetAllUsers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestMongoRepository_UpsertOverride(t *testing.T) {
	userId := testUserIds[0]

	// Test insert on first touch
	err := repo.UpsertOverride(context.Background(), userId, model.PermissionViewPrompts, false)
	assert.NoError(t, err)

	override, err := repo.GetOverride(context.Background(), userId, model.PermissionViewPrompts)
	assert.NoError(t, err)
	assert.False(t, override.IsRevoked)

	// Test toggle in place, never a second row
	err = repo.UpsertOverride(context.Background(), userId, model.PermissionViewPrompts, true)
	assert.NoError(t, err)

	override, err = repo.GetOverride(context.Background(), userId, model.PermissionViewPrompts)
	assert.NoError(t, err)
	assert.True(t, override.IsRevoked)

	count, err := repo.CountOverrides(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	cleanup()
}

func TestMongoRepository_GetOverride(t *testing.T) {
	userId := testUserIds[0]

	override, err := repo.GetOverride(context.Background(), userId, model.PermissionEditPrompts)
	assert.ErrorIs(t, err, OverrideNotFoundError)
	assert.Nil(t, override)

	err = repo.UpsertOverride(context.Background(), userId, model.PermissionEditPrompts, true)
	assert.NoError(t, err)

	override, err = repo.GetOverride(context.Background(), userId, model.PermissionEditPrompts)
	assert.NoError(t, err)
	assert.Equal(t, model.UserPermission{UserId: userId, Permission: model.PermissionEditPrompts, IsRevoked: true}, *override)

	cleanup()
}

func TestMongoRepository_GetOverrides(t *testing.T) {
	userId := testUserIds[0]
	otherId := testUserIds[1]

	assert.NoError(t, repo.UpsertOverride(context.Background(), userId, model.PermissionViewPrompts, false))
	assert.NoError(t, repo.UpsertOverride(context.Background(), userId, model.PermissionManageUsers, true))
	assert.NoError(t, repo.UpsertOverride(context.Background(), otherId, model.PermissionViewPrompts, false))

	overrides, err := repo.GetOverrides(context.Background(), userId)
	assert.NoError(t, err)
	assert.Len(t, overrides, 2)
	for _, override := range overrides {
		assert.Equal(t, userId, override.UserId)
	}

	cleanup()
}

func TestMongoRepository_BulkInsertOverrides(t *testing.T) {
	userId := testUserIds[0]

	// an existing revocation must survive a skip-duplicate seeding pass
	assert.NoError(t, repo.UpsertOverride(context.Background(), userId, model.PermissionViewPrompts, true))

	rows := []model.UserPermission{
		{UserId: userId, Permission: model.PermissionViewPrompts, IsRevoked: false},
		{UserId: userId, Permission: model.PermissionCreatePrompts, IsRevoked: false},
		{UserId: userId, Permission: model.PermissionEditPrompts, IsRevoked: false},
	}
	assert.NoError(t, repo.BulkInsertOverrides(context.Background(), rows))

	count, err := repo.CountOverrides(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	override, err := repo.GetOverride(context.Background(), userId, model.PermissionViewPrompts)
	assert.NoError(t, err)
	assert.True(t, override.IsRevoked)

	// Test idempotency
	assert.NoError(t, repo.BulkInsertOverrides(context.Background(), rows))

	count, err = repo.CountOverrides(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	cleanup()
}

func TestMongoRepository_BulkUpsertOverrides(t *testing.T) {
	userId := testUserIds[0]

	// an existing revocation must flip back to a grant, not be skipped
	assert.NoError(t, repo.UpsertOverride(context.Background(), userId, model.PermissionViewPrompts, true))

	perms := []model.Permission{model.PermissionViewPrompts, model.PermissionCreatePrompts, model.PermissionEditPrompts}
	assert.NoError(t, repo.BulkUpsertOverrides(context.Background(), userId, perms, false))

	count, err := repo.CountOverrides(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	for _, p := range perms {
		override, err := repo.GetOverride(context.Background(), userId, p)
		assert.NoError(t, err)
		assert.False(t, override.IsRevoked)
	}

	// an empty batch writes nothing
	assert.NoError(t, repo.BulkUpsertOverrides(context.Background(), userId, nil, false))

	count, err = repo.CountOverrides(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	cleanup()
}

func TestDuplicateKeysOnly(t *testing.T) {
	dup := mongoDb.BulkWriteError{WriteError: mongoDb.WriteError{Code: 11000}}
	other := mongoDb.BulkWriteError{WriteError: mongoDb.WriteError{Code: 121}}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "only duplicate keys",
			err:  mongoDb.BulkWriteException{WriteErrors: []mongoDb.BulkWriteError{dup, dup}},
			want: true,
		},
		{
			name: "duplicate mixed with a genuine failure",
			err:  mongoDb.BulkWriteException{WriteErrors: []mongoDb.BulkWriteError{dup, other}},
			want: false,
		},
		{
			name: "write concern failure",
			err: mongoDb.BulkWriteException{
				WriteConcernError: &mongoDb.WriteConcernError{Code: 64},
				WriteErrors:       []mongoDb.BulkWriteError{dup},
			},
			want: false,
		},
		{
			name: "no write errors at all",
			err:  mongoDb.BulkWriteException{},
			want: false,
		},
		{
			name: "unrelated error",
			err:  context.DeadlineExceeded,
			want: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, duplicateKeysOnly(test.err))
		})
	}
}

func TestMongoRepository_DeleteOverride(t *testing.T) {
	userId := testUserIds[0]

	err := repo.DeleteOverride(context.Background(), userId, model.PermissionViewPrompts)
	assert.ErrorIs(t, err, OverrideNotFoundError)

	assert.NoError(t, repo.UpsertOverride(context.Background(), userId, model.PermissionViewPrompts, false))
	assert.NoError(t, repo.DeleteOverride(context.Background(), userId, model.PermissionViewPrompts))

	count, err := repo.CountOverrides(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	cleanup()
}

func TestMongoRepository_DeleteAllOverrides(t *testing.T) {
	userId := testUserIds[0]
	otherId := testUserIds[1]

	assert.NoError(t, repo.UpsertOverride(context.Background(), userId, model.PermissionViewPrompts, false))
	assert.NoError(t, repo.UpsertOverride(context.Background(), userId, model.PermissionEditPrompts, true))
	assert.NoError(t, repo.UpsertOverride(context.Background(), otherId, model.PermissionViewPrompts, false))

	assert.NoError(t, repo.DeleteAllOverrides(context.Background(), userId))

	count, err := repo.CountOverrides(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// other users' rows are untouched
	count, err = repo.CountOverrides(context.Background(), otherId)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	cleanup()
}

func TestMongoRepository_TransitionUserRole(t *testing.T) {
	userId := testUserIds[0]

	user := testUser(userId, "one@example.com", model.RoleDeveloper)
	_, err := database.Collection(userCollectionName).InsertOne(context.Background(), user)
	assert.NoError(t, err)

	// stale state from the old role: an extra grant and a revocation
	assert.NoError(t, repo.UpsertOverride(context.Background(), userId, model.PermissionManageUsers, false))
	assert.NoError(t, repo.UpsertOverride(context.Background(), userId, model.PermissionCreatePrompts, true))

	baseline := model.BaselinePermissions(model.RoleAdmin)
	assert.NoError(t, repo.TransitionUserRole(context.Background(), userId, model.RoleAdmin, baseline))

	// Verify role
	role, err := repo.GetUserRole(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	// Verify the ledger is exactly the new baseline, nothing stale
	overrides, err := repo.GetOverrides(context.Background(), userId)
	assert.NoError(t, err)
	assert.Len(t, overrides, len(baseline))
	for _, override := range overrides {
		assert.False(t, override.IsRevoked)
		assert.Contains(t, baseline, override.Permission)
	}

	cleanup()
}

func TestMongoRepository_TransitionUserRole_UserNotFound(t *testing.T) {
	err := repo.TransitionUserRole(context.Background(), testUserIds[0], model.RoleAdmin,
		model.BaselinePermissions(model.RoleAdmin))
	assert.ErrorIs(t, err, UserNotFoundError)

	// nothing was seeded for the missing user
	count, err := repo.CountOverrides(context.Background(), testUserIds[0])
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	cleanup()
}
