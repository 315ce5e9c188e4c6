package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"content-platform-be/internal/entity"
	"content-platform-be/internal/model"
	"content-platform-be/internal/repository/specification"
	"content-platform-be/internal/repository/unitofwork"
	"content-platform-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")
	require.NoError(t, gormDB.AutoMigrate(&model.Content{}))
	return gormDB
}

func TestContentRepository(t *testing.T) {
	gormDB := openDB(t)
	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	repo := uowFactory.NewUnitOfWork(ctx).ContentRepository()

	content := &entity.Content{
		Id:    uuid.New(),
		Type:  entity.ContentTypeArticle,
		Title: "integration-" + uuid.NewString(),
		Body:  `[{"id":"a","type":"paragraph","content":{"text":"hello"}}]`,
	}
	require.NoError(t, repo.Create(ctx, content))
	t.Cleanup(func() { gormDB.Unscoped().Delete(&model.Content{}, content.Id) })

	t.Run("Find by id", func(t *testing.T) {
		found, err := repo.FindOne(ctx, specification.ByID{ID: content.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, content.Body, found.Body)
		assert.Nil(t, found.IndexedAt)
	})

	t.Run("Filter by title", func(t *testing.T) {
		count, err := repo.Count(ctx, specification.TitleContains{Query: content.Title}, specification.ByContentType{Type: "article"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Store descriptors", func(t *testing.T) {
		bundle := []byte(`{"@context":"https://schema.org","@graph":[]}`)
		indexedAt := time.Now().Add(time.Second)
		require.NoError(t, repo.UpdateDescriptors(ctx, content.Id, bundle, indexedAt))

		found, err := repo.FindOne(ctx, specification.ByID{ID: content.Id})
		require.NoError(t, err)
		require.NotNil(t, found.IndexedAt)
		assert.JSONEq(t, string(bundle), string(found.Descriptors))

		stale, err := repo.FindAll(ctx, specification.NotIndexed{}, specification.ByID{ID: content.Id})
		require.NoError(t, err)
		assert.Empty(t, stale)
	})

	t.Run("Rolled back update is not visible", func(t *testing.T) {
		uow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		changed := *content
		changed.Title = "rolled back"
		require.NoError(t, uow.ContentRepository().Update(ctx, &changed))
		require.NoError(t, uow.Rollback())

		found, err := repo.FindOne(ctx, specification.ByID{ID: content.Id})
		require.NoError(t, err)
		assert.Equal(t, content.Title, found.Title)
	})

	t.Run("Soft delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, content.Id))
		found, err := repo.FindOne(ctx, specification.ByID{ID: content.Id})
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
