package memory

import (
	"context"
	"testing"
	"time"

	"content-platform-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository(time.Hour)
	id := uuid.New()

	missing, err := repo.Find(ctx, id, "s1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	draft := &entity.Draft{ContentId: id, SessionId: "s1", Body: "[]", Focus: "a"}
	require.NoError(t, repo.Save(ctx, draft, 0))

	// Later changes to the caller's value are not visible in the store.
	draft.Body = "changed"

	got, err := repo.Find(ctx, id, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "[]", got.Body)

	other, err := repo.Find(ctx, id, "s2")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, repo.Delete(ctx, id, "s1"))
	got, err = repo.Find(ctx, id, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDraftRepositoryExpires(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository(time.Hour)
	id := uuid.New()

	require.NoError(t, repo.Save(ctx, &entity.Draft{ContentId: id, SessionId: "s"}, time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	got, err := repo.Find(ctx, id, "s")
	require.NoError(t, err)
	assert.Nil(t, got)
}
