package refreshtokens

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Lifecycle(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, "u1", "h1", time.Hour))
	assert.ErrorIs(t, r.Create(ctx, "u2", "h1", time.Hour), common.ErrorAlreadyExists)

	got, err := r.Find(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, got.Expires.After(time.Now()))

	deleted, err := r.Delete(ctx, "h1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.Delete(ctx, "h1")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = r.Find(ctx, "h1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
