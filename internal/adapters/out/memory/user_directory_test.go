package memory_test

import (
	"testing"

	"orders/internal/adapters/out/memory"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDirectory_Lookup(t *testing.T) {
	known := ports.UserProfile{ID: kernel.NewUUID(), Name: "Jane", Email: "jane@example.com"}
	dir := memory.NewUserDirectory(known)
	missing := kernel.NewUUID()

	found, err := dir.Lookup(t.Context(), []kernel.UUID{known.ID, missing})

	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, known, found[known.ID])
}
