package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vendortrack/internal/storage"
	"github.com/MrJamesThe3rd/vendortrack/internal/user"
	"github.com/MrJamesThe3rd/vendortrack/internal/user/store"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := store.New(storage.NewMemory())

	p, err := s.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveProfile(ctx, &user.Profile{Name: "Rosa", CreatedAt: created}))

	p, err = s.LoadProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Rosa", p.Name)
	assert.True(t, created.Equal(p.CreatedAt))
}

func TestStore_NullProfile(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	require.NoError(t, backend.Put(ctx, storage.KeyUser, []byte("null")))

	p, err := store.New(backend).LoadProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)
}
