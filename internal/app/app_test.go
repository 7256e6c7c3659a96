package app_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vendortrack/internal/app"
	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
	"github.com/MrJamesThe3rd/vendortrack/internal/config"
	"github.com/MrJamesThe3rd/vendortrack/internal/event"
)

func fileConfig(t *testing.T, dir string) *config.Config {
	t.Helper()

	t.Setenv("STORAGE_DRIVER", config.DriverFile)
	t.Setenv("STORAGE_DIR", dir)

	cfg, err := config.Load()
	require.NoError(t, err)

	return cfg
}

func TestNew_FileStateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := fileConfig(t, t.TempDir())

	first, err := app.New(ctx, cfg)
	require.NoError(t, err)

	p, err := first.Products.Upsert(ctx, catalog.Product{Name: "Taco", Price: decimal.NewFromInt(5), Active: true})
	require.NoError(t, err)

	ev, err := first.Events.Create(ctx, event.Fields{Location: "Market"})
	require.NoError(t, err)

	_, err = first.Events.Tap(ctx, ev.ID, p.ID)
	require.NoError(t, err)

	_, err = first.Users.SignIn(ctx, "Rosa")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := app.New(ctx, cfg)
	require.NoError(t, err)
	defer second.Close()

	active, ok := second.Events.Active()
	require.True(t, ok)
	assert.Equal(t, ev.ID, active.ID)

	li, ok := active.LineItems.Get(p.ID)
	require.True(t, ok)
	assert.Equal(t, 1, li.Qty)
	assert.NotNil(t, active.LastAction)

	profile, err := second.Users.Current()
	require.NoError(t, err)
	assert.Equal(t, "Rosa", profile.Name)
}

func TestNew_Memory(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", config.DriverMemory)

	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Empty(t, a.Products.List())
	assert.Empty(t, a.Events.All())
}
