package registry

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAppID(t *testing.T) {
	for _, id := range []string{"calc", "text-editor", "a", "-"} {
		assert.NoError(t, ValidateAppID(id), id)
	}
	for _, id := range []string{"", "Calc", "calc2", "../etc", "a b", "app_x", "calc\n"} {
		assert.ErrorIs(t, ValidateAppID(id), common.ErrValidation, id)
	}
}

func TestStaticRegistry(t *testing.T) {
	apps := []models.AppEntry{
		{ID: "terminal", DisplayName: "Terminal", LaunchTarget: "term"},
		{ID: "calc", DisplayName: "Calculator", LaunchTarget: "calc"},
	}
	r, err := NewStaticRegistry(apps)
	require.NoError(t, err)

	apps[0].DisplayName = "mutated"

	got, err := r.ListApps(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "calc", got[0].ID)
	assert.Equal(t, "Terminal", got[1].DisplayName, "constructor copies its input")

	got[0].ID = "changed"
	again, err := r.ListApps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "calc", again[0].ID, "each call returns a fresh slice")
}

func TestStaticRegistry_Empty(t *testing.T) {
	r, err := NewStaticRegistry(nil)
	require.NoError(t, err)

	got, err := r.ListApps(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStaticRegistry_Rejects(t *testing.T) {
	_, err := NewStaticRegistry([]models.AppEntry{{ID: "calc"}, {ID: "calc"}})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = NewStaticRegistry([]models.AppEntry{{ID: "Bad_ID"}})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestStaticRegistry_CancelledContext(t *testing.T) {
	r, err := NewStaticRegistry([]models.AppEntry{{ID: "calc"}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.ListApps(ctx)
	assert.ErrorIs(t, err, common.ErrRegistryUnavailable)
}
