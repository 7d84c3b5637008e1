package registry

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
)

var _ Registry = (*StaticRegistry)(nil)

// StaticRegistry serves a fixed list. It backs the mock provider.
type StaticRegistry struct {
	apps []models.AppEntry
}

// NewStaticRegistry copies apps. Invalid or duplicate ids are rejected.
func NewStaticRegistry(apps []models.AppEntry) (*StaticRegistry, error) {
	seen := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		if err := ValidateAppID(a.ID); err != nil {
			return nil, err
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate app id %q", common.ErrValidation, a.ID)
		}
		seen[a.ID] = struct{}{}
	}

	cp := slices.Clone(apps)
	sortByID(cp)
	return &StaticRegistry{apps: cp}, nil
}

func (r *StaticRegistry) ListApps(ctx context.Context) ([]models.AppEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRegistryUnavailable, err)
	}
	if r.apps == nil {
		return []models.AppEntry{}, nil
	}
	return slices.Clone(r.apps), nil
}
