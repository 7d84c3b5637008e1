// Package registry enumerates the applications shown on the dashboard.
package registry

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
)

// Registry lists installed applications. Every call returns a fresh slice
// sorted by id.
type Registry interface {
	ListApps(ctx context.Context) ([]models.AppEntry, error)
}

var appIDPattern = regexp.MustCompile(`^[a-z-]+$`)

// ValidateAppID reports common.ErrValidation unless id is a slug of
// lowercase ASCII letters and dashes.
func ValidateAppID(id string) error {
	if !appIDPattern.MatchString(id) {
		return fmt.Errorf("%w: invalid app id %q", common.ErrValidation, id)
	}
	return nil
}

func sortByID(apps []models.AppEntry) {
	slices.SortFunc(apps, func(a, b models.AppEntry) int {
		return strings.Compare(a.ID, b.ID)
	})
}
