package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/logging"
	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds one directory scan when none is configured.
const DefaultTimeout = 2 * time.Second

// Descriptor file names, in lookup order.
var descriptorNames = []string{"app.toml", "app.yaml", "app.yml"}

var errNoDescriptor = errors.New("no descriptor")

type descriptor struct {
	DisplayName string `toml:"display_name" yaml:"display_name"`
	Icon        string `toml:"icon" yaml:"icon"`
	Launch      string `toml:"launch" yaml:"launch"`
}

var _ Registry = (*FSRegistry)(nil)

// FSRegistry reads one descriptor per app directory:
//
//	<apps_dir>/<id>/app.toml  (or app.yaml)
type FSRegistry struct {
	fsys      fs.FS
	iconsRoot string
	timeout   time.Duration
	logger    logging.Logger
}

func NewFSRegistry(fsys fs.FS, iconsRoot string, timeout time.Duration, l logging.Logger) *FSRegistry {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if l == nil {
		l = logging.Nop{}
	}
	return &FSRegistry{
		fsys:      fsys,
		iconsRoot: iconsRoot,
		timeout:   timeout,
		logger:    l.With("module", "fs_registry"),
	}
}

type scanResult struct {
	apps []models.AppEntry
	err  error
}

func (r *FSRegistry) ListApps(ctx context.Context) ([]models.AppEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// fs.FS has no context support, so a stuck read is abandoned rather than
	// interrupted.
	done := make(chan scanResult, 1)
	go func() {
		apps, err := r.scan(ctx)
		done <- scanResult{apps: apps, err: err}
	}()

	select {
	case res := <-done:
		return res.apps, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: scan apps: %w", common.ErrRegistryUnavailable, ctx.Err())
	}
}

func (r *FSRegistry) scan(ctx context.Context) ([]models.AppEntry, error) {
	dirs, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: read apps dir: %w", common.ErrRegistryUnavailable, err)
	}

	apps := make([]models.AppEntry, 0, len(dirs))
	for _, d := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: scan apps: %w", common.ErrRegistryUnavailable, err)
		}
		if !d.IsDir() {
			continue
		}

		id := d.Name()
		if err := ValidateAppID(id); err != nil {
			r.logger.Warn(ctx, "skipping app directory", "dir", id, "error", err)
			continue
		}

		entry, err := r.load(id)
		if err != nil {
			r.logger.Warn(ctx, "skipping app", "id", id, "error", err)
			continue
		}
		apps = append(apps, entry)
	}

	sortByID(apps)
	return apps, nil
}

func (r *FSRegistry) load(id string) (models.AppEntry, error) {
	d, err := r.readDescriptor(id)
	if err != nil {
		return models.AppEntry{}, err
	}

	launch := strings.TrimSpace(d.Launch)
	if launch == "" {
		return models.AppEntry{}, fmt.Errorf("%w: launch is required", common.ErrValidation)
	}

	name := strings.TrimSpace(d.DisplayName)
	if name == "" {
		name = id
	}

	icon := d.Icon
	if icon == "" {
		icon = id + ".png"
	}
	iconPath, err := ResolveIcon(r.iconsRoot, icon)
	if err != nil {
		return models.AppEntry{}, err
	}

	return models.AppEntry{
		ID:           id,
		DisplayName:  name,
		IconPath:     iconPath,
		LaunchTarget: launch,
	}, nil
}

func (r *FSRegistry) readDescriptor(id string) (descriptor, error) {
	for _, name := range descriptorNames {
		p := path.Join(id, name)
		data, err := fs.ReadFile(r.fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return descriptor{}, fmt.Errorf("read %s: %w", p, err)
		}
		return parseDescriptor(data, name)
	}
	return descriptor{}, errNoDescriptor
}

func parseDescriptor(data []byte, filename string) (descriptor, error) {
	var d descriptor
	if strings.HasSuffix(filename, ".toml") {
		if _, err := toml.Decode(string(data), &d); err != nil {
			return d, fmt.Errorf("parse TOML: %w", err)
		}
		return d, nil
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse YAML: %w", err)
	}
	return d, nil
}

// ResolveIcon joins a relative icon path onto root. Absolute paths,
// backslashes and any ".." element are rejected so the result cannot leave
// root.
func ResolveIcon(root, icon string) (string, error) {
	if strings.Contains(icon, `\`) || !fs.ValidPath(icon) || icon == "." {
		return "", fmt.Errorf("%w: unsafe icon path %q", common.ErrValidation, icon)
	}
	if root == "" {
		return icon, nil
	}
	return path.Join(root, icon), nil
}
