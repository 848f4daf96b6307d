package storage

import (
	"strings"

	"github.com/jmgilman/go/fileops/config"
	"github.com/jmgilman/go/fileops/errors"
	"github.com/jmgilman/go/fileops/fs/core"
	"github.com/jmgilman/go/fileops/internal/logging"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// DefaultMarker separates a volume root from an application directory.
const DefaultMarker = "/Android/"

// Source records which strategy produced a Root.
type Source int

const (
	// SourceAppDir is a root derived from an application external directory.
	SourceAppDir Source = iota + 1
	// SourceEnvPrimary is the EXTERNAL_STORAGE variable.
	SourceEnvPrimary
	// SourceEnvSecondary is the SECONDARY_STORAGE variable.
	SourceEnvSecondary
	// SourceMount is a mount point of a mount table.
	SourceMount
)

func (s Source) String() string {
	switch s {
	case SourceAppDir:
		return "appdir"
	case SourceEnvPrimary:
		return "env-primary"
	case SourceEnvSecondary:
		return "env-secondary"
	case SourceMount:
		return "mount"
	default:
		return "unknown"
	}
}

// Root is the absolute path of one storage volume.
type Root struct {
	Path   string
	Source Source
}

// AppDirQuerier returns the per-volume external directories of the running
// application, one per volume. A volume that is not currently available is
// reported as an empty string.
type AppDirQuerier interface {
	ExternalDirs() ([]string, error)
}

// AppDirFunc adapts a function to AppDirQuerier.
type AppDirFunc func() ([]string, error)

// ExternalDirs calls f.
func (f AppDirFunc) ExternalDirs() ([]string, error) {
	return f()
}

// MountLister exposes mount points. *mount.Table implements it.
type MountLister interface {
	Points() []string
}

// Env holds the legacy storage variables.
type Env struct {
	Primary   string `envconfig:"EXTERNAL_STORAGE" required:"true"`
	Secondary string `envconfig:"SECONDARY_STORAGE"`
}

// LoadEnv reads EXTERNAL_STORAGE and SECONDARY_STORAGE. A missing or empty
// primary is a CodeInvalidConfig error.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, errors.Wrap(err, errors.CodeInvalidConfig, "failed to read storage environment")
	}
	if strings.TrimSpace(env.Primary) == "" {
		return Env{}, errors.New(errors.CodeInvalidConfig, "EXTERNAL_STORAGE is empty")
	}
	return env, nil
}

// Enumerator lists storage roots. It holds only immutable settings and is
// safe for concurrent use.
type Enumerator struct {
	appDirs AppDirQuerier
	mounts  MountLister
	host    core.ReadFS
	marker  string
	logger  *zap.Logger
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithAppDirs makes the Enumerator derive roots from application
// directories. It takes precedence over every other source.
func WithAppDirs(q AppDirQuerier) Option {
	return func(e *Enumerator) {
		e.appDirs = q
	}
}

// WithMounts makes the Enumerator report the mount points of l. Used when no
// AppDirQuerier is configured.
func WithMounts(l MountLister) Option {
	return func(e *Enumerator) {
		e.mounts = l
	}
}

// WithHost enables filtering of application directories that do not exist
// on fsys.
func WithHost(fsys core.ReadFS) Option {
	return func(e *Enumerator) {
		e.host = fsys
	}
}

// WithMarker overrides the separator between a volume root and an
// application directory. Empty values are ignored.
func WithMarker(marker string) Option {
	return func(e *Enumerator) {
		if marker != "" {
			e.marker = marker
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Enumerator) {
		e.logger = logging.OrNop(l)
	}
}

// New creates an Enumerator. Without WithAppDirs or WithMounts it falls back
// to the environment.
func New(opts ...Option) *Enumerator {
	e := &Enumerator{
		marker: DefaultMarker,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromConfig creates an Enumerator using the configured marker. Later
// options override the configuration.
func FromConfig(cfg config.StorageConfig, opts ...Option) *Enumerator {
	return New(append([]Option{WithMarker(cfg.Marker)}, opts...)...)
}

// ListRoots returns the storage roots currently available.
func (e *Enumerator) ListRoots() ([]Root, error) {
	var (
		roots []Root
		err   error
	)
	switch {
	case e.appDirs != nil:
		roots, err = e.fromAppDirs()
	case e.mounts != nil:
		roots = e.fromMounts()
	default:
		roots, err = e.fromEnv()
	}
	if err != nil {
		e.logger.Warn("storage enumeration failed", zap.Error(err))
		return nil, err
	}

	e.logger.Debug("storage roots listed", zap.Int("count", len(roots)))
	return roots, nil
}

func (e *Enumerator) fromAppDirs() ([]Root, error) {
	dirs, err := e.appDirs.ExternalDirs()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeIO, "failed to query application directories")
	}

	roots := make([]Root, 0, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if e.host != nil {
			if _, err := e.host.Stat(dir); err != nil {
				e.logger.Debug("skipping unavailable volume", zap.String("path", dir), zap.Error(err))
				continue
			}
		}
		roots = append(roots, Root{Path: VolumeRoot(dir, e.marker), Source: SourceAppDir})
	}
	return roots, nil
}

func (e *Enumerator) fromMounts() []Root {
	points := e.mounts.Points()
	roots := make([]Root, len(points))
	for i, p := range points {
		roots[i] = Root{Path: p, Source: SourceMount}
	}
	return roots
}

func (e *Enumerator) fromEnv() ([]Root, error) {
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	roots := []Root{{Path: core.Clean(env.Primary), Source: SourceEnvPrimary}}
	if strings.TrimSpace(env.Secondary) != "" {
		roots = append(roots, Root{Path: core.Clean(env.Secondary), Source: SourceEnvSecondary})
	}
	return roots, nil
}

// VolumeRoot returns the part of dir before the last occurrence of marker,
// normalized. A dir without the marker is returned whole.
//
//	VolumeRoot("/storage/sdcard1/Android/data/x/files", "/Android/") == "/storage/sdcard1"
func VolumeRoot(dir, marker string) string {
	if i := strings.LastIndex(dir, marker); i >= 0 {
		dir = dir[:i+1]
	}
	return core.Clean(dir)
}
