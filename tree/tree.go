package tree

import (
	stderrors "errors"
	"io/fs"
	"path"
	"strings"

	"github.com/jmgilman/go/fileops/config"
	"github.com/jmgilman/go/fileops/errors"
	"github.com/jmgilman/go/fileops/fs/core"
	"github.com/jmgilman/go/fileops/internal/logging"
	"go.uber.org/zap"
)

const (
	defaultBufferSize = 32 * 1024
	defaultMaxDepth   = 256
	dirPerm           = 0o755
)

// Mutator performs copy, move and delete on one filesystem. The host is
// probed once at construction. A Mutator holds only immutable settings and is
// safe for concurrent use on disjoint subtrees.
type Mutator struct {
	fs         core.FS
	caps       core.Capabilities
	strategy   Strategy
	bufferSize int
	preserve   bool
	maxDepth   int
	logger     *zap.Logger
}

// Option configures a Mutator.
type Option func(*Mutator)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Mutator) {
		m.logger = logging.OrNop(l)
	}
}

// WithBufferSize sets the buffer used to stream file contents.
// Non-positive values are ignored.
func WithBufferSize(n int) Option {
	return func(m *Mutator) {
		if n > 0 {
			m.bufferSize = n
		}
	}
}

// WithPreserveAttributes controls whether copied files keep their mode bits
// and modification time on hosts that support it. Enabled by default.
func WithPreserveAttributes(preserve bool) Option {
	return func(m *Mutator) {
		m.preserve = preserve
	}
}

// WithMaxDepth bounds directory recursion on hosts without symlink support,
// where a link cycle is indistinguishable from a deep tree.
// Non-positive values are ignored.
func WithMaxDepth(n int) Option {
	return func(m *Mutator) {
		if n > 0 {
			m.maxDepth = n
		}
	}
}

// New creates a Mutator for fsys.
func New(fsys core.FS, opts ...Option) *Mutator {
	m := &Mutator{
		fs:         fsys,
		caps:       core.Probe(fsys),
		bufferSize: defaultBufferSize,
		preserve:   true,
		maxDepth:   defaultMaxDepth,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.strategy = StrategyCopyDelete
	if m.caps.AtomicRename {
		m.strategy = StrategyRename
	}
	return m
}

// FromConfig creates a Mutator from loaded configuration. Later options
// override the configuration.
func FromConfig(fsys core.FS, cfg config.TreeConfig, opts ...Option) *Mutator {
	base := []Option{
		WithBufferSize(cfg.CopyBufferSize),
		WithPreserveAttributes(cfg.PreserveAttributes),
		WithMaxDepth(cfg.MaxDepth),
	}
	return New(fsys, append(base, opts...)...)
}

// Strategy returns the move strategy chosen for the host.
func (m *Mutator) Strategy() Strategy {
	return m.strategy
}

// Kind reports what name refers to. Symlinks are reported as KindSymlink
// only when the host supports them.
func (m *Mutator) Kind(name string) (Kind, error) {
	kind, _, err := m.inspect(core.Clean(name))
	return kind, err
}

// inspect stats name without following a final symlink when possible.
// A missing path is KindAbsent with a nil error.
func (m *Mutator) inspect(name string) (Kind, fs.FileInfo, error) {
	var (
		info fs.FileInfo
		err  error
	)
	if sfs, ok := m.fs.(core.SymlinkFS); ok && m.caps.Symlinks {
		info, err = sfs.Lstat(name)
	} else {
		info, err = m.fs.Stat(name)
	}
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return KindAbsent, nil, nil
		}
		return KindAbsent, nil, errors.FromFS(err, "failed to inspect path")
	}
	return kindOf(info), info, nil
}

// checkDepth fails once recursion passes the limit on hosts that cannot
// report symlinks.
func (m *Mutator) checkDepth(name string, depth int) error {
	if m.caps.Symlinks || depth < m.maxDepth {
		return nil
	}
	return errors.WithPath(
		errors.Newf(errors.CodeInvalidInput, "directory depth exceeds %d", m.maxDepth), name)
}

// checkParent fails unless the directory that will hold dst exists. The
// root always exists.
func (m *Mutator) checkParent(dst string) error {
	parent := path.Dir(dst)
	if parent == dst || parent == "/" {
		return nil
	}
	info, err := m.fs.Stat(parent)
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.FromFS(err, "failed to inspect destination parent")
	}
	if err != nil || !info.IsDir() {
		return errors.WithPath(
			errors.New(errors.CodeNotFound, "destination parent is not a directory"), parent)
	}
	return nil
}

// within reports whether name lies strictly beneath dir.
func within(dir, name string) bool {
	if dir == "/" {
		return name != "/"
	}
	return strings.HasPrefix(name, dir+"/")
}

func (m *Mutator) report(op, src, dst string, out Outcome) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("src", src),
	}
	if dst != "" {
		fields = append(fields, zap.String("dst", dst))
	}
	if out.Strategy != StrategyNone {
		fields = append(fields, zap.Stringer("strategy", out.Strategy))
	}

	if !out.OK() {
		fields = append(fields, zap.Bool("cleanup_pending", out.CleanupPending), zap.Error(out.Reason))
		m.logger.Warn("tree operation failed", fields...)
		return
	}
	m.logger.Debug("tree operation completed", append(fields, zap.Bool("skipped", out.Skipped))...)
}

// Copy copies src to dst with a default Mutator and reports success.
func Copy(fsys core.FS, src, dst string) bool {
	return New(fsys).Copy(src, dst).OK()
}

// Move moves src to dst with a default Mutator and reports success.
func Move(fsys core.FS, src, dst string) bool {
	return New(fsys).Move(src, dst).OK()
}

// Delete deletes name recursively with a default Mutator and reports
// success.
func Delete(fsys core.FS, name string) bool {
	return New(fsys).Delete(name).OK()
}
