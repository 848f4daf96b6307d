package digest

import (
	"context"
	"encoding/hex"
	"hash"
	"io"

	"github.com/jmgilman/go/fileops/config"
	"github.com/jmgilman/go/fileops/errors"
	"github.com/jmgilman/go/fileops/fs/core"
	"github.com/jmgilman/go/fileops/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Status tells whether a Result carries a valid digest.
type Status int

const (
	// StatusOK means Sum holds the digest of the whole file.
	StatusOK Status = iota
	// StatusCancelled means the context was cancelled before the file was
	// fully read.
	StatusCancelled
	// StatusUnavailable means the algorithm is unsupported or the file could
	// not be opened or read. Err holds the cause.
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unavailable"
	}
}

// Result is the outcome of hashing one file.
type Result struct {
	Path   string
	Status Status
	// Sum is the lowercase hex digest, full width. Empty unless Status is
	// StatusOK.
	Sum string
	// Err is an errors.Error describing why Status is not StatusOK.
	Err error
}

// OK reports whether Sum is valid.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

const (
	defaultChunkSize   = 1024
	defaultConcurrency = 4
)

// Hasher streams files through a digest. It holds only immutable settings
// and is safe for concurrent use.
type Hasher struct {
	fs          core.ReadFS
	algorithm   string
	newHash     func() hash.Hash
	chunkSize   int
	concurrency int
	logger      *zap.Logger
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithAlgorithm selects the digest algorithm by name. An unknown name makes
// every Digest call return StatusUnavailable.
func WithAlgorithm(name string) Option {
	return func(h *Hasher) {
		h.algorithm = name
	}
}

// WithChunkSize sets how many bytes are read between cancellation checks.
// Non-positive values are ignored.
func WithChunkSize(n int) Option {
	return func(h *Hasher) {
		if n > 0 {
			h.chunkSize = n
		}
	}
}

// WithConcurrency bounds how many files DigestAll hashes at once.
// Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(h *Hasher) {
		if n > 0 {
			h.concurrency = n
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Hasher) {
		h.logger = logging.OrNop(l)
	}
}

// New creates a Hasher reading from fsys. The default algorithm is MD5 with
// 1024-byte chunks.
func New(fsys core.ReadFS, opts ...Option) *Hasher {
	h := &Hasher{
		fs:          fsys,
		algorithm:   MD5,
		chunkSize:   defaultChunkSize,
		concurrency: defaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.newHash, _ = lookup(h.algorithm)
	return h
}

// FromConfig creates a Hasher from loaded configuration. Later options
// override the configuration.
func FromConfig(fsys core.ReadFS, cfg config.HashConfig, opts ...Option) *Hasher {
	base := []Option{
		WithAlgorithm(cfg.Algorithm),
		WithChunkSize(cfg.ChunkSize),
		WithConcurrency(cfg.Concurrency),
	}
	return New(fsys, append(base, opts...)...)
}

// Algorithm returns the configured algorithm name.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Digest hashes the file at name. The context is checked before every
// chunk, so a context cancelled before the call yields StatusCancelled once
// the file is open.
func (h *Hasher) Digest(ctx context.Context, name string) Result {
	res := h.digest(ctx, name)
	if res.Status == StatusUnavailable {
		h.logger.Warn("digest unavailable",
			zap.String("path", name),
			zap.String("algorithm", h.algorithm),
			zap.Error(res.Err))
	} else {
		h.logger.Debug("digest finished",
			zap.String("path", name),
			zap.String("algorithm", h.algorithm),
			zap.Stringer("status", res.Status))
	}
	return res
}

func (h *Hasher) digest(ctx context.Context, name string) Result {
	res := Result{Path: name, Status: StatusUnavailable}

	if h.newHash == nil {
		res.Err = errors.WithPath(
			errors.Newf(errors.CodeNotImplemented, "unsupported digest algorithm %q", h.algorithm), name)
		return res
	}

	f, err := h.fs.Open(name)
	if err != nil {
		res.Err = errors.WithPath(errors.FromFS(err, "failed to open file"), name)
		return res
	}
	defer func() { _ = f.Close() }()

	sum := h.newHash()
	buf := make([]byte, h.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			res.Status = StatusCancelled
			res.Err = errors.WithPath(errors.Wrap(err, errors.CodeCancelled, "digest cancelled"), name)
			return res
		}

		n, err := f.Read(buf)
		sum.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Err = errors.WithPath(errors.FromFS(err, "failed to read file"), name)
			return res
		}
	}

	res.Status = StatusOK
	res.Sum = hex.EncodeToString(sum.Sum(nil))
	return res
}

// DigestAll hashes every name, at most WithConcurrency files at a time.
// Results are returned in input order and are independent of each other.
func (h *Hasher) DigestAll(ctx context.Context, names []string) []Result {
	results := make([]Result, len(names))

	var g errgroup.Group
	g.SetLimit(h.concurrency)
	for i, name := range names {
		g.Go(func() error {
			results[i] = h.Digest(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
