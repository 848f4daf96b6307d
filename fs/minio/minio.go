package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"syscall"
	"time"

	"github.com/jmgilman/go/fileops/fs/core"
	"github.com/jmgilman/go/fileops/fs/minio/internal/errs"
	"github.com/jmgilman/go/fileops/fs/minio/internal/pathutil"
	"github.com/jmgilman/go/fileops/fs/minio/internal/types"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	defaultMultipartThreshold = 5 * 1024 * 1024
	dirContentType            = "application/x-directory"
)

// MinioFS implements core.FS for MinIO/S3-compatible storage.
//
//nolint:revive // MinioFS name is intentional to match LocalFS and MemoryFS
type MinioFS struct {
	client             *minio.Client
	bucket             string
	prefix             string
	multipartThreshold int64
}

// NewMinIO creates a MinIO-backed filesystem.
// Returns an error if the configuration is invalid or the client cannot be
// built. No request is made to the server.
func NewMinIO(cfg Config) (*MinioFS, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	threshold := cfg.MultipartThreshold
	if threshold <= 0 {
		threshold = defaultMultipartThreshold
	}

	return &MinioFS{
		client:             client,
		bucket:             cfg.Bucket,
		prefix:             pathutil.NormalizePrefix(cfg.Prefix),
		multipartThreshold: threshold,
	}, nil
}

// Type returns FSTypeRemote.
func (m *MinioFS) Type() core.FSType {
	return core.FSTypeRemote
}

// AtomicRename returns false: object stores cannot move a key in place.
func (m *MinioFS) AtomicRename() bool {
	return false
}

func (m *MinioFS) key(name string) string {
	return pathutil.Key(m.prefix, name)
}

// object describes what lives at a path.
type object struct {
	dir     bool
	size    int64
	modTime time.Time
}

func (o object) info(name string) *types.FileInfo {
	if o.dir {
		return types.NewDirInfo(name, o.modTime)
	}
	return types.NewFileInfo(name, o.size, o.modTime)
}

// lookup resolves name to a regular object or a virtual directory.
// It returns fs.ErrNotExist when neither exists.
func (m *MinioFS) lookup(ctx context.Context, name string) (object, error) {
	if core.Clean(name) == "/" {
		return object{dir: true}, nil
	}

	key := m.key(name)
	stat, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return object{size: stat.Size, modTime: stat.LastModified}, nil
	}
	if err = errs.Translate(err); !errors.Is(err, fs.ErrNotExist) {
		return object{}, err
	}

	dirKey := pathutil.DirKey(key)
	found, err := m.listUpTo(ctx, dirKey, 1)
	if err != nil {
		return object{}, err
	}
	if len(found) == 0 {
		return object{}, fs.ErrNotExist
	}
	o := object{dir: true}
	if found[0].Key == dirKey {
		o.modTime = found[0].LastModified
	}
	return o, nil
}

// listUpTo returns at most limit objects stored beneath dirKey, marker
// included, and stops the listing early.
func (m *MinioFS) listUpTo(ctx context.Context, dirKey string, limit int) ([]minio.ObjectInfo, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out []minio.ObjectInfo
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    dirKey,
		Recursive: true,
		MaxKeys:   limit,
	}) {
		if obj.Err != nil {
			return nil, errs.Translate(obj.Err)
		}
		out = append(out, obj)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ReadFS

// Open opens the named object for streaming reads.
func (m *MinioFS) Open(name string) (fs.File, error) {
	return newReader(context.Background(), m, name)
}

// Stat returns metadata for an object or a virtual directory.
func (m *MinioFS) Stat(name string) (fs.FileInfo, error) {
	o, err := m.lookup(context.Background(), name)
	if err != nil {
		return nil, errs.PathError("stat", name, err)
	}
	return o.info(path.Base(core.Clean(name))), nil
}

// ReadDir lists the direct children of a directory sorted by name.
// Nested keys are reported as directories.
func (m *MinioFS) ReadDir(name string) ([]fs.DirEntry, error) {
	ctx := context.Background()

	o, err := m.lookup(ctx, name)
	if err != nil {
		return nil, errs.PathError("readdir", name, err)
	}
	if !o.dir {
		return nil, errs.PathErrorf("readdir", name, "not a directory: %w", fs.ErrInvalid)
	}

	dirKey := pathutil.DirKey(m.key(name))
	var entries []fs.DirEntry
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    dirKey,
		Recursive: false,
	}) {
		if obj.Err != nil {
			return nil, errs.PathError("readdir", name, errs.Translate(obj.Err))
		}
		if obj.Key == dirKey {
			continue
		}
		child, isDir := pathutil.ChildName(dirKey, obj.Key)
		if child == "" {
			continue
		}
		if isDir {
			entries = append(entries, types.NewDirEntry(types.NewDirInfo(child, obj.LastModified)))
		} else {
			entries = append(entries, types.NewDirEntry(types.NewFileInfo(child, obj.Size, obj.LastModified)))
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// ReadFile reads the named object into memory.
func (m *MinioFS) ReadFile(name string) ([]byte, error) {
	ctx := context.Background()
	key := m.key(name)

	stat, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, errs.PathError("readfile", name, errs.Translate(err))
	}
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.PathError("readfile", name, errs.Translate(err))
	}
	defer func() { _ = obj.Close() }()

	buf := make([]byte, stat.Size)
	if _, err := io.ReadFull(obj, buf); err != nil {
		return nil, errs.PathError("readfile", name, err)
	}
	return buf, nil
}

// Exists reports whether an object or virtual directory lives at name.
func (m *MinioFS) Exists(name string) (bool, error) {
	_, err := m.lookup(context.Background(), name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errs.PathError("exists", name, err)
}

// WriteFS

// Create returns a handle whose contents are uploaded on Close.
// Parent directories are implicit.
func (m *MinioFS) Create(name string) (core.File, error) {
	return newWriter(m, name), nil
}

// WriteFile uploads data as the named object. The mode is ignored.
func (m *MinioFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	_, err := m.client.PutObject(context.Background(), m.bucket, m.key(name),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	return errs.PathError("writefile", name, errs.Translate(err))
}

// Mkdir writes a directory marker. It fails with fs.ErrExist when an object
// or directory already lives at name.
func (m *MinioFS) Mkdir(name string, _ fs.FileMode) error {
	_, err := m.lookup(context.Background(), name)
	if err == nil {
		return errs.PathError("mkdir", name, fs.ErrExist)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return errs.PathError("mkdir", name, err)
	}
	return errs.PathError("mkdir", name, m.putMarker(name))
}

// MkdirAll writes a directory marker unless a directory already exists.
// Intermediate directories are implied by the marker's key.
func (m *MinioFS) MkdirAll(name string, _ fs.FileMode) error {
	o, err := m.lookup(context.Background(), name)
	switch {
	case err == nil && o.dir:
		return nil
	case err == nil:
		return errs.PathErrorf("mkdir", name, "not a directory: %w", fs.ErrExist)
	case !errors.Is(err, fs.ErrNotExist):
		return errs.PathError("mkdir", name, err)
	}
	return errs.PathError("mkdir", name, m.putMarker(name))
}

func (m *MinioFS) putMarker(name string) error {
	_, err := m.client.PutObject(context.Background(), m.bucket,
		pathutil.DirKey(m.key(name)), bytes.NewReader(nil), 0,
		minio.PutObjectOptions{ContentType: dirContentType})
	return errs.Translate(err)
}

// ManageFS

// Remove deletes an object or an empty directory's marker.
// A directory with anything stored beneath it fails with ENOTEMPTY.
func (m *MinioFS) Remove(name string) error {
	ctx := context.Background()
	if core.Clean(name) == "/" {
		return errs.PathError("remove", name, fs.ErrInvalid)
	}

	key := m.key(name)
	if _, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{}); err == nil {
		return errs.PathError("remove", name,
			errs.Translate(m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})))
	} else if err = errs.Translate(err); !errors.Is(err, fs.ErrNotExist) {
		return errs.PathError("remove", name, err)
	}

	dirKey := pathutil.DirKey(key)
	found, err := m.listUpTo(ctx, dirKey, 2)
	if err != nil {
		return errs.PathError("remove", name, err)
	}
	if len(found) == 0 {
		return errs.PathError("remove", name, fs.ErrNotExist)
	}
	for _, obj := range found {
		if obj.Key != dirKey {
			return errs.PathError("remove", name, syscall.ENOTEMPTY)
		}
	}
	return errs.PathError("remove", name,
		errs.Translate(m.client.RemoveObject(ctx, m.bucket, dirKey, minio.RemoveObjectOptions{})))
}

// Rename is not supported. It fails with an error wrapping
// core.ErrUnsupported so callers fall back to copy and delete.
func (m *MinioFS) Rename(oldpath, _ string) error {
	return errs.PathErrorf("rename", oldpath, "object stores cannot rename: %w", core.ErrUnsupported)
}

// CopyFile duplicates a regular object with a server-side copy.
func (m *MinioFS) CopyFile(src, dst string) error {
	ctx := context.Background()
	o, err := m.lookup(ctx, src)
	if err != nil {
		return errs.PathError("copy", src, err)
	}
	if o.dir {
		return errs.PathErrorf("copy", src, "is a directory: %w", fs.ErrInvalid)
	}

	_, err = m.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: m.bucket, Object: m.key(dst)},
		minio.CopySrcOptions{Bucket: m.bucket, Object: m.key(src)},
	)
	return errs.PathError("copy", src, errs.Translate(err))
}

// Compile-time interface checks.
var (
	_ core.FS             = (*MinioFS)(nil)
	_ core.CopyFS         = (*MinioFS)(nil)
	_ core.RenameReporter = (*MinioFS)(nil)
)
