package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/jmgilman/go/fileops/fs/core"
	"github.com/jmgilman/go/fileops/fs/minio/internal/errs"
	"github.com/jmgilman/go/fileops/fs/minio/internal/types"
	"github.com/minio/minio-go/v7"
)

// minPartSize is the smallest multipart chunk S3 accepts.
const minPartSize = 5 * 1024 * 1024

// writer is a write-only handle. Small payloads are buffered and uploaded on
// Close; once the buffer would pass the multipart threshold the handle
// switches to streaming through a pipe into a background PutObject.
type writer struct {
	fs   *MinioFS
	name string

	buf  *bytes.Buffer
	pw   *io.PipeWriter
	done chan error

	written int64
	closed  bool
}

func newWriter(m *MinioFS, name string) *writer {
	return &writer{fs: m, name: name, buf: new(bytes.Buffer)}
}

// Write appends p to the object.
// nolint:contextcheck // io.Writer cannot take a context
func (w *writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errs.PathError("write", w.name, fs.ErrClosed)
	}
	if w.pw == nil && int64(w.buf.Len()+len(p)) > w.fs.multipartThreshold && w.fs.client != nil {
		if err := w.stream(); err != nil {
			return 0, err
		}
	}

	var (
		n   int
		err error
	)
	if w.pw != nil {
		n, err = w.pw.Write(p)
	} else {
		n, err = w.buf.Write(p)
	}
	w.written += int64(n)
	return n, errs.PathError("write", w.name, err)
}

// stream starts the background upload and flushes the buffer into it.
func (w *writer) stream() error {
	pr, pw := io.Pipe()
	w.pw = pw
	w.done = make(chan error, 1)

	partSize := w.fs.multipartThreshold
	if partSize < minPartSize {
		partSize = minPartSize
	}

	go func() {
		_, err := w.fs.client.PutObject(context.Background(), w.fs.bucket, w.fs.key(w.name), pr, -1,
			minio.PutObjectOptions{ContentType: "application/octet-stream", PartSize: uint64(partSize)})
		_ = pr.CloseWithError(err)
		w.done <- errs.Translate(err)
	}()

	pending := w.buf.Bytes()
	w.buf = nil
	if _, err := w.pw.Write(pending); err != nil {
		return errs.PathError("write", w.name, err)
	}
	return nil
}

// Close finishes the upload. It is idempotent.
func (w *writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.pw != nil {
		_ = w.pw.Close()
		return errs.PathError("close", w.name, <-w.done)
	}

	data := w.buf.Bytes()
	_, err := w.fs.client.PutObject(context.Background(), w.fs.bucket, w.fs.key(w.name),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	return errs.PathError("close", w.name, errs.Translate(err))
}

// Read is not supported on a write handle.
func (w *writer) Read([]byte) (int, error) {
	return 0, errs.PathError("read", w.name, fs.ErrInvalid)
}

// Stat reports the bytes written so far.
func (w *writer) Stat() (fs.FileInfo, error) {
	return types.NewFileInfo(path.Base(w.name), w.written, time.Now()), nil
}

// Name returns the name passed to Create.
func (w *writer) Name() string {
	return w.name
}

// reader streams an object. Seeks are served by the SDK with range
// requests.
type reader struct {
	obj    *minio.Object
	name   string
	stat   minio.ObjectInfo
	closed bool
}

func newReader(ctx context.Context, m *MinioFS, name string) (*reader, error) {
	key := m.key(name)
	stat, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, errs.PathError("open", name, errs.Translate(err))
	}
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.PathError("open", name, errs.Translate(err))
	}
	return &reader{obj: obj, name: name, stat: stat}, nil
}

func (r *reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, errs.PathError("read", r.name, fs.ErrClosed)
	}
	n, err := r.obj.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, errs.PathError("read", r.name, errs.Translate(err))
	}
	return n, err
}

func (r *reader) Seek(offset int64, whence int) (int64, error) {
	if r.closed {
		return 0, errs.PathError("seek", r.name, fs.ErrClosed)
	}
	pos, err := r.obj.Seek(offset, whence)
	return pos, errs.PathError("seek", r.name, err)
}

// Write is not supported on a read handle.
func (r *reader) Write([]byte) (int, error) {
	return 0, errs.PathError("write", r.name, fs.ErrInvalid)
}

func (r *reader) Stat() (fs.FileInfo, error) {
	return types.NewFileInfo(path.Base(r.name), r.stat.Size, r.stat.LastModified), nil
}

func (r *reader) Name() string {
	return r.name
}

func (r *reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.obj.Close()
}

// Compile-time interface checks.
var (
	_ core.File = (*writer)(nil)
	_ core.File = (*reader)(nil)
	_ io.Seeker = (*reader)(nil)
)
