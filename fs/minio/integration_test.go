package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"sync/atomic"
	"testing"

	"github.com/jmgilman/go/fileops/fs/core"
	"github.com/jmgilman/go/fileops/fs/fstest"
	"github.com/jmgilman/go/fileops/tree"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testBucket = "test-bucket"

// setupMinIOContainer starts a MinIO container and returns a client for it.
// The container is terminated when the test ends.
func setupMinIOContainer(t *testing.T) *minio.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	minioC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "minioadmin",
				"MINIO_ROOT_PASSWORD": "minioadmin",
			},
			Cmd:        []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start MinIO container")
	t.Cleanup(func() { _ = minioC.Terminate(ctx) })

	endpoint, err := minioC.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get container endpoint")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err, "failed to create MinIO client")
	require.NoError(t, client.MakeBucket(ctx, testBucket, minio.MakeBucketOptions{}))

	return client
}

var prefixSeq atomic.Int64

// newTestFS returns a filesystem under a fresh key prefix so every caller
// starts empty.
func newTestFS(t *testing.T, client *minio.Client, opts ...func(*Config)) *MinioFS {
	t.Helper()
	cfg := Config{
		Client: client,
		Bucket: testBucket,
		Prefix: fmt.Sprintf("t%d", prefixSeq.Add(1)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	m, err := NewMinIO(cfg)
	require.NoError(t, err)
	return m
}

func TestIntegration(t *testing.T) {
	client := setupMinIOContainer(t)

	t.Run("Conformance", func(t *testing.T) {
		fstest.TestSuiteWithConfig(t, func() core.FS {
			return newTestFS(t, client)
		}, fstest.S3TestConfig())
	})

	t.Run("DirectoryMarkers", func(t *testing.T) {
		m := newTestFS(t, client)
		require.NoError(t, m.Mkdir("/empty", 0o755))

		info, err := m.Stat("/empty")
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		entries, err := m.ReadDir("/")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "empty", entries[0].Name())
		assert.True(t, entries[0].IsDir())

		require.NoError(t, m.Remove("/empty"))
		ok, err := m.Exists("/empty")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ImplicitDirectories", func(t *testing.T) {
		m := newTestFS(t, client)
		require.NoError(t, m.WriteFile("/a/b/c.txt", []byte("deep"), 0o644))

		for _, dir := range []string{"/a", "/a/b"} {
			info, err := m.Stat(dir)
			require.NoError(t, err, dir)
			assert.True(t, info.IsDir(), dir)
		}

		_, err := m.ReadDir("/a/b/c.txt")
		assert.ErrorIs(t, err, fs.ErrInvalid)
	})

	t.Run("StreamingUpload", func(t *testing.T) {
		m := newTestFS(t, client, func(c *Config) { c.MultipartThreshold = 1024 })
		payload := bytes.Repeat([]byte("0123456789abcdef"), 1024)

		f, err := m.Create("/large.bin")
		require.NoError(t, err)
		for off := 0; off < len(payload); off += 700 {
			end := min(off+700, len(payload))
			_, err := f.Write(payload[off:end])
			require.NoError(t, err)
		}
		require.NoError(t, f.Close())

		r, err := m.Open("/large.bin")
		require.NoError(t, err)
		defer func() { _ = r.Close() }()

		_, err = r.(io.Seeker).Seek(16, io.SeekStart)
		require.NoError(t, err)
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, payload[16:], got)
	})

	t.Run("ServerSideCopy", func(t *testing.T) {
		m := newTestFS(t, client)
		require.NoError(t, m.WriteFile("/src.txt", []byte("copied"), 0o644))
		require.NoError(t, m.CopyFile("/src.txt", "/dst.txt"))

		data, err := m.ReadFile("/dst.txt")
		require.NoError(t, err)
		assert.Equal(t, "copied", string(data))

		assert.ErrorIs(t, m.CopyFile("/missing", "/x"), fs.ErrNotExist)
	})

	t.Run("MoveFallsBackToCopyDelete", func(t *testing.T) {
		m := newTestFS(t, client)
		require.NoError(t, m.WriteFile("/src/a.txt", []byte("hi"), 0o644))
		require.NoError(t, m.Mkdir("/src/empty", 0o755))

		mut := tree.New(m)
		assert.Equal(t, tree.StrategyCopyDelete, mut.Strategy())

		out := mut.Move("/src", "/dst")
		require.True(t, out.OK(), "Move failed: %v", out.Reason)
		assert.Equal(t, tree.StrategyCopyDelete, out.Strategy)

		data, err := m.ReadFile("/dst/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "hi", string(data))

		info, err := m.Stat("/dst/empty")
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		ok, err := m.Exists("/src")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
