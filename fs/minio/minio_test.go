package minio

import (
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fileops/errors"
	"github.com/jmgilman/go/fileops/fs/core"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigValidation tests Config.validate() with various scenarios.
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config with credentials",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
		},
		{
			name: "client provided ignores missing credentials",
			config: Config{
				Client: &minio.Client{},
				Bucket: "test-bucket",
			},
		},
		{
			name: "missing bucket",
			config: Config{
				Endpoint:  "localhost:9000",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "bucket is required",
		},
		{
			name:    "missing endpoint without client",
			config:  Config{Bucket: "b", AccessKey: "a", SecretKey: "s"},
			wantErr: true,
			errMsg:  "endpoint is required",
		},
		{
			name:    "missing access key without client",
			config:  Config{Bucket: "b", Endpoint: "localhost:9000", SecretKey: "s"},
			wantErr: true,
			errMsg:  "access key is required",
		},
		{
			name:    "missing secret key without client",
			config:  Config{Bucket: "b", Endpoint: "localhost:9000", AccessKey: "a"},
			wantErr: true,
			errMsg:  "secret key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
		})
	}
}

// TestNewMinIO tests the constructor without contacting a server.
func TestNewMinIO(t *testing.T) {
	t.Run("invalid config returns error", func(t *testing.T) {
		_, err := NewMinIO(Config{})
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
	})

	t.Run("builds client from credentials", func(t *testing.T) {
		m, err := NewMinIO(Config{
			Endpoint:  "localhost:9000",
			Bucket:    "bucket",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Prefix:    "/tenant/a/",
		})
		require.NoError(t, err)
		assert.NotNil(t, m.client)
		assert.Equal(t, "tenant/a", m.prefix)
		assert.Equal(t, int64(defaultMultipartThreshold), m.multipartThreshold)
	})

	t.Run("keeps explicit threshold", func(t *testing.T) {
		m, err := NewMinIO(Config{Client: &minio.Client{}, Bucket: "b", MultipartThreshold: 1024})
		require.NoError(t, err)
		assert.Equal(t, int64(1024), m.multipartThreshold)
	})
}

// TestKey verifies absolute paths map onto prefixed object keys.
func TestKey(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{"", "/", ""},
		{"", "/a/b.txt", "a/b.txt"},
		{"", "a/../b", "b"},
		{"root", "/", "root"},
		{"root", "/dir/file", "root/dir/file"},
	}
	for _, tt := range tests {
		m := &MinioFS{prefix: tt.prefix}
		assert.Equal(t, tt.want, m.key(tt.name), "key(%q) with prefix %q", tt.name, tt.prefix)
	}
}

// TestCapabilities verifies the provider steers callers to copy and delete.
func TestCapabilities(t *testing.T) {
	m := &MinioFS{bucket: "b"}

	assert.Equal(t, core.FSTypeRemote, m.Type())
	assert.False(t, m.AtomicRename())

	caps := core.Probe(m)
	assert.False(t, caps.AtomicRename)
	assert.True(t, caps.ServerCopy)
	assert.False(t, caps.Metadata)
	assert.False(t, caps.Symlinks)
}

// TestRenameUnsupported verifies Rename reports core.ErrUnsupported without
// touching the network.
func TestRenameUnsupported(t *testing.T) {
	m := &MinioFS{bucket: "b"}
	err := m.Rename("/a", "/b")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupported)
	assert.Equal(t, errors.CodeNotImplemented, errors.CodeOf(err))

	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "/a", pathErr.Path)
}

// TestWriterBuffersWithoutClient verifies writes below the threshold stay in
// memory and Stat reports the running size.
func TestWriterBuffersWithoutClient(t *testing.T) {
	m := &MinioFS{bucket: "b", multipartThreshold: 8}
	w := newWriter(m, "/dir/out.bin")

	n, err := w.Write([]byte("1234"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// No client: the handle keeps buffering past the threshold.
	_, err = w.Write([]byte("56789"))
	require.NoError(t, err)
	assert.Equal(t, "123456789", w.buf.String())

	info, err := w.Stat()
	require.NoError(t, err)
	assert.Equal(t, "out.bin", info.Name())
	assert.Equal(t, int64(9), info.Size())
	assert.Equal(t, "/dir/out.bin", w.Name())

	_, err = w.Read(make([]byte, 1))
	assert.ErrorIs(t, err, fs.ErrInvalid)
}
