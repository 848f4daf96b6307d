package errs

import (
	"io/fs"
	"syscall"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	assert.Nil(t, Translate(nil))

	tests := []struct {
		code string
		want error
	}{
		{"NoSuchKey", fs.ErrNotExist},
		{"NoSuchBucket", fs.ErrNotExist},
		{"AccessDenied", fs.ErrPermission},
		{"XMinioStorageFull", syscall.ENOSPC},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.ErrorIs(t, Translate(minio.ErrorResponse{Code: tt.code}), tt.want)
		})
	}

	t.Run("other errors are wrapped", func(t *testing.T) {
		err := Translate(minio.ErrorResponse{Code: "InternalError", Message: "Something went wrong"})
		assert.Contains(t, err.Error(), "minio:")
		assert.Contains(t, err.Error(), "Something went wrong")
	})
}

func TestPathError(t *testing.T) {
	assert.Nil(t, PathError("op", "/p", nil))

	err := PathError("stat", "/p", fs.ErrNotExist)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "stat /p: file does not exist", err.Error())

	err = PathErrorf("rename", "/p", "wrapped: %w", fs.ErrInvalid)
	assert.ErrorIs(t, err, fs.ErrInvalid)
}
