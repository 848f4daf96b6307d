package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "source does not exist")

	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, "source does not exist", err.Message())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Empty(t, err.Path())
	require.Nil(t, err.Unwrap())
	require.Equal(t, "[NOT_FOUND] source does not exist", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidInput, "depth %d exceeds limit %d", 300, 256)
	require.Equal(t, "depth 300 exceeds limit 256", err.Message())
}

func TestError_Format(t *testing.T) {
	cause := stderrors.New("disk full")
	err := WithPath(Wrap(cause, CodeIO, "write failed"), "/dst/a.txt")

	require.Equal(t, "[IO_ERROR] write failed (/dst/a.txt): disk full", err.Error())
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("original error")
	err := Wrap(cause, CodeIO, "operation failed")

	require.NotNil(t, err)
	require.Equal(t, CodeIO, err.Code())
	require.Equal(t, "operation failed", err.Message())
	require.Equal(t, cause, err.Unwrap())
	require.True(t, stderrors.Is(err, cause))
}

func TestWrap_NilError(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeNotFound, "test"))
	require.Nil(t, Wrapf(nil, CodeNotFound, "test %d", 1))
}

func TestWrap_PreservesClassificationAndPath(t *testing.T) {
	inner := WithPath(New(CodeIO, "read failed"), "/a")
	require.True(t, inner.Classification().IsRetryable())

	wrapped := Wrap(inner, CodeNotFound, "copy failed")
	require.True(t, wrapped.Classification().IsRetryable())
	require.Equal(t, "/a", wrapped.Path())
}

func TestWithContext(t *testing.T) {
	err := New(CodeIO, "rename failed")
	err = WithContext(err, "strategy", "rename")
	err = WithContext(err, "attempt", 1)

	ctx := err.Context()
	require.Len(t, ctx, 2)
	require.Equal(t, "rename", ctx["strategy"])
	require.Equal(t, 1, ctx["attempt"])
}

func TestWithContext_Immutability(t *testing.T) {
	original := WithContext(New(CodeInternal, "internal"), "key", "v1")
	modified := WithContext(original, "key", "v2")

	require.Equal(t, "v1", original.Context()["key"])
	require.Equal(t, "v2", modified.Context()["key"])

	ctx := modified.Context()
	ctx["key"] = "mutated"
	require.Equal(t, "v2", modified.Context()["key"])
}

func TestWithContextMap(t *testing.T) {
	err := WithContextMap(New(CodeIO, "copy failed"), map[string]interface{}{
		"src": "/a",
		"dst": "/b",
	})
	require.Equal(t, "/a", err.Context()["src"])
	require.Equal(t, "/b", err.Context()["dst"])
}

func TestWithContext_StandardError(t *testing.T) {
	stdErr := stderrors.New("standard error")
	err := WithContext(stdErr, "key", "value")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Equal(t, stdErr, err.Unwrap())
	require.Equal(t, "value", err.Context()["key"])
}

func TestWithHelpers_Nil(t *testing.T) {
	require.Nil(t, WithPath(nil, "/a"))
	require.Nil(t, WithContext(nil, "k", "v"))
	require.Nil(t, WithContextMap(nil, map[string]interface{}{"k": "v"}))
	require.Nil(t, WithClassification(nil, ClassificationRetryable))
}

func TestWithClassification(t *testing.T) {
	err := WithClassification(New(CodeNotFound, "gone"), ClassificationRetryable)
	require.True(t, IsRetryable(err))
	require.Equal(t, CodeNotFound, err.Code())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: CodeUnknown},
		{name: "error", err: New(CodeNotFound, "x"), want: CodeNotFound},
		{name: "wrapped by fmt", err: fmt.Errorf("ctx: %w", New(CodeIO, "x")), want: CodeIO},
		{name: "standard error", err: stderrors.New("x"), want: CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestGetPath(t *testing.T) {
	require.Empty(t, GetPath(nil))
	require.Empty(t, GetPath(stderrors.New("x")))
	require.Equal(t, "/p", GetPath(WithPath(New(CodeIO, "x"), "/p")))
}

func TestClassification(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want ErrorClassification
	}{
		{CodeIO, ClassificationRetryable},
		{CodeCancelled, ClassificationRetryable},
		{CodeNotFound, ClassificationPermanent},
		{CodeCrossDevice, ClassificationPermanent},
		{CodeNotImplemented, ClassificationPermanent},
		{ErrorCode("SOMETHING_ELSE"), ClassificationPermanent},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			require.Equal(t, tt.want, getDefaultClassification(tt.code))
		})
	}

	require.Equal(t, ClassificationPermanent, GetClassification(nil))
	require.False(t, IsRetryable(stderrors.New("plain")))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: CodeUnknown},
		{name: "not exist", err: &fs.PathError{Op: "open", Path: "/a", Err: fs.ErrNotExist}, want: CodeNotFound},
		{name: "exist", err: fs.ErrExist, want: CodeAlreadyExists},
		{name: "permission", err: os.ErrPermission, want: CodePermission},
		{name: "invalid", err: fs.ErrInvalid, want: CodeInvalidInput},
		{name: "unsupported", err: fmt.Errorf("rename: %w", stderrors.ErrUnsupported), want: CodeNotImplemented},
		{name: "cross device", err: &os.LinkError{Op: "rename", Old: "/a", New: "/b", Err: syscall.EXDEV}, want: CodeCrossDevice},
		{name: "not empty", err: &fs.PathError{Op: "remove", Path: "/d", Err: syscall.ENOTEMPTY}, want: CodeNotEmpty},
		{name: "cancelled", err: context.Canceled, want: CodeCancelled},
		{name: "already classified", err: New(CodeInternal, "x"), want: CodeInternal},
		{name: "other", err: stderrors.New("short write"), want: CodeIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestFromFS(t *testing.T) {
	require.Nil(t, FromFS(nil, "x"))

	cause := &fs.PathError{Op: "open", Path: "/src/a.txt", Err: fs.ErrNotExist}
	err := FromFS(cause, "open source")

	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, "/src/a.txt", err.Path())
	require.True(t, stderrors.Is(err, fs.ErrNotExist))

	var pathErr *fs.PathError
	require.True(t, As(err, &pathErr))
	require.True(t, Is(err, cause))
}
