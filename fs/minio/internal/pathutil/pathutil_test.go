package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrefix(t *testing.T) {
	tests := map[string]string{
		"":            "",
		".":           "",
		"/":           "",
		"data":        "data",
		"/data/":      "data",
		`tenant\logs`: "tenant/logs",
		"a/./b/../c":  "a/c",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizePrefix(in), "NormalizePrefix(%q)", in)
	}
}

func TestDirKey(t *testing.T) {
	assert.Equal(t, "", DirKey(""))
	assert.Equal(t, "a/", DirKey("a"))
	assert.Equal(t, "a/", DirKey("a/"))
}

func TestChildName(t *testing.T) {
	name, isDir := ChildName("dir/", "dir/file.txt")
	assert.Equal(t, "file.txt", name)
	assert.False(t, isDir)

	name, isDir = ChildName("dir/", "dir/sub/")
	assert.Equal(t, "sub", name)
	assert.True(t, isDir)

	name, isDir = ChildName("", "top")
	assert.Equal(t, "top", name)
	assert.False(t, isDir)
}
