// Package pathutil maps absolute filesystem paths to object keys.
package pathutil

import (
	"strings"

	"github.com/jmgilman/go/fileops/fs/core"
)

// NormalizePrefix turns a user-supplied key prefix into slash form without
// leading or trailing slashes. It returns "" for the bucket root.
func NormalizePrefix(prefix string) string {
	if prefix == "" || prefix == "." {
		return ""
	}
	return strings.Trim(core.Clean(prefix), "/")
}

// Key maps an absolute path below prefix to its object key. The root maps to
// the prefix itself.
func Key(prefix, name string) string {
	rel := strings.TrimPrefix(core.Clean(name), "/")
	switch {
	case rel == "":
		return prefix
	case prefix == "":
		return rel
	default:
		return prefix + "/" + rel
	}
}

// DirKey returns key with a trailing slash, the form used for directory
// markers and prefix listings. The bucket root stays "".
func DirKey(key string) string {
	if key == "" || strings.HasSuffix(key, "/") {
		return key
	}
	return key + "/"
}

// ChildName returns the entry name of key relative to the listed dirKey, and
// whether it denotes a directory.
func ChildName(dirKey, key string) (string, bool) {
	rel := strings.TrimPrefix(key, dirKey)
	isDir := strings.HasSuffix(rel, "/")
	return strings.TrimSuffix(rel, "/"), isDir
}
