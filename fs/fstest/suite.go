// Package fstest provides a conformance test suite for core.FS providers and
// a fault-injecting wrapper for exercising partial failures.
//
// The suite checks the contracts the tree mutator and the content hasher
// depend on: Stat and ReadDir report kinds and sorted children, Mkdir fails
// on existing paths, Remove refuses non-empty directories, and Rename either
// works or reports core.ErrUnsupported.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FS {
//	        return myprovider.New()
//	    })
//	}
package fstest

import (
	"testing"

	"github.com/jmgilman/go/fileops/fs/core"
)

// FSTestConfig configures the test suite to match filesystem behavior characteristics.
type FSTestConfig struct {
	// ImplicitParentDirs indicates files and directories can be created
	// without their parents existing (billy, object storage).
	ImplicitParentDirs bool

	// RenameUnsupported indicates Rename always fails with core.ErrUnsupported.
	RenameUnsupported bool

	// SkipTests lists specific test names to skip.
	// Format: "TestGroup/SubTest" (e.g., "WriteFS/MkdirMissingParent").
	SkipTests []string
}

// POSIXTestConfig returns configuration for POSIX-like filesystems.
func POSIXTestConfig() FSTestConfig {
	return FSTestConfig{}
}

// S3TestConfig returns configuration for object-storage filesystems.
func S3TestConfig() FSTestConfig {
	return FSTestConfig{
		ImplicitParentDirs: true,
		RenameUnsupported:  true,
	}
}

// TestSuite runs all applicable conformance tests against a filesystem.
// The newFS function should return a fresh, empty filesystem for each group.
func TestSuite(t *testing.T, newFS func() core.FS) {
	TestSuiteWithConfig(t, newFS, POSIXTestConfig())
}

// TestSuiteWithConfig runs conformance tests with behavior configuration.
func TestSuiteWithConfig(t *testing.T, newFS func() core.FS, config FSTestConfig) {
	groups := []struct {
		name string
		run  func(*testing.T, core.FS, FSTestConfig)
	}{
		{"ReadFS", TestReadFSWithConfig},
		{"WriteFS", TestWriteFSWithConfig},
		{"ManageFS", TestManageFSWithConfig},
		{"MetadataFS", TestMetadataFSWithConfig},
		{"SymlinkFS", TestSymlinkFSWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if config.skip(g.name) {
				t.Skip("Skipped by provider configuration")
			}
			g.run(t, newFS(), config)
		})
	}
}

// skip reports whether the named test is listed in SkipTests.
func (c FSTestConfig) skip(name string) bool {
	for _, s := range c.SkipTests {
		if s == name {
			return true
		}
	}
	return false
}

// run executes a subtest unless the config skips "group/name".
func run(t *testing.T, config FSTestConfig, group, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if config.skip(group + "/" + name) {
			t.Skip("Skipped by provider configuration")
		}
		fn(t)
	})
}
