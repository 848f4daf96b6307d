// Package billy provides go-billy backed implementations of core.FS.
//
// LocalFS wraps go-billy's osfs and is the provider used on a real device;
// MemoryFS wraps memfs and backs most tests. Both implement the optional
// core.MetadataFS and core.SymlinkFS capabilities, so tree copies carry
// permission bits and modification times and never follow symbolic links.
//
// Usage:
//
//	// Whole host filesystem
//	host := billy.NewLocal()
//
//	// Restrict to a directory (paths are then relative to it)
//	sandbox := billy.NewLocal(billy.WithRoot("/sdcard"))
//
//	// In-memory
//	mem := billy.NewMemory()
//	err := mem.WriteFile("/a.txt", []byte("hi"), 0o644)
//
// # Thread Safety
//
// LocalFS and MemoryFS are safe for concurrent use by multiple goroutines.
// File handles are not.
package billy
