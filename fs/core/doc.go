// Package core defines the host filesystem capability consumed by the tree
// mutator, the content hasher and the storage enumerator.
//
// Providers (local disk, in-memory, S3, a mount table composing several of
// them) implement FS. Operations that only some hosts support are expressed
// as optional interfaces discovered with type assertions:
//
//   - MetadataFS: copy permission bits and modification times (Chmod, Chtimes)
//   - SymlinkFS: inspect and create symbolic links (Lstat, Symlink, Readlink)
//   - CopyFS: copy a file without streaming it through the caller
//   - RenameReporter: declare that Rename is not an atomic primitive
//
// Probe folds these into a Capabilities value once, so callers can select a
// strategy at construction time instead of branching on every call.
//
// # Paths
//
// All paths handed to an FS are absolute and slash separated ("/data/a.txt").
// Providers clean them before use; Clean is exported for callers that need the
// same normalization before comparing paths.
//
// # Errors
//
// Providers return *fs.PathError values wrapping the io/fs sentinels
// re-exported here. ErrUnsupported marks a missing capability and
// ErrCrossDevice a rename that would cross a volume boundary.
package core
