// Package mount composes several core.FS volumes into one namespace.
//
// A Table maps absolute mount points to filesystems, the way a device
// exposes internal storage and removable cards under one tree:
//
//	t := mount.New()
//	_ = t.Mount("/storage/emulated/0", internal)
//	_ = t.Mount("/storage/sdcard1", card)
//
// Paths resolve to the volume with the longest matching mount point.
// Ancestors of mount points that no volume covers are read-only virtual
// directories. Rename across volumes fails with core.ErrCrossDevice, so
// callers fall back to copy and delete.
package mount
