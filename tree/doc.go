// Package tree copies, moves and deletes files and directory trees on a
// core.FS.
//
// Every operation returns an Outcome instead of a bare error so callers can
// tell a collision no-op from a real copy, see which move strategy ran and
// find out whether a move left its source behind:
//
//	m := tree.New(billy.NewLocal())
//	out := m.Move("/sdcard/DCIM/a.jpg", "/storage/sdcard1/a.jpg")
//	if !out.OK() {
//	    log.Printf("move failed: %v", out.Reason)
//	}
//
// An existing destination is never overwritten: Copy and Move report success
// without touching it. Operations are not transactional. A failure part way
// through leaves whatever was already copied or deleted in place.
package tree
