// Package digest computes content fingerprints of files, cancellable between
// fixed-size chunks.
//
// A Hasher never returns a partial digest as if it were complete: every call
// yields a Result whose Status says whether Sum is valid.
//
//	h := digest.New(fsys, digest.WithAlgorithm("sha256"))
//	res := h.Digest(ctx, "/sdcard/DCIM/photo.jpg")
//	switch res.Status {
//	case digest.StatusOK:
//	    fmt.Println(res.Sum)
//	case digest.StatusCancelled:
//	    // ctx was cancelled between chunks
//	default:
//	    log.Println(res.Err)
//	}
package digest
