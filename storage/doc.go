// Package storage enumerates the storage volumes a device exposes.
//
// An Enumerator asks, in order of preference, an application directory
// querier, a mount table, or the legacy EXTERNAL_STORAGE and
// SECONDARY_STORAGE environment variables. Application directories look like
// "/storage/sdcard1/Android/data/<pkg>/files"; the volume root is everything
// before the last "/Android/" marker.
//
// Roots are computed on every call and never cached, so removable media
// appearing or disappearing is reflected immediately.
package storage
