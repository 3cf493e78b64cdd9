// Package persist stores search state snapshots.
//
// A snapshot is a small self-describing container: a fixed header carrying a
// magic number, a format version, a compression flag and the codec name,
// followed by the encoded state document. Files are written atomically so an
// interrupted save never clobbers the previous snapshot.
//
// The Store interface abstracts where snapshots live. LocalStore keeps them
// on the local file system, MemoryStore exists for tests, and the minio
// subpackage targets S3-compatible object storage.
package persist
