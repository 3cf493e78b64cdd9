// Package minio implements persist.Store on MinIO and S3-compatible object
// storage, so long-running searches can checkpoint off-host.
package minio
