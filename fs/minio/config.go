// Package minio provides a MinIO/S3-compatible implementation of core.FS.
//
// Object stores have no directories. Mkdir writes a zero-length marker
// object whose key ends in "/", and a path is a directory when a marker or
// any object exists beneath it. Rename is not offered: the provider reports
// AtomicRename() == false so callers copy and delete instead, using the
// server-side CopyFile where possible.
package minio

import (
	"github.com/jmgilman/go/fileops/errors"
	"github.com/minio/minio-go/v7"
)

// Config holds MinIO filesystem configuration.
type Config struct {
	// Endpoint is the MinIO server address (e.g., "localhost:9000").
	Endpoint string

	// Bucket is the S3 bucket name.
	Bucket string

	// AccessKey is the access key ID for authentication.
	AccessKey string

	// SecretKey is the secret access key for authentication.
	SecretKey string

	// UseSSL enables HTTPS connections.
	UseSSL bool

	// Prefix is an optional key prefix every path is stored under.
	Prefix string

	// Client is an optional pre-configured MinIO client.
	// If provided, Endpoint/AccessKey/SecretKey are ignored.
	Client *minio.Client

	// MultipartThreshold is the number of buffered bytes after which writes
	// stream to the server. Default: 5MB.
	MultipartThreshold int64
}

// validate checks that either Client or a full set of connection fields is
// present. Bucket is always required.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return errors.New(errors.CodeInvalidConfig, "bucket is required")
	}
	if c.Client != nil {
		return nil
	}
	if c.Endpoint == "" {
		return errors.New(errors.CodeInvalidConfig, "endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return errors.New(errors.CodeInvalidConfig, "access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return errors.New(errors.CodeInvalidConfig, "secret key is required when client is not provided")
	}
	return nil
}
