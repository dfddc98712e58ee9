package storage

import "io"

// BlobStore archives uploaded question files before they are parsed, so a
// bad import can be re-run from the original bytes.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
