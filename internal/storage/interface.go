package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when nothing is stored at a key.
var ErrNotFound = errors.New("storage: key not found")

// Metadata describes a stored document
type Metadata struct {
	ContentType string            `json:"contentType,omitempty"`
	QuoteID     string            `json:"quoteId,omitempty"`
	UpdatedAt   time.Time         `json:"updatedAt,omitempty"`
	Custom      map[string]string `json:"custom,omitempty"`
}

// Storage defines the interface for durable document storage.
// Implementations are the local filesystem and Redis.
type Storage interface {
	// Put stores content at the given key, replacing any previous content
	Put(ctx context.Context, key string, content []byte, metadata *Metadata) error

	// Get retrieves content from the given key or returns ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// GetMetadata retrieves the metadata stored with a key, nil if none
	GetMetadata(ctx context.Context, key string) (*Metadata, error)

	// Exists checks if content exists at the given key
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the content at the given key; a missing key is not an error
	Delete(ctx context.Context, key string) error

	// List returns all keys matching the given prefix
	List(ctx context.Context, prefix string) ([]string, error)
}

// StorageType represents the type of storage backend
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeRedis StorageType = "redis"
)
