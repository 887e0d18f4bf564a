package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers use narrow sub-interfaces (ISP); the facade exists for wiring.
type Store interface {
	Pinger
	JSONStore
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JSONSetItem holds a single key+path+data triple for pipelined JSON.SET.
type JSONSetItem struct {
	Key  string
	Path string
	Data []byte
}

// JSONStore provides JSON document operations, including key iteration
// over the document keyspace.
type JSONStore interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONSetMulti(ctx context.Context, items []JSONSetItem) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
