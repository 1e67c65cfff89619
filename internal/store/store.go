// Package store is the persistent graph store collaborator: put/get
// keyed by repo_id and branch. It is backed by Badger, an embedded
// key-value store, so the orchestrator can run without any external
// database.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/naveeak/impact-analyser/internal/graph"
)

// Config controls how a Store opens its underlying Badger database.
type Config struct {
	// Path is the on-disk directory for the database. Required unless
	// InMemory is set.
	Path string

	// InMemory runs Badger with no disk persistence, for tests.
	InMemory bool

	// SyncWrites forces an fsync after every write. Default: true for
	// persistent stores, ignored for in-memory ones.
	SyncWrites bool
}

// DefaultConfig returns a persistent configuration with SyncWrites enabled.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns a configuration for a throwaway in-memory store.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Store persists encoded dependency graphs keyed by repo_id|branch.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the Badger database described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("store: path is required for a persistent store")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = opts.WithSyncWrites(cfg.SyncWrites)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: opening badger database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(repoID, branch string) []byte {
	return []byte(repoID + "|" + branch)
}

// Put persists doc under repoID|branch, overwriting any prior graph.
func (s *Store) Put(ctx context.Context, repoID, branch string, doc graph.Document) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: marshaling document: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(repoID, branch), data)
	})
}

// Get retrieves the graph stored under repoID|branch. ok is false when no
// graph has been stored for that key.
func (s *Store) Get(ctx context.Context, repoID, branch string) (doc graph.Document, ok bool, err error) {
	select {
	case <-ctx.Done():
		return graph.Document{}, false, ctx.Err()
	default:
	}

	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(key(repoID, branch))
		if getErr == badger.ErrKeyNotFound {
			return nil
		}
		if getErr != nil {
			return getErr
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
	})
	if err != nil {
		return graph.Document{}, false, fmt.Errorf("store: reading graph for %s|%s: %w", repoID, branch, err)
	}
	if doc.GraphID == "" {
		return graph.Document{}, false, nil
	}
	return doc, true, nil
}
