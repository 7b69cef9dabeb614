package repository

import (
	"context"
	"database/sql"
	"sync"
)

// stmtCache caches prepared statements for the repository's hot paths
// (FindByID, Exists). Statements are prepared once per query text and reused
// across requests.
type stmtCache struct {
	mu    sync.RWMutex
	stmts map[string]*sql.Stmt
	db    *sql.DB
}

func newStmtCache(db *sql.DB) *stmtCache {
	return &stmtCache{
		stmts: make(map[string]*sql.Stmt),
		db:    db,
	}
}

// get returns the prepared statement for query, preparing it on first use.
func (c *stmtCache) get(ctx context.Context, query string) (*sql.Stmt, error) {
	c.mu.RLock()
	stmt, ok := c.stmts[query]
	c.mu.RUnlock()
	if ok {
		return stmt, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have prepared it while we waited for the lock.
	if stmt, ok := c.stmts[query]; ok {
		return stmt, nil
	}

	stmt, err := c.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	c.stmts[query] = stmt
	return stmt, nil
}

// Close closes every cached statement and clears the cache.
func (c *stmtCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var lastErr error
	for _, stmt := range c.stmts {
		if err := stmt.Close(); err != nil {
			lastErr = err
		}
	}
	c.stmts = make(map[string]*sql.Stmt)
	return lastErr
}
