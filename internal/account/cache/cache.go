// Package cache holds the session-scoped view of linked accounts: entries
// added during the current session that may not have reached durable storage
// yet, and the freshest tokens after an in-session refresh.
package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"yeargrid/internal/model"
)

// Cache is an in-memory, TTL-bounded account cache keyed by user id.
type Cache struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, map[string]model.LinkedAccount]
}

// New creates a Cache. size bounds the number of users held at once; ttl
// expires a user's session entries after inactivity.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 1024
	}
	return &Cache{
		lru: expirable.NewLRU[string, map[string]model.LinkedAccount](size, nil, ttl),
	}
}

func key(provider model.Provider, accountID string) string {
	return string(provider) + "/" + accountID
}

// Put stores or replaces a session entry for the user.
func (c *Cache) Put(userID string, acct model.LinkedAccount) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, ok := c.lru.Get(userID)
	if !ok {
		entries = make(map[string]model.LinkedAccount)
	} else {
		// Copy before mutating: the stored map may be read concurrently.
		copied := make(map[string]model.LinkedAccount, len(entries)+1)
		for k, v := range entries {
			copied[k] = v
		}
		entries = copied
	}
	entries[key(acct.Provider, acct.AccountID)] = acct
	c.lru.Add(userID, entries)
}

// List returns the user's session entries.
func (c *Cache) List(userID string) []model.LinkedAccount {
	entries, ok := c.lru.Get(userID)
	if !ok {
		return nil
	}
	accounts := make([]model.LinkedAccount, 0, len(entries))
	for _, acct := range entries {
		accounts = append(accounts, acct)
	}
	return accounts
}

// Remove drops a user's session entries matching the account id across
// providers, e.g. after a disconnect.
func (c *Cache) Remove(userID, accountID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, ok := c.lru.Get(userID)
	if !ok {
		return
	}
	copied := make(map[string]model.LinkedAccount, len(entries))
	for k, v := range entries {
		if v.AccountID == accountID {
			continue
		}
		copied[k] = v
	}
	if len(copied) == 0 {
		c.lru.Remove(userID)
		return
	}
	c.lru.Add(userID, copied)
}
