// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package authchain

import (
	"context"
	"sync"
)

// DelegationCache memoizes at most one delegated signer per client session
// so the wallet is prompted once, not per request. Scoped to a single
// session; never shared across processes.
type DelegationCache struct {
	mu        sync.Mutex
	signer    Signer
	delegated *DelegatedSigner
}

// NewDelegationCache wraps a wallet signer in a session-scoped cache.
func NewDelegationCache(signer Signer) *DelegationCache {
	return &DelegationCache{signer: signer}
}

// GetOrCreateDelegatedSigner returns the session's delegated signer,
// creating it on first use or after the delegation expires. The lock is
// held across creation so concurrent callers share a single wallet prompt;
// a failed prompt leaves the cache empty and the next call re-attempts.
func (c *DelegationCache) GetOrCreateDelegatedSigner(ctx context.Context) (*DelegatedSigner, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.delegated != nil && !c.delegated.Expired() {
		return c.delegated, nil
	}

	delegated, err := NewDelegatedSigner(ctx, c.signer)
	if err != nil {
		return nil, err
	}
	c.delegated = delegated
	return delegated, nil
}
