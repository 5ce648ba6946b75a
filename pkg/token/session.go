// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package token

import (
	"crypto/rand"
	"math/big"
	"time"
)

// SuffixCookieName is the cookie carrying a browser session's participant
// disambiguation suffix.
const SuffixCookieName = "confera-participant-suffix"

// SuffixTTL bounds how long a browser keeps reusing the same suffix.
const SuffixTTL = 2 * time.Hour

const suffixLength = 4
const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// CookieStore abstracts the browser cookie jar held by the transport layer,
// so the suffix logic stays independent of any HTTP framework.
type CookieStore interface {
	// Get returns the named cookie's value and whether it was present.
	Get(name string) (string, bool)
	// Set persists a cookie at path "/" for the given lifetime. The
	// transport layer owns the httponly/secure/samesite attributes.
	Set(name string, value string, ttl time.Duration)
}

// ResolveSuffix decides which disambiguation suffix a request should use.
// An existing non-empty suffix is reused; otherwise a fresh one is minted
// and the caller is told to persist it.
func ResolveSuffix(existing string) (suffix string, persist bool) {
	if existing != "" {
		return existing, false
	}
	return randomSuffix(), true
}

// EnsureSuffix reads the suffix cookie from store, resolving and persisting
// a new suffix when none is set. Repeated joins from the same browser within
// SuffixTTL land on the same participant identity.
func EnsureSuffix(store CookieStore) string {
	existing, _ := store.Get(SuffixCookieName)
	suffix, persist := ResolveSuffix(existing)
	if persist {
		store.Set(SuffixCookieName, suffix, SuffixTTL)
	}
	return suffix
}

func randomSuffix() string {
	out := make([]byte, suffixLength)
	alphabetSize := big.NewInt(int64(len(suffixAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			// crypto/rand failing means the process is in a bad state;
			// a fixed suffix still yields a valid, if less unique, identity.
			out[i] = suffixAlphabet[0]
			continue
		}
		out[i] = suffixAlphabet[n.Int64()]
	}
	return string(out)
}
