// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

// Package authchain signs outbound requests with an ephemeral key that a
// long-lived wallet address has delegated authority to. The wallet is
// prompted once per delegation lifetime; every request after that is signed
// locally and verified downstream by walking the chain.
package authchain

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/confera/pkg/commons"
)

// DelegationLifetime bounds how long an ephemeral key may sign on the
// wallet's behalf. Long enough that users are not re-prompted during a
// working session, finite so a leaked key ages out.
const DelegationLifetime = 10000 * time.Minute

// Header names carried on every signed request. Chain links are indexed:
// X-Auth-Chain-0 is the wallet's delegation, the last index is the
// per-request signature.
const (
	HeaderChainPrefix = "X-Auth-Chain-"
	HeaderTimestamp   = "X-Auth-Timestamp"
	HeaderMetadata    = "X-Auth-Metadata"
)

// Signer is a long-lived signing capability such as a hardware wallet or a
// browser extension. SignMessage may block on user interaction; callers
// cancel through ctx.
type Signer interface {
	Address() string
	SignMessage(ctx context.Context, message string) (string, error)
}

// Link is one step in an auth chain: a message, its signature, and the key
// or address that produced it.
type Link struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Signer    string `json:"signer"`
}

// DelegatedSigner holds an ephemeral keypair plus the wallet-signed link
// that authorizes it. Immutable after creation; safe for concurrent use.
type DelegatedSigner struct {
	delegation Link
	publicKey  ed25519.PublicKey
	privateKey ed25519.PrivateKey
	expiresAt  time.Time
	now        func() time.Time
}

// NewDelegatedSigner generates a fresh ephemeral keypair and asks signer to
// co-sign the delegation binding it. This is the only point the wallet is
// prompted; a rejection surfaces as a login failure and is never retried
// here.
func NewDelegatedSigner(ctx context.Context, signer Signer) (*DelegatedSigner, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, commons.ConfigurationError("unable to generate ephemeral key: " + err.Error())
	}

	expiresAt := time.Now().Add(DelegationLifetime)
	message := fmt.Sprintf("delegate:%s:%d",
		base64.StdEncoding.EncodeToString(publicKey), expiresAt.UnixMilli())

	signature, err := signer.SignMessage(ctx, message)
	if err != nil {
		return nil, commons.LoginFailure(err, "wallet rejected the delegation signature")
	}

	return &DelegatedSigner{
		delegation: Link{
			Message:   message,
			Signature: signature,
			Signer:    signer.Address(),
		},
		publicKey:  publicKey,
		privateKey: privateKey,
		expiresAt:  expiresAt,
		now:        time.Now,
	}, nil
}

// Expired reports whether the delegation window has lapsed.
func (d *DelegatedSigner) Expired() bool {
	return d.now().After(d.expiresAt)
}

// PublicKey returns the ephemeral public key in its wire encoding.
func (d *DelegatedSigner) PublicKey() string {
	return base64.StdEncoding.EncodeToString(d.publicKey)
}

// SignRequest builds the header set authenticating one request. The
// canonical payload is the lower-cased colon-join of method, path, the
// current unix-millisecond timestamp, and the JSON-serialized metadata;
// it is signed by the ephemeral key without touching the wallet.
func (d *DelegatedSigner) SignRequest(method string, path string, metadata map[string]interface{}) (http.Header, error) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	serialized, err := json.Marshal(metadata)
	if err != nil {
		return nil, commons.ClientInputError("unserializable request metadata: " + err.Error())
	}

	timestamp := strconv.FormatInt(d.now().UnixMilli(), 10)
	payload := strings.ToLower(strings.Join([]string{method, path, timestamp, string(serialized)}, ":"))
	signature := ed25519.Sign(d.privateKey, []byte(payload))

	links := []Link{
		d.delegation,
		{
			Message:   payload,
			Signature: base64.StdEncoding.EncodeToString(signature),
			Signer:    d.PublicKey(),
		},
	}

	headers := http.Header{}
	for i, link := range links {
		encoded, err := json.Marshal(link)
		if err != nil {
			return nil, commons.ConfigurationError("unable to encode auth chain link: " + err.Error())
		}
		headers.Set(HeaderChainPrefix+strconv.Itoa(i), string(encoded))
	}
	headers.Set(HeaderTimestamp, timestamp)
	headers.Set(HeaderMetadata, string(serialized))
	return headers, nil
}
