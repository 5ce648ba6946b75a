// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/confera/pkg/commons"
)

// TokenTTL bounds every credential issued by this service. Tokens are
// consumed within seconds of issuance; five minutes absorbs clock skew.
const TokenTTL = 5 * time.Minute

// DefaultLanguage is the attribute value used when the caller names none.
const DefaultLanguage = "en"

// Identity describes the participant a credential is issued for.
type Identity struct {
	// Identity is the unique participant identity, possibly carrying a
	// disambiguation suffix.
	Identity string
	// Name is the human-readable display name.
	Name string
	// Metadata is an opaque string forwarded to the room untouched.
	Metadata string
	// Attributes are structured key/value pairs, e.g. language preference.
	Attributes map[string]string
}

// NewIdentity builds an Identity with the language attribute populated.
func NewIdentity(identity, name, metadata, language string) Identity {
	if language == "" {
		language = DefaultLanguage
	}
	return Identity{
		Identity:   identity,
		Name:       name,
		Metadata:   metadata,
		Attributes: map[string]string{"language": language},
	}
}

// Claims is the JWT payload the media platform verifies. Registered claims
// carry the API key (iss), participant identity (sub) and the expiry.
type Claims struct {
	jwt.RegisteredClaims
	Name       string             `json:"name,omitempty"`
	Video      *VideoGrant        `json:"video,omitempty"`
	Metadata   string             `json:"metadata,omitempty"`
	Attributes map[string]string  `json:"attributes,omitempty"`
	RoomConfig *RoomConfiguration `json:"roomConfig,omitempty"`
}

// Issuer signs short-lived room access credentials with a server-held API
// key pair. Constructed once at startup from validated configuration and
// shared by reference; it holds no mutable state and is safe for
// concurrent use.
type Issuer struct {
	apiKey    string
	apiSecret string
	now       func() time.Time
}

// NewIssuer validates the key pair eagerly so a misconfigured deployment
// fails at startup rather than on the first join.
func NewIssuer(apiKey, apiSecret string) (*Issuer, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, commons.ConfigurationError("api key and secret are required to issue tokens")
	}
	return &Issuer{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		now:       time.Now,
	}, nil
}

// Issue signs a credential authorizing identity to act in grant.Room under
// the given capability grant. roomConfig is optional; when present it rides
// inside the token and is acted on by the platform, not by us.
//
// The returned token is immutable once signed. Verification is entirely the
// receiving platform's responsibility.
func (i *Issuer) Issue(identity Identity, grant *VideoGrant, roomConfig *RoomConfiguration) (string, error) {
	if grant == nil || grant.Room == "" {
		return "", commons.ClientInputError("missing room name")
	}
	if identity.Identity == "" {
		return "", commons.ClientInputError("missing participant identity")
	}

	issuedAt := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.apiKey,
			Subject:   identity.Identity,
			ID:        identity.Identity,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
		Name:       identity.Name,
		Video:      grant,
		Metadata:   identity.Metadata,
		Attributes: identity.Attributes,
		RoomConfig: roomConfig,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.apiSecret))
	if err != nil {
		return "", commons.ConfigurationError("unable to sign access token: " + err.Error())
	}
	return signed, nil
}
