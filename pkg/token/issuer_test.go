package token

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey    = "APIxyz123"
	testAPISecret = "secret-with-enough-entropy-for-tests"
)

func parseToken(t *testing.T, signed string) *Claims {
	t.Helper()
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testAPISecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return claims
}

func TestIssuer_Issue(t *testing.T) {
	issuer, err := NewIssuer(testAPIKey, testAPISecret)
	require.NoError(t, err)

	signed, err := issuer.Issue(NewIdentity("alice", "Alice", "", ""), PublicGrant("abcd-1234"), nil)
	require.NoError(t, err)

	claims := parseToken(t, signed)
	assert.Equal(t, testAPIKey, claims.Issuer)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "Alice", claims.Name)
	require.NotNil(t, claims.Video)
	assert.True(t, claims.Video.RoomJoin)
	assert.Equal(t, "abcd-1234", claims.Video.Room)
	require.NotNil(t, claims.Video.CanPublish)
	assert.True(t, *claims.Video.CanPublish)
	assert.Equal(t, "en", claims.Attributes["language"])
}

func TestIssuer_ExpiryWithinTTL(t *testing.T) {
	issuer, err := NewIssuer(testAPIKey, testAPISecret)
	require.NoError(t, err)

	issuedAt := time.Now()
	issuer.now = func() time.Time { return issuedAt }

	signed, err := issuer.Issue(NewIdentity("alice", "", "", ""), MemberGrant("standup"), nil)
	require.NoError(t, err)

	claims := parseToken(t, signed)
	require.NotNil(t, claims.ExpiresAt)
	assert.False(t, claims.ExpiresAt.Time.After(issuedAt.Add(TokenTTL)))
	assert.Equal(t, issuedAt.Add(TokenTTL).Unix(), claims.ExpiresAt.Time.Unix())
}

func TestIssuer_RoomConfig(t *testing.T) {
	issuer, err := NewIssuer(testAPIKey, testAPISecret)
	require.NoError(t, err)

	roomConfig := &RoomConfiguration{
		Agents: []AgentDispatch{{AgentName: "translator", Metadata: `{"roomName":"abcd-1234"}`}},
	}
	signed, err := issuer.Issue(NewIdentity("alice", "", "", "fr"), PublicGrant("abcd-1234"), roomConfig)
	require.NoError(t, err)

	claims := parseToken(t, signed)
	require.NotNil(t, claims.RoomConfig)
	require.Len(t, claims.RoomConfig.Agents, 1)
	assert.Equal(t, "translator", claims.RoomConfig.Agents[0].AgentName)
	assert.Equal(t, "fr", claims.Attributes["language"])
}

func TestIssuer_MissingParameters(t *testing.T) {
	issuer, err := NewIssuer(testAPIKey, testAPISecret)
	require.NoError(t, err)

	tests := []struct {
		name     string
		identity Identity
		grant    *VideoGrant
	}{
		{"missing room", NewIdentity("alice", "", "", ""), PublicGrant("")},
		{"nil grant", NewIdentity("alice", "", "", ""), nil},
		{"missing identity", NewIdentity("", "", "", ""), PublicGrant("abcd-1234")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Issue(tt.identity, tt.grant, nil)
			require.Error(t, err)

			var rich *goerrors.Error
			require.True(t, goerrors.As(err, &rich))
			assert.Equal(t, goerrors.CategoryBadInput, rich.Category)
			assert.Equal(t, http.StatusBadRequest, rich.Code)
		})
	}
}

func TestNewIssuer_MissingConfiguration(t *testing.T) {
	for _, tt := range []struct {
		name   string
		key    string
		secret string
	}{
		{"no key", "", testAPISecret},
		{"no secret", testAPIKey, ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIssuer(tt.key, tt.secret)
			require.Error(t, err)

			var rich *goerrors.Error
			require.True(t, goerrors.As(err, &rich))
			assert.Equal(t, goerrors.CategoryInternal, rich.Category)
			assert.Equal(t, http.StatusInternalServerError, rich.Code)
		})
	}
}
