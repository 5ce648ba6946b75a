package authchain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confera/pkg/commons"
)

func TestFetcher_InjectsChainHeaders(t *testing.T) {
	var seen http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	fetcher := NewFetcher(&fakeWallet{}, commons.NewApplicationLogger("test", "debug", ""))
	resp, err := fetcher.Do(context.Background(), http.MethodGet, server.URL+"/v1/rooms", map[string]interface{}{
		"intent": "list rooms",
	}, nil)
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, []byte(`{"ok":true}`), resp.Body)

	assert.NotEmpty(t, seen.Get(HeaderChainPrefix+"0"))
	assert.NotEmpty(t, seen.Get(HeaderChainPrefix+"1"))
	assert.NotEmpty(t, seen.Get(HeaderTimestamp))
	assert.Contains(t, seen.Get(HeaderMetadata), "list rooms")
}

func TestFetcher_SingleDelegationAcrossRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	wallet := &fakeWallet{}
	fetcher := NewFetcher(wallet, commons.NewApplicationLogger("test", "debug", ""))

	for i := 0; i < 5; i++ {
		_, err := fetcher.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), wallet.calls)
}

func TestFetcher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewFetcher(&fakeWallet{}, commons.NewApplicationLogger("test", "debug", ""))
	resp, err := fetcher.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)

	assert.False(t, resp.Ok)
	assert.Equal(t, http.StatusForbidden, resp.Status)
}

func TestFetcher_InvalidURL(t *testing.T) {
	fetcher := NewFetcher(&fakeWallet{}, commons.NewApplicationLogger("test", "debug", ""))
	_, err := fetcher.Do(context.Background(), http.MethodGet, "not a url", nil, nil)
	assert.Error(t, err)
}
