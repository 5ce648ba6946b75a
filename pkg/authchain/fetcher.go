// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package authchain

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/confera/pkg/commons"
)

// Response is the normalized result of an authenticated fetch.
type Response struct {
	Ok      bool
	Status  int
	Headers http.Header
	Body    []byte
}

// Fetcher performs HTTP requests carrying auth-chain headers. Metadata
// conventionally includes the request origin and a caller-declared intent
// string; downstream services verify both the chain and the metadata.
type Fetcher struct {
	client *resty.Client
	cache  *DelegationCache
	logger commons.Logger
}

// NewFetcher builds a fetcher around a wallet signer. The delegation is
// created lazily on the first request.
func NewFetcher(signer Signer, logger commons.Logger) *Fetcher {
	return &Fetcher{
		client: resty.New(),
		cache:  NewDelegationCache(signer),
		logger: logger,
	}
}

// Do signs and executes one request. body may be nil; non-nil bodies are
// serialized by the transport as JSON. Failures, including wallet
// rejections, propagate to the caller unretried.
func (f *Fetcher) Do(ctx context.Context, method string, targetURL string, metadata map[string]interface{}, body interface{}) (*Response, error) {
	parsed, err := url.Parse(targetURL)
	if err != nil || !parsed.IsAbs() {
		return nil, commons.ClientInputError("invalid target url: " + targetURL)
	}

	delegated, err := f.cache.GetOrCreateDelegatedSigner(ctx)
	if err != nil {
		return nil, err
	}

	headers, err := delegated.SignRequest(method, parsed.Path, metadata)
	if err != nil {
		return nil, err
	}

	request := f.client.R().SetContext(ctx)
	for name, values := range headers {
		for _, value := range values {
			request.SetHeader(name, value)
		}
	}
	if body != nil {
		request.SetBody(body)
	}

	resp, err := request.Execute(method, targetURL)
	if err != nil {
		return nil, commons.UpstreamError(err, "authenticated request failed")
	}

	f.logger.Debugf("authenticated %s %s -> %d", method, parsed.Path, resp.StatusCode())
	return &Response{
		Ok:      resp.IsSuccess(),
		Status:  resp.StatusCode(),
		Headers: resp.Header(),
		Body:    resp.Body(),
	}, nil
}
