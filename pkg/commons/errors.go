// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package commons

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to every error envelope leaving this service.
const (
	ErrorCodeBadInput      = "MEET_BAD_INPUT"
	ErrorCodeConfiguration = "MEET_CONFIGURATION"
	ErrorCodeLoginFailure  = "MEET_LOGIN_FAILURE"
	ErrorCodeConflict      = "MEET_CONFLICT"
	ErrorCodeUpstream      = "MEET_UPSTREAM_FAILURE"
)

// ClientInputError covers missing or malformed caller input. Surfaced as a
// 400 with the message verbatim; never retried.
func ClientInputError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorCodeBadInput)
}

// ConfigurationError covers missing server-side secrets or URLs. Fatal for
// every request of that kind until the deployment is fixed.
func ConfigurationError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorCodeConfiguration)
}

// LoginFailure wraps a rejection from a long-lived signing capability such as
// a wallet extension. The user may retry manually; we never retry for them.
func LoginFailure(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryAuth, message).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ErrorCodeLoginFailure)
}

// ConflictError marks an operation already in progress for a resource, e.g.
// a recording already running for a room.
func ConflictError(message string) error {
	return goerrors.New(message, goerrors.CategoryConflict).
		WithCode(http.StatusConflict).
		WithTextCode(ErrorCodeConflict)
}

// UpstreamError wraps a failure from the managed media platform.
func UpstreamError(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryOperation, message).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorCodeUpstream)
}

// HTTPStatus maps any error to the response status the api layer should use.
func HTTPStatus(err error) int {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.Code != 0 {
		return rich.Code
	}
	return http.StatusInternalServerError
}
