// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package connection_api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ginCookieStore adapts a gin request/response pair to token.CookieStore.
type ginCookieStore struct {
	c *gin.Context
}

func (s *ginCookieStore) Get(name string) (string, bool) {
	value, err := s.c.Cookie(name)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

func (s *ginCookieStore) Set(name string, value string, ttl time.Duration) {
	s.c.SetSameSite(http.SameSiteStrictMode)
	s.c.SetCookie(name, value, int(ttl.Seconds()), "/", "", true, true)
}
