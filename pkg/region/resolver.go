// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package region

import (
	"net/url"
	"strings"

	"github.com/confera/pkg/commons"
)

// cloudDomainMarker identifies hostnames that belong to the managed cloud.
// Anything else is self-hosted and never rewritten.
const cloudDomainMarker = "livekit.cloud"

// Resolver maps logical region codes onto concrete regional endpoints.
//
// The zero value is usable. Overrides, when configured, win over the
// hostname rewrite for their region code.
type Resolver struct {
	overrides map[string]string
}

// NewResolver builds a resolver with optional per-region URL overrides,
// keyed by region code.
func NewResolver(overrides map[string]string) *Resolver {
	return &Resolver{overrides: overrides}
}

// ResolveServerURL rewrites baseURL to target the given region's endpoint.
//
// A cloud hostname is laid out as <project>.<env?>.livekit.cloud. The region
// is spliced in as the second label and "production" is assumed when the
// original URL names no environment:
//
//	myproject.livekit.cloud         + eu -> myproject.eu.production.livekit.cloud
//	myproject.staging.livekit.cloud + eu -> myproject.eu.staging.livekit.cloud
//
// An empty region, or a hostname outside the managed cloud domain, returns
// baseURL unchanged apart from trailing-slash normalization. Scheme, port,
// path and query are always preserved.
//
// The region code is not checked against an allow-list; an arbitrary string
// ends up in the hostname as-is. Callers own that input.
func (r *Resolver) ResolveServerURL(baseURL string, region string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || !parsed.IsAbs() || parsed.Hostname() == "" {
		return "", commons.ClientInputError("invalid server url: " + baseURL)
	}

	if region == "" {
		return normalized(parsed), nil
	}

	if override, ok := r.overrides[region]; ok {
		overrideURL, err := url.Parse(override)
		if err != nil || !overrideURL.IsAbs() || overrideURL.Hostname() == "" {
			return "", commons.ConfigurationError("invalid region url override for " + region)
		}
		return normalized(overrideURL), nil
	}

	hostname := parsed.Hostname()
	if !strings.Contains(hostname, cloudDomainMarker) {
		return normalized(parsed), nil
	}

	labels := strings.Split(hostname, ".")
	if len(labels) < 2 {
		return normalized(parsed), nil
	}

	project, suffix := labels[0], labels[1:]
	if suffix[0] != "staging" {
		suffix = append([]string{"production"}, suffix...)
	}
	rewritten := strings.Join(append([]string{project, region}, suffix...), ".")

	if port := parsed.Port(); port != "" {
		parsed.Host = rewritten + ":" + port
	} else {
		parsed.Host = rewritten
	}
	return normalized(parsed), nil
}

// normalized renders u with a trailing slash on bare-host URLs; any explicit
// path or query is kept verbatim.
func normalized(u *url.URL) string {
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}
