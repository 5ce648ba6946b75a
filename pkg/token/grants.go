// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package token

// VideoGrant is the capability set embedded in an access token, scoped to a
// single room. Field names follow the claim layout the media platform
// verifies; the platform, not this service, enforces them.
type VideoGrant struct {
	RoomJoin             bool   `json:"roomJoin,omitempty"`
	Room                 string `json:"room,omitempty"`
	CanPublish           *bool  `json:"canPublish,omitempty"`
	CanPublishData       *bool  `json:"canPublishData,omitempty"`
	CanSubscribe         *bool  `json:"canSubscribe,omitempty"`
	CanUpdateOwnMetadata *bool  `json:"canUpdateOwnMetadata,omitempty"`
}

// PublicGrant is the capability set handed out by the free-join flow:
// full publish and subscribe inside one room.
func PublicGrant(room string) *VideoGrant {
	return &VideoGrant{
		RoomJoin:             true,
		Room:                 room,
		CanPublish:           boolPtr(true),
		CanPublishData:       boolPtr(true),
		CanSubscribe:         boolPtr(true),
		CanUpdateOwnMetadata: boolPtr(true),
	}
}

// MemberGrant is the capability set used by the authenticated flow.
// Publish and subscribe are always on; metadata updates stay server-driven.
func MemberGrant(room string) *VideoGrant {
	return &VideoGrant{
		RoomJoin:       true,
		Room:           room,
		CanPublish:     boolPtr(true),
		CanPublishData: boolPtr(true),
		CanSubscribe:   boolPtr(true),
	}
}

// AgentDispatch asks the platform to place a named server-side agent into
// the room as soon as it opens. Metadata is an opaque JSON string forwarded
// to the agent.
type AgentDispatch struct {
	AgentName string `json:"agentName,omitempty"`
	Metadata  string `json:"metadata,omitempty"`
}

// RoomConfiguration carries routing instructions inside the signed token.
type RoomConfiguration struct {
	Agents []AgentDispatch `json:"agents,omitempty"`
}

func boolPtr(b bool) *bool {
	return &b
}
