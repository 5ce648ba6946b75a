// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package connection_api

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/confera/config"
	"github.com/confera/pkg/commons"
	"github.com/confera/pkg/region"
	"github.com/confera/pkg/token"
	"github.com/confera/pkg/utils"
)

// roomNamePattern gates the free-join flow: 4 alphanumerics, dash, 4
// alphanumerics, as minted by the room-name generator in the web client.
// A naive anti-guessing measure, NOT an authentication boundary.
var roomNamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{4}-[a-zA-Z0-9]{4}$`)

type ConnectionApi struct {
	cfg      *config.AppConfig
	logger   commons.Logger
	issuer   *token.Issuer
	resolver *region.Resolver
}

func NewConnectionApi(cfg *config.AppConfig, logger commons.Logger,
	issuer *token.Issuer, resolver *region.Resolver) *ConnectionApi {
	return &ConnectionApi{
		cfg:      cfg,
		logger:   logger,
		issuer:   issuer,
		resolver: resolver,
	}
}

type ConnectionDetailsRequest struct {
	RoomName        string `json:"roomName"`
	ParticipantName string `json:"participantName"`
	Metadata        string `json:"metadata"`
	Region          string `json:"region"`
	Language        string `json:"language"`
}

type JoinRoomRequest struct {
	ConnectionDetailsRequest
	Email      string `json:"email"`
	Passphrase string `json:"passphrase"`
}

type ConnectionDetailsResponse struct {
	ServerURL        string `json:"serverUrl"`
	RoomName         string `json:"roomName"`
	ParticipantName  string `json:"participantName"`
	ParticipantToken string `json:"participantToken"`
}

// agentMetadata is forwarded to the dispatched agent as an opaque JSON
// string.
type agentMetadata struct {
	RoomName    string `json:"roomName"`
	Email       string `json:"email,omitempty"`
	Passphrase  string `json:"passphrase,omitempty"`
	CallbackURL string `json:"callbackUrl"`
}

// ConnectionDetails issues a credential for the free-join flow.
//
// @Router /v1/connection/details [post]
func (api *ConnectionApi) ConnectionDetails(c *gin.Context) {
	var req ConnectionDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.respondError(c, commons.ClientInputError("malformed request body"))
		return
	}

	if utils.IsEmpty(req.ParticipantName) {
		api.respondError(c, commons.ClientInputError("missing participant name"))
		return
	}
	if !roomNamePattern.MatchString(req.RoomName) {
		api.respondError(c, commons.ClientInputError("invalid room name"))
		return
	}

	// same browser, same suffix: repeated joins keep one identity
	suffix := token.EnsureSuffix(&ginCookieStore{c: c})
	identity := req.ParticipantName + "__" + suffix

	serverURL, err := api.resolver.ResolveServerURL(api.cfg.LiveKitURL, req.Region)
	if err != nil {
		api.respondError(c, err)
		return
	}

	signed, err := api.issuer.Issue(
		token.NewIdentity(identity, req.ParticipantName, req.Metadata, req.Language),
		token.PublicGrant(req.RoomName),
		nil,
	)
	if err != nil {
		api.respondError(c, err)
		return
	}

	api.logger.Infof("issued connection details: room=%s, participant=%s", req.RoomName, identity)
	c.JSON(http.StatusOK, ConnectionDetailsResponse{
		ServerURL:        serverURL,
		RoomName:         req.RoomName,
		ParticipantName:  identity,
		ParticipantToken: signed,
	})
}

// JoinRoom issues a credential for the authenticated flow: no room-name
// gate, no disambiguation suffix, publish and subscribe always on. An
// upstream auth middleware fronts this route.
//
// @Router /v1/connection/join [post]
func (api *ConnectionApi) JoinRoom(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.respondError(c, commons.ClientInputError("malformed request body"))
		return
	}

	if utils.IsEmpty(req.RoomName) {
		api.respondError(c, commons.ClientInputError("missing room name"))
		return
	}
	if utils.IsEmpty(req.ParticipantName) {
		api.respondError(c, commons.ClientInputError("missing participant name"))
		return
	}

	serverURL, err := api.resolver.ResolveServerURL(api.cfg.LiveKitURL, req.Region)
	if err != nil {
		api.respondError(c, err)
		return
	}

	signed, err := api.issuer.Issue(
		token.NewIdentity(req.ParticipantName, req.ParticipantName, req.Metadata, req.Language),
		token.MemberGrant(req.RoomName),
		api.roomConfiguration(c, req),
	)
	if err != nil {
		api.respondError(c, err)
		return
	}

	api.logger.Infof("issued join credential: room=%s, participant=%s", req.RoomName, req.ParticipantName)
	c.JSON(http.StatusOK, ConnectionDetailsResponse{
		ServerURL:        serverURL,
		RoomName:         req.RoomName,
		ParticipantName:  req.ParticipantName,
		ParticipantToken: signed,
	})
}

// roomConfiguration embeds an auto-dispatch instruction for the configured
// agent, carrying the metadata it needs to call back into this service.
func (api *ConnectionApi) roomConfiguration(c *gin.Context, req JoinRoomRequest) *token.RoomConfiguration {
	if api.cfg.AgentName == "" {
		return nil
	}

	metadata, err := json.Marshal(agentMetadata{
		RoomName:    req.RoomName,
		Email:       req.Email,
		Passphrase:  req.Passphrase,
		CallbackURL: "https://" + c.Request.Host,
	})
	if err != nil {
		api.logger.Errorf("unable to encode agent metadata for room %s: %v", req.RoomName, err)
		return nil
	}

	return &token.RoomConfiguration{
		Agents: []token.AgentDispatch{{
			AgentName: api.cfg.AgentName,
			Metadata:  string(metadata),
		}},
	}
}

func (api *ConnectionApi) respondError(c *gin.Context, err error) {
	status := commons.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		api.logger.Errorf("connection request failed: %v", err)
	} else {
		api.logger.Debugf("connection request rejected: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
