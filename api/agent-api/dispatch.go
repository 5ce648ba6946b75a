// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package agent_api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/livekit/protocol/livekit"

	"github.com/confera/config"
	"github.com/confera/pkg/commons"
	"github.com/confera/pkg/utils"
)

// DispatchService is the slice of the media platform's agent-dispatch
// client this api needs. Satisfied by *lksdk.AgentDispatchClient.
type DispatchService interface {
	CreateDispatch(ctx context.Context, req *livekit.CreateAgentDispatchRequest) (*livekit.AgentDispatch, error)
}

type AgentApi struct {
	cfg      *config.AppConfig
	logger   commons.Logger
	dispatch DispatchService
}

func NewAgentApi(cfg *config.AppConfig, logger commons.Logger, dispatch DispatchService) *AgentApi {
	return &AgentApi{
		cfg:      cfg,
		logger:   logger,
		dispatch: dispatch,
	}
}

type DispatchRequest struct {
	RoomName   string `json:"roomName"`
	Email      string `json:"email"`
	Passphrase string `json:"passphrase"`
}

type DispatchResponse struct {
	AgentName string `json:"agentName"`
	RoomName  string `json:"roomName"`
}

type dispatchMetadata struct {
	RoomName    string `json:"roomName"`
	Email       string `json:"email,omitempty"`
	Passphrase  string `json:"passphrase,omitempty"`
	CallbackURL string `json:"callbackUrl"`
}

// Dispatch asks the platform to place the configured agent into a room
// that is already open, typically right after the requester joined.
//
// @Router /v1/agent/dispatch [post]
func (api *AgentApi) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.respondError(c, commons.ClientInputError("malformed request body"))
		return
	}
	if utils.IsEmpty(req.RoomName) {
		api.respondError(c, commons.ClientInputError("missing room name"))
		return
	}
	if api.cfg.AgentName == "" {
		api.respondError(c, commons.ConfigurationError("no agent configured for dispatch"))
		return
	}

	metadata, err := json.Marshal(dispatchMetadata{
		RoomName:    req.RoomName,
		Email:       req.Email,
		Passphrase:  req.Passphrase,
		CallbackURL: "https://" + c.Request.Host,
	})
	if err != nil {
		api.respondError(c, commons.ClientInputError("unserializable dispatch metadata"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second*15)
	defer cancel()

	_, err = api.dispatch.CreateDispatch(ctx, &livekit.CreateAgentDispatchRequest{
		AgentName: api.cfg.AgentName,
		Room:      req.RoomName,
		Metadata:  string(metadata),
	})
	if err != nil {
		api.respondError(c, commons.UpstreamError(err, "agent dispatch failed"))
		return
	}

	api.logger.Infof("dispatched agent: agent=%s, room=%s", api.cfg.AgentName, req.RoomName)
	c.JSON(http.StatusOK, DispatchResponse{
		AgentName: api.cfg.AgentName,
		RoomName:  req.RoomName,
	})
}

func (api *AgentApi) respondError(c *gin.Context, err error) {
	status := commons.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		api.logger.Errorf("agent dispatch failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
