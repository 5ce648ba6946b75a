// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package recording_api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/livekit/protocol/livekit"

	"github.com/confera/config"
	"github.com/confera/pkg/commons"
	"github.com/confera/pkg/utils"
)

// EgressService is the slice of the media platform's egress client this
// api needs. Satisfied by *lksdk.EgressClient.
type EgressService interface {
	ListEgress(ctx context.Context, req *livekit.ListEgressRequest) (*livekit.ListEgressResponse, error)
	StartRoomCompositeEgress(ctx context.Context, req *livekit.RoomCompositeEgressRequest) (*livekit.EgressInfo, error)
}

type RecordingApi struct {
	cfg    *config.AppConfig
	logger commons.Logger
	egress EgressService
}

func NewRecordingApi(cfg *config.AppConfig, logger commons.Logger, egress EgressService) *RecordingApi {
	return &RecordingApi{
		cfg:    cfg,
		logger: logger,
		egress: egress,
	}
}

type StartRecordingRequest struct {
	RoomName string `json:"roomName"`
}

type StartRecordingResponse struct {
	EgressID string `json:"egressId"`
	RoomName string `json:"roomName"`
}

// StartRecording starts a room-composite recording. A room with an active
// egress is already in the desired state, so a second start is refused with
// a conflict instead of stacking recordings.
//
// @Router /v1/record/start [post]
func (api *RecordingApi) StartRecording(c *gin.Context) {
	var req StartRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.respondError(c, commons.ClientInputError("malformed request body"))
		return
	}
	if utils.IsEmpty(req.RoomName) {
		api.respondError(c, commons.ClientInputError("missing room name"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second*15)
	defer cancel()

	active, err := api.egress.ListEgress(ctx, &livekit.ListEgressRequest{
		RoomName: req.RoomName,
		Active:   true,
	})
	if err != nil {
		api.respondError(c, commons.UpstreamError(err, "unable to check recording state"))
		return
	}
	if len(active.GetItems()) > 0 {
		api.respondError(c, commons.ConflictError("recording already in progress for room "+req.RoomName))
		return
	}

	info, err := api.egress.StartRoomCompositeEgress(ctx, &livekit.RoomCompositeEgressRequest{
		RoomName: req.RoomName,
		Layout:   "speaker",
		FileOutputs: []*livekit.EncodedFileOutput{{
			FileType: livekit.EncodedFileType_MP4,
			Filepath: req.RoomName + "-" + uuid.NewString(),
		}},
	})
	if err != nil {
		api.respondError(c, commons.UpstreamError(err, "unable to start recording"))
		return
	}

	api.logger.Infof("started recording: room=%s, egress=%s", req.RoomName, info.GetEgressId())
	c.JSON(http.StatusOK, StartRecordingResponse{
		EgressID: info.GetEgressId(),
		RoomName: req.RoomName,
	})
}

func (api *RecordingApi) respondError(c *gin.Context, err error) {
	status := commons.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		api.logger.Errorf("recording request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
