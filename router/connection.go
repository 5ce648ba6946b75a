package meet_routers

import (
	"github.com/gin-gonic/gin"
	lksdk "github.com/livekit/server-sdk-go/v2"

	agentApi "github.com/confera/api/agent-api"
	connectionApi "github.com/confera/api/connection-api"
	recordingApi "github.com/confera/api/recording-api"
	"github.com/confera/config"
	"github.com/confera/pkg/commons"
	"github.com/confera/pkg/region"
	"github.com/confera/pkg/token"
)

func ConnectionApiRoute(cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger,
	issuer *token.Issuer, resolver *region.Resolver) {
	apiv1 := engine.Group("v1/connection")
	connApi := connectionApi.NewConnectionApi(cfg, logger, issuer, resolver)
	{
		apiv1.POST("/details", connApi.ConnectionDetails)
		apiv1.POST("/join", connApi.JoinRoom)
	}
}

func AgentApiRoute(cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger) {
	apiv1 := engine.Group("v1/agent")
	dispatchClient := lksdk.NewAgentDispatchServiceClient(cfg.LiveKitURL, cfg.LiveKitAPIKey, cfg.LiveKitAPISecret)
	agApi := agentApi.NewAgentApi(cfg, logger, dispatchClient)
	{
		apiv1.POST("/dispatch", agApi.Dispatch)
	}
}

func RecordingApiRoute(cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger) {
	apiv1 := engine.Group("v1/record")
	egressClient := lksdk.NewEgressClient(cfg.LiveKitURL, cfg.LiveKitAPIKey, cfg.LiveKitAPISecret)
	recApi := recordingApi.NewRecordingApi(cfg, logger, egressClient)
	{
		apiv1.POST("/start", recApi.StartRecording)
	}
}
