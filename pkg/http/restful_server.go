package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"battwatch.xyz/battery-health-service/pkg/store"
	"battwatch.xyz/battery-health-service/pkg/stream"
)

type RestfulServer struct {
	Server           *gin.Engine
	Store            store.Store
	Broadcaster      *stream.Broadcaster
	RateLimiterStore *RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(client string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(client)
	}
}

func (rs *RestfulServer) CheckClientLimiter(client string) bool {
	limiter := rs.GetLimiter(client)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(client string, clientRate float64, clientBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(client, rate.Limit(clientRate), clientBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/stream", rs.Stream)
	rs.Server.POST("/limiter", rs.PostLimiter)

	rs.Server.GET("/batteries", rs.ListBatteries)
	rs.Server.POST("/batteries", rs.CreateBattery)

	batteries := rs.Server.Group("/batteries/:battery_id")
	{
		batteries.GET("", rs.GetBattery)
		batteries.PATCH("", rs.UpdateBattery)
		batteries.DELETE("", rs.DeleteBattery)
		batteries.GET("/history", rs.ListHistory)
		batteries.POST("/history", rs.AppendHistory)
		batteries.GET("/usage", rs.GetUsagePattern)
		batteries.PUT("/usage", rs.UpsertUsagePattern)
		batteries.GET("/recommendations", rs.ListRecommendations)
	}

	rs.Server.POST("/recommendations", rs.CreateRecommendation)
	rs.Server.POST("/recommendations/:recommendation_id/resolve", rs.ResolveRecommendation)
}
