// Package http wires the gin router: static UI, the read-only REST
// surface, the metrics endpoint and the websocket upgrade route.
package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/parley/internal/adapters/signal"
	"github.com/dkeye/parley/internal/app"
	"github.com/dkeye/parley/internal/config"
	"github.com/dkeye/parley/pkg/metrics"
)

func SetupRouter(ctx context.Context, cfg *config.Config, relay *app.Relay) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	// GET /api/rooms — derived room list with member counts
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": relay.Registry.Rooms()})
	})

	// GET /api/rooms/:room/members — roster in join order
	api.GET("/rooms/:room/members", func(c *gin.Context) {
		room := c.Param("room")
		c.JSON(http.StatusOK, gin.H{
			"room":    room,
			"members": relay.Registry.RoomNames(room),
		})
	})

	ctl := signal.NewController(relay, cfg)
	api.GET("/ws", func(c *gin.Context) {
		ctl.HandleSignal(ctx, c)
	})

	return r
}
