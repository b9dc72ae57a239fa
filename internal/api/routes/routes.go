package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/api/handlers"
)

type Deps struct {
	Transcribe *handlers.TranscribeHandler
	SOAP       *handlers.SOAPHandler
	Notes      *handlers.NoteHandler
	WS         *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/transcribe", d.Transcribe.Transcribe)
	api.POST("/generate-soap", d.SOAP.Generate)
	api.POST("/notes", d.Notes.Save)
	api.GET("/notes/:note_id", d.Notes.Get)

	// WebSocket
	r.GET("/ws/audio", d.WS.AudioWS)
}
