package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Utkarsh07/AshaHealth-scribe-app/config"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/api/handlers"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/api/middleware"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/api/routes"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/logger"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/metrics"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/providers/notegen"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/providers/stt"
	mongorepo "github.com/Utkarsh07/AshaHealth-scribe-app/internal/repositories/mongo"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/services"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	cfg := config.LoadServer()
	ctx := context.Background()

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	log.Info("MongoDB connected")

	// Providers
	speech, err := stt.NewGoogleSpeech(ctx)
	if err != nil {
		log.Fatalf("Speech client init error: %v", err)
	}
	defer speech.Close()
	speech.Language = cfg.SpeechLanguage

	gemini, err := notegen.NewVertexGemini(ctx, cfg.GoogleProject, cfg.GoogleLocation, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Vertex client init error: %v", err)
	}
	defer gemini.Close()

	// Services
	soapSvc := services.NewSOAPService(gemini)
	noteSvc := services.NewNoteService(mongorepo.NewNoteRepo(config.MongoDatabase()))

	m := metrics.Default

	// Gin server
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	routes.RegisterRoutes(r, routes.Deps{
		Transcribe: handlers.NewTranscribeHandler(speech, m, log),
		SOAP:       handlers.NewSOAPHandler(soapSvc, m, log),
		Notes:      handlers.NewNoteHandler(noteSvc, m.NotesSaved, log),
		WS:         handlers.NewWSHandler(speech, m, log),
	})

	log.WithField("port", cfg.Port).Info("gateway listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
