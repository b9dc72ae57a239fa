package config

import (
	"os"
	"strings"
)

// Server holds the gateway's process configuration, read from the
// environment (godotenv loads .env first in main).
type Server struct {
	Port           string
	AllowedOrigins []string

	GoogleProject  string
	GoogleLocation string
	GeminiModel    string
	SpeechLanguage string
}

func LoadServer() Server {
	cfg := Server{
		Port:           getenv("PORT", "8000"),
		GoogleProject:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
		GoogleLocation: getenv("GOOGLE_CLOUD_LOCATION", "us-central1"),
		GeminiModel:    getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		SpeechLanguage: getenv("SPEECH_LANGUAGE", "en-US"),
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
