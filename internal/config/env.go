package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env.local and .env from workdir. Variables already set
// in the process environment win, and .env.local wins over .env.
func loadEnvFiles(workdir string) {
	for _, name := range []string{".env.local", ".env"} {
		p := filepath.Join(workdir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Failed to load environment file", "path", p, "error", err)
			continue
		}
		slog.Debug("Loaded environment file", "path", p)
	}
}
