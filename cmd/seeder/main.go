package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/silenusdev/assistant-marketing/internal/config"
	"github.com/silenusdev/assistant-marketing/internal/db"
)

// Applies the schema and the demo dataset. Both files are idempotent so
// the seeder can run on every deploy.
func main() {
	godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProductionConfig().Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	database, err := db.Open(cfg)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	files := []string{
		"migrations/0001_initial.sql",
		"seed/seed_data.sql",
	}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Fatal("read sql file", zap.String("file", file), zap.Error(err))
		}
		if _, err := database.Exec(string(content)); err != nil {
			logger.Fatal("execute sql file", zap.String("file", file), zap.Error(err))
		}
		logger.Info("applied", zap.String("file", file))
	}

	logger.Info("seeding complete")
}
