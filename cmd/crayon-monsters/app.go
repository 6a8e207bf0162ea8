package main

import (
	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/logging"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/service"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/statgen"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid crayon configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}

// newStatProposer wires the Groq client when an API key is configured.
// Without a key the server still runs; creatures come from the
// deterministic fallback generator.
func newStatProposer(apiKey, promptTemplate string) service.StatProposer {
	client, err := statgen.NewClient(apiKey, promptTemplate)
	if err != nil {
		logging.Warn("stat generation disabled; using deterministic fallback creatures", logging.Fields{"reason": err.Error()})
		return nil
	}
	return client
}
