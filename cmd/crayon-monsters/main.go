package main

import (
	"os"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/api"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/constants"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./crayon_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/crayon.db"
	}
	repo := createRepositoryOrExit(dbPath)

	proposer := newStatProposer(os.Getenv(constants.EnvGroqAPIKey), cfg.StatPromptTemplate)
	handler := api.NewBattleHandler(repo, proposer, cfg)
	authHandler := api.NewAuthHandler(repo)

	// Each server instance gets its own worker identity so the timeout
	// scanner lease distinguishes concurrent instances.
	startTimeoutScanner(repo, cfg.Rules, cfg.MoveTimeout, uuid.NewString())

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RoutePublicBattles, handler.ListPublicBattles)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerProfile)
		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.POST(constants.RouteBattlesJoin, handler.JoinBattle)
		protected.GET(constants.RouteBattleByCode, handler.GetBattle)
		protected.POST(constants.RouteBattleStart, handler.StartBattle)
		protected.POST(constants.RouteBattleForfeit, handler.ForfeitBattle)
		protected.POST(constants.RouteBattleLeave, handler.LeaveBattle)
		protected.POST(constants.RouteCreateTeam, handler.CreateTeam)
		protected.POST(constants.RouteBattleMove, handler.SubmitMove)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
	router.POST(constants.RouteAuthLogout, authHandler.Logout)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
