package api

import (
	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/service"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo     storage.Repository
	proposer service.StatProposer
	cfg      *config.LoadedConfig
}

// NewBattleHandler creates a BattleHandler. proposer may be nil, in which
// case creature definitions come from the deterministic fallback.
func NewBattleHandler(repo storage.Repository, proposer service.StatProposer, cfg *config.LoadedConfig) *BattleHandler {
	return &BattleHandler{repo: repo, proposer: proposer, cfg: cfg}
}
