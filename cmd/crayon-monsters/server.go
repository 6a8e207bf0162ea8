package main

import (
	"time"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/logging"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/service"
)

// startTimeoutScanner claims battles whose move deadline passed and
// delegates handling to service.HandleTimedOutBattle.
func startTimeoutScanner(repo interface {
	ClaimTimedOutBattleIDs(time.Time, string, time.Duration) ([]uint, error)
	GetBattleByID(uint) (*game.Battle, error)
	UpdateBattle(*game.Battle) error
	UpdateStatsOnBattleEnd(*game.Battle, string) error
}, rules config.Rules, moveTimeout time.Duration, workerID string) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			ids, err := repo.ClaimTimedOutBattleIDs(now, workerID, 2*time.Minute)
			if err != nil {
				logging.Error("timeout scanner failed to claim battles", err, nil)
				continue
			}
			// process each id sequentially (keeps DB safe under SQLite)
			for _, id := range ids {
				b, err := repo.GetBattleByID(id)
				if err != nil {
					continue
				}
				if err := service.HandleTimedOutBattle(repo, b, rules, moveTimeout); err != nil {
					logging.Error("failed to resolve timed-out battle", err, logging.Fields{"battle_id": id})
				}
			}
		}
	}()
}
