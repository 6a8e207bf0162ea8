package storage

import (
	"time"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
)

type Repository interface {
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	FindBattleByJoinCode(code string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	// GetPublicBattles lists joinable public lobbies created within maxAge.
	GetPublicBattles(maxAge time.Duration) ([]game.Battle, error)
	RemovePlayerByUUID(battleID uint, playerUUID string) error

	// Validated creature definition cache (lookup by canonical label key,
	// e.g. key = "fire_dragon").
	GetCachedDefinition(labelKey string) (*game.CreatureDefinition, error)
	SaveCachedDefinition(labelKey string, def game.CreatureDefinition) error

	UpsertUser(email, uuid, name string) error
	UpdateStatsOnBattleEnd(b *game.Battle, resignedEmail string) error
	GetStatsByEmail(email string) (*game.User, error)
	SaveUser(u *game.User) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)

	// ClaimTimedOutBattleIDs atomically leases in-progress battles whose
	// move deadline has passed to the given worker. A battle already held
	// under a fresh lease is skipped, so concurrent scanners never resolve
	// the same timeout twice.
	ClaimTimedOutBattleIDs(now time.Time, workerID string, leaseFor time.Duration) ([]uint, error)
}
