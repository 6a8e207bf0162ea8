package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/logging"
)

var (
	ErrBattleNotReady     = errors.New("both players must create their teams first")
	ErrBattleAlreadyGoing = errors.New("battle already started")
)

// StartBattle transitions a ready battle into its first turn: the battle
// seed is fixed, each player's first creature takes the field and the move
// deadline starts ticking. From here on every roll of the battle derives
// from the stored seed.
func StartBattle(repo BattleRepo, battleID uint, moveTimeout time.Duration) (*game.Battle, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status == game.StatusInProgress || b.Status == game.StatusFinished {
		return nil, ErrBattleAlreadyGoing
	}
	if len(b.Players) != 2 {
		return nil, ErrBattleNotReady
	}
	for i := range b.Players {
		if !b.Players[i].HasCreated || len(b.Players[i].Creatures) == 0 {
			return nil, ErrBattleNotReady
		}
	}

	b.Seed = rand.Int63()
	for pi := range b.Players {
		for ci := range b.Players[pi].Creatures {
			c := &b.Players[pi].Creatures[ci]
			c.IsActive = ci == 0
			c.IsFainted = false
			c.CurrentHitPoints = c.MaxHitPoints
			c.Modifiers = nil
			c.SkipNextTurn = false
		}
		b.Players[pi].HasSubmittedMove = false
		b.Players[pi].PendingMoveIndex = nil
	}

	b.Status = game.StatusInProgress
	b.Phase = game.PhaseAwaitingMoves
	b.TurnCount = 0
	b.Log = nil
	b.Message = "The battle has begun!"
	b.MoveDeadline = time.Now().Add(moveTimeout)

	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	logging.Info("battle started", logging.Fields{"battle_id": b.ID, "join_code": b.JoinCode, "seed": b.Seed})
	return b, nil
}
