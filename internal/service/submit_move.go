package service

import (
	"errors"
	"time"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/engine"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
)

var (
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrMovesLocked         = errors.New("moves are locked; resolving current turn")
	ErrPlayerNotInBattle   = errors.New("player not in battle")
	ErrNoActiveCreature    = errors.New("no active creature")
	ErrInvalidMoveIndex    = errors.New("move index out of range")
)

// SubmitMove stores a player's chosen move and resolves the turn once both
// players have submitted. Returns the updated battle and whether the turn
// was resolved.
func SubmitMove(repo BattleRepo, battleID uint, playerUUID string, moveIndex int, rules config.Rules, moveTimeout time.Duration) (*game.Battle, bool, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, false, ErrBattleNotFound
	}
	if b.Status != game.StatusInProgress {
		return nil, false, ErrBattleNotInProgress
	}
	if b.Phase == game.PhaseResolving {
		return nil, false, ErrMovesLocked
	}
	if len(b.Players) != 2 {
		return nil, false, errors.New("invalid player count")
	}

	var current *game.Player
	if b.Players[0].PlayerUUID == playerUUID {
		current = &b.Players[0]
	} else if b.Players[1].PlayerUUID == playerUUID {
		current = &b.Players[1]
	} else {
		return nil, false, ErrPlayerNotInBattle
	}

	var active *game.Creature
	for i := range current.Creatures {
		if current.Creatures[i].IsActive && !current.Creatures[i].IsFainted {
			active = &current.Creatures[i]
			break
		}
	}
	if active == nil {
		return nil, false, ErrNoActiveCreature
	}
	if moveIndex < 0 || moveIndex >= len(active.Moves) {
		return nil, false, ErrInvalidMoveIndex
	}

	idx := moveIndex
	current.HasSubmittedMove = true
	current.PendingMoveIndex = &idx

	resolved := false
	if b.Players[0].HasSubmittedMove && b.Players[1].HasSubmittedMove {
		b.Phase = game.PhaseResolving
		if err := engine.ResolveTurn(b, rules); err != nil {
			return nil, false, err
		}
		if b.Status == game.StatusFinished {
			if !b.StatsCounted {
				_ = repo.UpdateStatsOnBattleEnd(b, "")
				b.StatsCounted = true
			}
			b.MoveDeadline = time.Time{}
		} else {
			b.Phase = game.PhaseAwaitingMoves
			b.MoveDeadline = time.Now().Add(moveTimeout)
		}
		resolved = true
	}

	if err := repo.UpdateBattle(b); err != nil {
		return nil, resolved, err
	}
	return b, resolved, nil
}
