package service

import (
	"time"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/config"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/engine"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/logging"
)

// HandleTimedOutBattle resolves a turn whose deadline expired. Any player
// who has not submitted gets their active creature's first move
// auto-queued, then the turn resolves normally. A timed-out turn is never
// a loss by itself; the match only ends through battle damage or an
// explicit forfeit.
func HandleTimedOutBattle(repo BattleRepo, b *game.Battle, rules config.Rules, moveTimeout time.Duration) error {
	if b.Status != game.StatusInProgress || b.Phase != game.PhaseAwaitingMoves {
		return nil
	}
	if len(b.Players) != 2 {
		b.Status = game.StatusError
		b.Message = "Battle ended: missing player."
		b.MoveDeadline = time.Time{}
		b.ClaimedBy = ""
		return repo.UpdateBattle(b)
	}

	autoSubmitted := make([]string, 0, 2)
	for i := range b.Players {
		p := &b.Players[i]
		if p.HasSubmittedMove {
			continue
		}
		idx := 0
		p.HasSubmittedMove = true
		p.PendingMoveIndex = &idx
		autoSubmitted = append(autoSubmitted, p.PlayerName)
	}
	if len(autoSubmitted) > 0 {
		logging.Warn("move deadline expired; auto-submitting first move", logging.Fields{
			"battle_id": b.ID, "players": autoSubmitted,
		})
	}

	b.Phase = game.PhaseResolving
	if err := engine.ResolveTurn(b, rules); err != nil {
		return err
	}
	if len(b.Log) > 0 {
		rec := &b.Log[len(b.Log)-1]
		for _, name := range autoSubmitted {
			rec.Events = append(rec.Events, game.TurnEvent{
				Type:    game.EventTimeout,
				Player:  name,
				Message: name + " ran out of time and attacked on reflex.",
			})
		}
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
	b.ClaimedBy = ""
	return repo.UpdateBattle(b)
}
