package service

import (
	"fmt"
	"time"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
)

// Forfeit ends an in-progress battle immediately in the opponent's favor.
func Forfeit(repo BattleRepo, battleID uint, playerUUID string) (*game.Battle, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}
	if len(b.Players) != 2 {
		return nil, fmt.Errorf("battle %s has %d players, expected 2", b.JoinCode, len(b.Players))
	}

	var quitter, opponent *game.Player
	if b.Players[0].PlayerUUID == playerUUID {
		quitter, opponent = &b.Players[0], &b.Players[1]
	} else if b.Players[1].PlayerUUID == playerUUID {
		quitter, opponent = &b.Players[1], &b.Players[0]
	} else {
		return nil, ErrPlayerNotInBattle
	}

	b.Status = game.StatusFinished
	b.Phase = game.PhaseResolved
	b.Result = game.ResultForfeit
	b.Winner = opponent.PlayerUUID
	b.Message = fmt.Sprintf("%s forfeited. %s wins!", quitter.PlayerName, opponent.PlayerName)
	b.MoveDeadline = time.Time{}
	b.Log = append(b.Log, game.TurnRecord{
		Turn: b.TurnCount,
		Events: []game.TurnEvent{{
			Type:    game.EventForfeit,
			Player:  quitter.PlayerName,
			Message: b.Message,
		}},
	})
	if !b.StatsCounted {
		_ = repo.UpdateStatsOnBattleEnd(b, quitter.PlayerEmail)
		b.StatsCounted = true
	}
	if err := repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}
