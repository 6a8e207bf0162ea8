package api

import (
	"net/http"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/constants"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/service"

	"github.com/gin-gonic/gin"
)

type MoveRequest struct {
	MoveIndex int `json:"move_index"`
}

// SubmitMove stores a player's chosen move for the current turn and, when
// both players have chosen, resolves the turn.
func (h *BattleHandler) SubmitMove(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	if b.Status != game.StatusInProgress {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
		return
	}
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	p := sessionPlayer(c, b)
	if p == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisBattle})
		return
	}

	b2, resolved, err := service.SubmitMove(h.repo, b.ID, p.PlayerUUID, req.MoveIndex, h.cfg.Rules, h.cfg.MoveTimeout)
	if err != nil {
		switch err {
		case service.ErrBattleNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case service.ErrBattleNotInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
		case service.ErrMovesLocked:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMovesLockedResolvingTurn})
		case service.ErrPlayerNotInBattle:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInBattle})
		case service.ErrNoActiveCreature:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoActiveCreature})
		case service.ErrInvalidMoveIndex:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMoveIndex})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreMove})
		}
		return
	}

	if resolved {
		c.JSON(http.StatusOK, gin.H{"message": "Turn resolved", "turn": b2.TurnCount})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Move stored. Waiting for opponent."})
	}
}
