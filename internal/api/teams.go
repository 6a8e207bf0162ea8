package api

import (
	"net/http"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/constants"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateTeamPayload struct {
	// Labels are the classification labels of the player's drawings, in
	// team order.
	Labels []string `json:"labels"`
}

// CreateTeam resolves a player's drawing labels into validated creatures
// and stores the team on the battle.
func (h *BattleHandler) CreateTeam(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	var req CreateTeamPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if len(req.Labels) > h.cfg.CreaturesPerPlayer {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrTooManyDrawings})
		return
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	p := sessionPlayer(c, b)
	if p == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisBattle})
		return
	}

	err = service.CreateTeam(c.Request.Context(), h.repo, h.repo, h.proposer, b.ID,
		service.CreateTeamRequest{PlayerUUID: p.PlayerUUID, Labels: req.Labels},
		h.cfg.Rules, h.cfg.CreaturesPerPlayer)
	if err != nil {
		switch err {
		case service.ErrBattleNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case service.ErrPlayerNotFound:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisBattle})
		case service.ErrTeamAlreadyCreated:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrTeamAlreadyCreated})
		case service.ErrInvalidTeamSize, service.ErrEmptyLabel:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSaveTeam})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Team created"})
}
