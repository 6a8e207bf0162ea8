package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/constants"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/logging"
	"github.com/abhishek-mmvi/CrayonMonsters/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateBattlePayload struct {
	PlayerName  string `json:"player_name"`
	PlayerEmail string `json:"player_email"`
	Name        string `json:"name"`
	Private     bool   `json:"private"`
}

// CreateBattle creates a new battle lobby and returns its join code.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	// Derive identity from session
	if v, ok := c.Get("userEmail"); ok {
		req.PlayerEmail, _ = v.(string)
	}
	if v, ok := c.Get("userName"); ok && req.PlayerName == "" {
		req.PlayerName, _ = v.(string)
	}

	if utf8.RuneCountInString(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBattleNameExceeds})
		return
	}

	joinCode := generateJoinCode()
	newBattle := game.Battle{
		Name:     req.Name,
		Private:  req.Private,
		Status:   game.StatusWaitingForPlayers,
		JoinCode: joinCode,
		Players: []game.Player{
			{PlayerUUID: uuid.NewString(), PlayerName: req.PlayerName, PlayerEmail: req.PlayerEmail},
		},
		Message: "Battle created. Waiting for a second player.",
	}

	_ = h.repo.UpsertUser(req.PlayerEmail, newBattle.Players[0].PlayerUUID, req.PlayerName)

	if err := h.repo.CreateBattle(&newBattle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"battle_id": newBattle.ID,
		"join_code": joinCode,
	})
}

type JoinBattlePayload struct {
	JoinCode    string `json:"join_code"`
	PlayerName  string `json:"player_name"`
	PlayerEmail string `json:"player_email"`
}

// JoinBattle allows a second player to join a lobby via join code.
func (h *BattleHandler) JoinBattle(c *gin.Context) {
	var req JoinBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if v, ok := c.Get("userEmail"); ok {
		req.PlayerEmail, _ = v.(string)
	}
	if v, ok := c.Get("userName"); ok && req.PlayerName == "" {
		req.PlayerName, _ = v.(string)
	}

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	if len(b.Players) >= 2 {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFull})
		return
	}

	newPlayer := game.Player{PlayerUUID: uuid.NewString(), PlayerName: req.PlayerName, PlayerEmail: req.PlayerEmail}
	b.Players = append(b.Players, newPlayer)
	b.Message = "Second player joined. Draw your creatures!"

	_ = h.repo.UpsertUser(req.PlayerEmail, newPlayer.PlayerUUID, req.PlayerName)

	if err := h.repo.UpdateBattle(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"battle_id": b.ID,
		"join_code": b.JoinCode,
		"message":   "Successfully joined battle",
	})
}

// StartBattle moves a ready lobby into its first turn.
func (h *BattleHandler) StartBattle(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	short, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	b, err := h.repo.GetBattleByID(short.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	if len(b.Players) < 2 {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotEnoughPlayers})
		return
	}
	if !b.Players[0].HasCreated || !b.Players[1].HasCreated {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBothPlayersMustCreateTeams})
		return
	}
	if b.Status == game.StatusInProgress || b.Status == game.StatusFinished {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleAlreadyStarted})
		return
	}

	started, err := service.StartBattle(h.repo, b.ID, h.cfg.MoveTimeout)
	if err != nil {
		logging.Error("failed to start battle", err, logging.Fields{constants.LogFieldBattleID: b.ID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Battle started", "turn": started.TurnCount})
}

// LeaveBattle removes a player from a waiting room.
func (h *BattleHandler) LeaveBattle(c *gin.Context) {
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
	if b.Status != game.StatusWaitingForPlayers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotLeaveAfterStart})
		return
	}
	p := sessionPlayer(c, b)
	if p == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisBattle})
		return
	}
	leavingUUID := p.PlayerUUID
	if err := h.repo.RemovePlayerByUUID(b.ID, leavingUUID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRemovePlayer})
		return
	}
	// Reflect removal in the in-memory model to avoid re-attaching via
	// FullSaveAssociations.
	filtered := make([]game.Player, 0, len(b.Players))
	for _, pl := range b.Players {
		if pl.PlayerUUID != leavingUUID {
			filtered = append(filtered, pl)
		}
	}
	b.Players = filtered
	b.Message = "A player left. Waiting for a new challenger."
	if err := h.repo.UpdateBattle(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Player removed"})
}

// ForfeitBattle ends an in-progress battle in the opponent's favor.
func (h *BattleHandler) ForfeitBattle(c *gin.Context) {
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
	p := sessionPlayer(c, b)
	if p == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisBattle})
		return
	}
	if _, err := service.Forfeit(h.repo, b.ID, p.PlayerUUID); err != nil {
		switch err {
		case service.ErrBattleNotInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedForfeitBattle})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Battle forfeited"})
}

// sessionPlayer resolves the authenticated session to a participant of the
// battle, or nil when the caller is not playing in it.
func sessionPlayer(c *gin.Context, b *game.Battle) *game.Player {
	v, _ := c.Get("userEmail")
	email, _ := v.(string)
	if email == "" {
		return nil
	}
	for i := range b.Players {
		if b.Players[i].PlayerEmail == email {
			return &b.Players[i]
		}
	}
	return nil
}
