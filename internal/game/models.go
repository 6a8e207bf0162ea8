package game

import (
	"time"

	"gorm.io/gorm"
)

// StatName identifies a stat that buffs and debuffs can adjust.
type StatName string

const (
	StatAttack  StatName = "attack"
	StatDefense StatName = "defense"
	StatSpeed   StatName = "speed"
)

// EffectKind enumerates what a move does when it resolves.
type EffectKind string

const (
	EffectDamage EffectKind = "damage"
	EffectBuff   EffectKind = "buff"
	EffectDebuff EffectKind = "debuff"
	EffectStun   EffectKind = "stun"
	EffectHeal   EffectKind = "heal"
)

// MoveTarget says which side a move applies to.
type MoveTarget string

const (
	TargetSelf     MoveTarget = "self"
	TargetOpponent MoveTarget = "opponent"
)

// Move is one of a creature's four actions. The stat validator guarantees
// that every field is within configured bounds before a move enters play.
type Move struct {
	Name string     `json:"name"`
	Kind EffectKind `json:"kind"`
	// Power is the base power of a damage move.
	Power int `json:"power,omitempty"`
	// Magnitude is the percent adjustment for buff/debuff moves and the
	// flat hp amount for heal moves.
	Magnitude int `json:"magnitude,omitempty"`
	// Chance is the success probability (%) of a stun move.
	Chance   int        `json:"chance,omitempty"`
	Accuracy int        `json:"accuracy"`
	Target   MoveTarget `json:"target"`
	// Stat names the stat a buff/debuff adjusts.
	Stat StatName `json:"stat,omitempty"`
	// DurationTurns is how many turns a buff/debuff modifier persists.
	DurationTurns int    `json:"duration_turns,omitempty"`
	Description   string `json:"description,omitempty"`
}

// Modifier is a temporary, duration-bound adjustment to one stat. Modifiers
// from the same move replace each other instead of stacking; modifiers from
// different moves coexist and their net effect is capped by the engine.
type Modifier struct {
	Stat           StatName `json:"stat"`
	Percent        int      `json:"percent"` // signed: buff > 0, debuff < 0
	RemainingTurns int      `json:"remaining_turns"`
	Source         string   `json:"source"` // name of the move that applied it
}

// Creature is a battle-ready monster. It is created once at match setup
// from a validated definition and mutated only by turn resolution inside
// its owning battle.
type Creature struct {
	gorm.Model
	PlayerID uint `json:"-"`
	// Slot is the creature's position in the team order.
	Slot int `json:"slot"`
	// Label is the classification label the drawing resolved to.
	Label string `json:"label"`
	Name  string `json:"name"`
	Nature Nature `json:"nature"`

	MaxHitPoints     int `json:"max_hp"`
	CurrentHitPoints int `json:"current_hp"`
	Attack           int `json:"attack"`
	Defense          int `json:"defense"`
	Speed            int `json:"speed"`

	Moves     []Move     `json:"moves" gorm:"serializer:json"`
	Modifiers []Modifier `json:"modifiers" gorm:"serializer:json"`

	// SkipNextTurn is set by a successful stun and consumed on the
	// creature's next action.
	SkipNextTurn bool `json:"skip_next_turn"`
	IsActive     bool `json:"is_active"`
	IsFainted    bool `json:"is_fainted"`
}

func (Creature) TableName() string { return "battle_creatures" }

// MovesPerCreature is fixed by the validator: every creature enters play
// with exactly this many moves.
const MovesPerCreature = 4

// CreatureDefinition is the validator's output: a stat/move set guaranteed
// to satisfy every balance bound regardless of the raw proposal's quality.
type CreatureDefinition struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Nature    Nature `json:"nature"`
	HitPoints int    `json:"hp"`
	Attack    int    `json:"attack"`
	Defense   int    `json:"defense"`
	Speed     int    `json:"speed"`
	Moves     []Move `json:"moves"`
}

// NewCreature instantiates a battle creature from a validated definition.
func (d CreatureDefinition) NewCreature(slot int) Creature {
	return Creature{
		Slot:             slot,
		Label:            d.Label,
		Name:             d.Name,
		Nature:           d.Nature,
		MaxHitPoints:     d.HitPoints,
		CurrentHitPoints: d.HitPoints,
		Attack:           d.Attack,
		Defense:          d.Defense,
		Speed:            d.Speed,
		Moves:            append([]Move(nil), d.Moves...),
	}
}

// Player is one side of a battle: identity plus an ordered team.
type Player struct {
	gorm.Model
	BattleID    uint   `json:"-"`
	PlayerUUID  string `json:"player_uuid"`
	PlayerName  string `json:"player_name"`
	PlayerEmail string `json:"player_email"`

	Creatures []Creature `json:"creatures"`

	HasCreated       bool `json:"has_created"`
	HasSubmittedMove bool `json:"has_submitted_move"`
	// PendingMoveIndex is the queued move selection for the current turn
	// (nil until the player submits).
	PendingMoveIndex *int `json:"pending_move_index"`
}

func (Player) TableName() string { return "battle_players" }

// Battle statuses.
const (
	StatusWaitingForPlayers = "waiting_for_players"
	StatusStarting          = "starting"
	StatusInProgress        = "in_progress"
	StatusFinished          = "finished"
	StatusError             = "error"
)

// Turn phases while a battle is in progress.
const (
	PhaseAwaitingMoves = "awaiting_moves"
	PhaseResolving     = "resolving"
	PhaseResolved      = "resolved"
)

// BattleResult is the terminal outcome of a battle.
type BattleResult string

const (
	ResultNone    BattleResult = ""
	ResultTeam1   BattleResult = "team1_wins"
	ResultTeam2   BattleResult = "team2_wins"
	ResultDraw    BattleResult = "draw"
	ResultForfeit BattleResult = "forfeit"
)

// Turn event types emitted by the resolver.
const (
	EventDamage   = "damage"
	EventMiss     = "miss"
	EventBuff     = "buff"
	EventDebuff   = "debuff"
	EventStun     = "stun"
	EventStunFail = "stun_fail"
	EventHeal     = "heal"
	EventSkip     = "skip"
	EventFaint    = "faint"
	EventSwitch   = "switch"
	EventTimeout  = "timeout"
	EventVictory  = "victory"
	EventDraw     = "draw"
	EventForfeit  = "forfeit"
)

// TurnEvent is one entry of the outcome log: who did what and with which
// numeric result. The session layer serializes these for broadcast.
type TurnEvent struct {
	Type     string   `json:"type"`
	Player   string   `json:"player,omitempty"`
	Creature string   `json:"creature,omitempty"`
	Move     string   `json:"move,omitempty"`
	Target   string   `json:"target,omitempty"`
	Stat     StatName `json:"stat,omitempty"`
	// Amount is the numeric result: damage dealt, hp restored, or the
	// signed percent of a stat change.
	Amount int `json:"amount,omitempty"`
	// RemainingHP is the target's hp after the event, for damage/heal.
	RemainingHP int    `json:"remaining_hp,omitempty"`
	Message     string `json:"message"`
}

// TurnRecord groups the events of one resolved turn.
type TurnRecord struct {
	Turn   int         `json:"turn"`
	Events []TurnEvent `json:"events"`
}

// Battle owns the full state of one match. Exactly one battle row exists
// per match; resolution always runs against a single loaded instance, so
// no state is shared across battles.
type Battle struct {
	gorm.Model
	Name     string `json:"name" gorm:"size:32"`
	Private  bool   `json:"private"`
	JoinCode string `json:"join_code" gorm:"unique"`

	// Seed drives every random roll of the battle. Given the same seed and
	// the same move submissions the outcome log is reproducible.
	Seed int64 `json:"seed"`

	Players []Player `json:"players"`

	TurnCount int    `json:"turn_count"`
	Phase     string `json:"phase"`
	Status    string `json:"status"`

	Winner  string       `json:"winner"`
	Result  BattleResult `json:"result"`
	Message string       `json:"message"`

	LastTurnSummary string       `json:"last_turn_summary"`
	Log             []TurnRecord `json:"log" gorm:"serializer:json"`

	// MoveDeadline is when the current awaiting-moves phase times out.
	MoveDeadline time.Time `json:"move_deadline"`
	// ClaimedBy/ClaimedAt implement the timeout scanner's lease so only one
	// worker resolves a timed-out battle.
	ClaimedBy string    `json:"-"`
	ClaimedAt time.Time `json:"-"`

	StatsCounted bool `json:"-"`
}

// User stores unique player identity and aggregate stats.
type User struct {
	gorm.Model
	PlayerUUID   string `gorm:"index"`
	PlayerName   string
	Email        string `gorm:"uniqueIndex"`
	GamesPlayed  int
	Wins         int
	Resignations int
}

func (User) TableName() string { return "player_profiles" }

// CreatureDefCache stores validated creature definitions keyed by the
// canonical classification label so repeated labels skip the generative
// call entirely.
type CreatureDefCache struct {
	gorm.Model
	LabelKey   string             `json:"label_key" gorm:"uniqueIndex"`
	Definition CreatureDefinition `json:"definition" gorm:"serializer:json"`
}

func (CreatureDefCache) TableName() string { return "creature_def_cache" }
