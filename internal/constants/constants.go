package constants

// Centralized constants for headers, env keys and the Groq integration.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvGroqAPIKey          = "GROQ_API_KEY"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "CRAYON_CONFIG"
	EnvDBPath              = "CRAYON_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Groq API (OpenAI-compatible) endpoints and model parameters
	GroqBaseURL             = "https://api.groq.com"
	GroqChatCompletionsPath = "/openai/v1/chat/completions"
	GroqChatModel           = "llama-3.3-70b-versatile"
	GroqTemperature         = 0.7
	GroqMaxTokens           = 1024

	// Session / Cookie names
	CookieSessionName = "cm_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RoutePublicBattles      = "/public-battles"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteAuthLogout         = "/auth/logout"
	RoutePlayerStats        = "/player-stats"
	RouteVersion            = "/version"
	RouteBattles            = "/battles"
	RouteBattlesJoin        = "/battles/join"
	RouteBattleByCode       = "/battles/:battleCode"
	RouteBattleStart        = "/battles/:battleCode/start"
	RouteBattleForfeit      = "/battles/:battleCode/forfeit"
	RouteBattleLeave        = "/battles/:battleCode/leave"
	RouteCreateTeam         = "/battles/:battleCode/team"
	RouteBattleMove         = "/battles/:battleCode/move"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidBattleID  = "Invalid battle code"
	ErrBattleNotFound   = "Battle not found"

	ErrFailedFetchBattles     = "Failed to fetch battles"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedEncodeBattle     = "Failed to encode battle"
	ErrFailedFetchStats       = "Failed to fetch stats"

	ErrFailedCreateBattle          = "Failed to create battle"
	ErrBattleNameExceeds           = "Battle name exceeds 32 characters"
	ErrBattleFull                  = "Battle is full"
	ErrNotEnoughPlayers            = "Not enough players to start the battle"
	ErrBothPlayersMustCreateTeams  = "Both players must create teams before starting"
	ErrBattleAlreadyStarted        = "Battle is already starting or started"
	ErrFailedUpdateBattle          = "Failed to update battle"
	ErrFailedForfeitBattle         = "Failed to forfeit battle"
	ErrFailedRemovePlayer          = "Failed to remove player"
	ErrPlayerNotInThisBattle       = "Player not in this battle"
	ErrCannotLeaveAfterStart       = "Cannot leave after the battle has started"
	ErrTeamAlreadyCreated          = "Team already created"
	ErrFailedSaveTeam              = "Failed to save team"
	ErrTooManyDrawings             = "Too many drawings submitted"
	ErrFailedStoreMove             = "Failed to store move"
	ErrBattleNotInProgress         = "Battle is not in progress"
	ErrMovesLockedResolvingTurn    = "Moves are locked; resolving current turn"
	ErrPlayerNotInBattle           = "Player not in battle"
	ErrNoActiveCreature            = "No active creature"
	ErrInvalidMoveIndex            = "Invalid move index"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldBattleID  = "battle_id"
	LogFieldPlayerIdx = "player_index"
	LogFieldLabel     = "label"
	LogFieldKey       = "key"
	LogFieldAddr      = "addr"
	LogFieldTurn      = "turn"
	LogFieldSource    = "source"
	LogFieldSeed      = "seed"
)
