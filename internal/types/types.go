package types

import "encoding/json"

type ActionKind string

const (
	ActionPlay     ActionKind = "PLAY"
	ActionPass     ActionKind = "PASS"
	ActionExchange ActionKind = "EXCHANGE"
)

// Action is one proposed move for a game/player pair. Kind and Payload must
// both be present before dispatch; RawInput is the text the player typed and
// may be empty.
type Action struct {
	Kind     ActionKind      `json:"kind"`
	Payload  json.RawMessage `json:"payload"`
	RawInput string          `json:"rawInput,omitempty"`
}

type PlayPayload struct {
	Word string `json:"word"`
}

type ExchangePayload struct {
	Letters string `json:"letters"`
}

type RoundInfo struct {
	Number       int    `json:"number"`
	ActivePlayer string `json:"activePlayer"`
}

type LastMove struct {
	PlayerID string     `json:"playerId"`
	Kind     ActionKind `json:"kind"`
	Word     string     `json:"word,omitempty"`
	Points   int        `json:"points,omitempty"`
}

// GameUpdate is the state-for-broadcast snapshot produced by one engine call.
// Racks are never exposed, only their sizes.
type GameUpdate struct {
	Round      *RoundInfo     `json:"round,omitempty"`
	Scores     map[string]int `json:"scores,omitempty"`
	RackCounts map[string]int `json:"rackCounts,omitempty"`
	Streaks    map[string]int `json:"streaks,omitempty"`
	TilesLeft  int            `json:"tilesLeft"`
	LastMove   *LastMove      `json:"lastMove,omitempty"`
	Over       bool           `json:"over,omitempty"`
}

type FeedbackItem struct {
	Message     string `json:"message,omitempty"`
	IsClickable bool   `json:"isClickable,omitempty"`
}

type FeedbackBundle struct {
	LocalPlayer FeedbackItem   `json:"localPlayerFeedback"`
	Opponent    FeedbackItem   `json:"opponentFeedback"`
	EndGame     []FeedbackItem `json:"endGameFeedback,omitempty"`
}

type ActionOutcome struct {
	Update   *GameUpdate     `json:"update,omitempty"`
	Feedback *FeedbackBundle `json:"feedback,omitempty"`
}

// Reserved sender identities. SenderSystem marks informational messages,
// SenderSystemError marks error-origin messages so clients can render them
// differently.
const (
	SenderSystem      = "system"
	SenderSystemError = "system-error"
)

type ChatMessage struct {
	Content     string `json:"content"`
	SenderID    string `json:"senderId"`
	GameID      string `json:"gameId"`
	IsClickable bool   `json:"isClickable,omitempty"`
}

const (
	EventNewMessage = "newMessage"
	EventGameUpdate = "gameUpdate"
)

// ServerEvent is the envelope pushed to connected clients.
type ServerEvent struct {
	Type    string       `json:"type"` // "newMessage" | "gameUpdate"
	Message *ChatMessage `json:"message,omitempty"`
	Update  *GameUpdate  `json:"update,omitempty"`
}
