package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/wordgrid/wordgrid-backend/internal/types"
)

var ErrUnknownPlayer = errors.New("player not in this game")
var ErrWrongTurn = errors.New("not your turn")
var ErrGameAlreadyOver = errors.New("game already over")
var ErrWordNotAllowed = errors.New("not in the dictionary")
var ErrTilesNotHeld = errors.New("tiles not in rack")
var ErrNotEnoughTiles = errors.New("not enough tiles in the bag to exchange")
var ErrBadPayload = errors.New("malformed action payload")
var ErrUnsupportedAction = errors.New("unsupported action kind")

const (
	RackSize = 7
	// Four consecutive scoreless turns (PASS or EXCHANGE) end the game.
	scorelessLimit = 4
	// Bonus per prior word in the player's current streak. This is the
	// per-turn objective that ResetObjectives reverts.
	streakBonus = 2
)

type State struct {
	Players   [2]string
	Racks     map[string][]rune
	Scores    map[string]int
	Streaks   map[string]int
	Bag       []rune
	Turn      int // index into Players of the participant to move
	Round     int // moves applied so far
	Scoreless int // consecutive scoreless turns
	Over      bool
}

// NewState deals a fresh game for two players. The seed fixes the bag order.
func NewState(playerA, playerB string, seed int64) State {
	r := rand.New(rand.NewSource(seed))
	s := State{
		Players: [2]string{playerA, playerB},
		Racks:   map[string][]rune{playerA: {}, playerB: {}},
		Scores:  map[string]int{playerA: 0, playerB: 0},
		Streaks: map[string]int{playerA: 0, playerB: 0},
		Bag:     newBag(r),
	}
	s.Racks[playerA], s.Bag = draw(s.Bag, RackSize)
	s.Racks[playerB], s.Bag = draw(s.Bag, RackSize)
	return s
}

func (s State) ActivePlayer() string {
	if s.Over {
		return ""
	}
	return s.Players[s.Turn]
}

func (s State) hasPlayer(playerID string) bool {
	return s.Players[0] == playerID || s.Players[1] == playerID
}

// Apply evaluates one action against the state and returns the new state plus
// the outcome to broadcast/route. The input state is not mutated on error.
func Apply(s State, playerID string, act types.Action) (State, types.ActionOutcome, error) {
	if !s.hasPlayer(playerID) {
		return s, types.ActionOutcome{}, ErrUnknownPlayer
	}
	if s.Over {
		return s, types.ActionOutcome{}, ErrGameAlreadyOver
	}
	if s.ActivePlayer() != playerID {
		return s, types.ActionOutcome{}, ErrWrongTurn
	}

	switch act.Kind {
	case types.ActionPlay:
		return applyPlay(s, playerID, act)
	case types.ActionPass:
		return applyPass(s, playerID)
	case types.ActionExchange:
		return applyExchange(s, playerID, act)
	default:
		return s, types.ActionOutcome{}, ErrUnsupportedAction
	}
}

func applyPlay(s State, playerID string, act types.Action) (State, types.ActionOutcome, error) {
	var p types.PlayPayload
	if err := json.Unmarshal(act.Payload, &p); err != nil {
		return s, types.ActionOutcome{}, ErrBadPayload
	}
	word := strings.ToLower(strings.TrimSpace(p.Word))
	if word == "" {
		return s, types.ActionOutcome{}, ErrBadPayload
	}
	if !canForm(s.Racks[playerID], word) {
		return s, types.ActionOutcome{}, ErrTilesNotHeld
	}
	if !Allowed(word) {
		return s, types.ActionOutcome{}, fmt.Errorf("%q is %w", word, ErrWordNotAllowed)
	}

	next := clone(s)
	points := WordScore(word) + streakBonus*next.Streaks[playerID]
	next.Scores[playerID] += points
	next.Streaks[playerID]++
	next.Scoreless = 0

	rack := removeLetters(next.Racks[playerID], word)
	var drawn []rune
	drawn, next.Bag = draw(next.Bag, RackSize-len(rack))
	next.Racks[playerID] = append(rack, drawn...)

	if len(next.Racks[playerID]) == 0 && len(next.Bag) == 0 {
		next.Over = true
	}
	next.advance()

	last := &types.LastMove{PlayerID: playerID, Kind: types.ActionPlay, Word: word, Points: points}
	fb := &types.FeedbackBundle{
		LocalPlayer: types.FeedbackItem{
			Message:     fmt.Sprintf("You played %q for %d points.", word, points),
			IsClickable: true,
		},
		Opponent: types.FeedbackItem{
			Message:     fmt.Sprintf("Your opponent played %q for %d points.", word, points),
			IsClickable: true,
		},
	}
	if next.Over {
		fb.EndGame = endGameFeedback(next)
	}
	update := snapshot(next, last)
	return next, types.ActionOutcome{Update: &update, Feedback: fb}, nil
}

func applyPass(s State, playerID string) (State, types.ActionOutcome, error) {
	next := clone(s)
	next.Streaks[playerID] = 0
	next.Scoreless++
	if next.Scoreless >= scorelessLimit {
		next.Over = true
	}
	next.advance()

	last := &types.LastMove{PlayerID: playerID, Kind: types.ActionPass}
	fb := &types.FeedbackBundle{
		LocalPlayer: types.FeedbackItem{Message: "You passed."},
		Opponent:    types.FeedbackItem{Message: "Your opponent passed."},
	}
	if next.Over {
		fb.EndGame = endGameFeedback(next)
	}
	update := snapshot(next, last)
	return next, types.ActionOutcome{Update: &update, Feedback: fb}, nil
}

func applyExchange(s State, playerID string, act types.Action) (State, types.ActionOutcome, error) {
	var p types.ExchangePayload
	if err := json.Unmarshal(act.Payload, &p); err != nil {
		return s, types.ActionOutcome{}, ErrBadPayload
	}
	letters := strings.ToLower(strings.TrimSpace(p.Letters))
	if letters == "" {
		return s, types.ActionOutcome{}, ErrBadPayload
	}
	if !canForm(s.Racks[playerID], letters) {
		return s, types.ActionOutcome{}, ErrTilesNotHeld
	}
	if len(s.Bag) < len(letters) {
		return s, types.ActionOutcome{}, ErrNotEnoughTiles
	}

	next := clone(s)
	rack := removeLetters(next.Racks[playerID], letters)
	var drawn []rune
	drawn, next.Bag = draw(next.Bag, len(letters))
	next.Racks[playerID] = append(rack, drawn...)
	// Returned tiles go back after the draw so they cannot be redrawn at once.
	next.Bag = append(next.Bag, []rune(letters)...)

	next.Streaks[playerID] = 0
	next.Scoreless++
	if next.Scoreless >= scorelessLimit {
		next.Over = true
	}
	next.advance()

	last := &types.LastMove{PlayerID: playerID, Kind: types.ActionExchange}
	fb := &types.FeedbackBundle{
		LocalPlayer: types.FeedbackItem{Message: fmt.Sprintf("You exchanged %d tiles.", len(letters))},
		Opponent:    types.FeedbackItem{Message: fmt.Sprintf("Your opponent exchanged %d tiles.", len(letters))},
	}
	if next.Over {
		fb.EndGame = endGameFeedback(next)
	}
	update := snapshot(next, last)
	return next, types.ActionOutcome{Update: &update, Feedback: fb}, nil
}

// ResetObjectives reverts the player's per-turn progress (the word streak)
// and returns the snapshot to broadcast.
func ResetObjectives(s State, playerID string) (State, types.GameUpdate, error) {
	if !s.hasPlayer(playerID) {
		return s, types.GameUpdate{}, ErrUnknownPlayer
	}
	next := clone(s)
	next.Streaks[playerID] = 0
	return next, snapshot(next, nil), nil
}

func (s *State) advance() {
	s.Round++
	s.Turn = 1 - s.Turn
}

func snapshot(s State, last *types.LastMove) types.GameUpdate {
	u := types.GameUpdate{
		Round:      &types.RoundInfo{Number: s.Round, ActivePlayer: s.ActivePlayer()},
		Scores:     make(map[string]int, 2),
		RackCounts: make(map[string]int, 2),
		Streaks:    make(map[string]int, 2),
		TilesLeft:  len(s.Bag),
		LastMove:   last,
		Over:       s.Over,
	}
	for _, p := range s.Players {
		u.Scores[p] = s.Scores[p]
		u.RackCounts[p] = len(s.Racks[p])
		u.Streaks[p] = s.Streaks[p]
	}
	return u
}

func endGameFeedback(s State) []types.FeedbackItem {
	a, b := s.Players[0], s.Players[1]
	var head string
	switch {
	case s.Scores[a] > s.Scores[b]:
		head = fmt.Sprintf("%s wins", a)
	case s.Scores[b] > s.Scores[a]:
		head = fmt.Sprintf("%s wins", b)
	default:
		head = "The game is a draw"
	}
	return []types.FeedbackItem{
		{Message: head},
		{Message: fmt.Sprintf("%s: %d points", a, s.Scores[a])},
		{Message: fmt.Sprintf("%s: %d points", b, s.Scores[b])},
	}
}

func clone(s State) State {
	next := s
	next.Racks = make(map[string][]rune, len(s.Racks))
	for p, r := range s.Racks {
		next.Racks[p] = append([]rune(nil), r...)
	}
	next.Scores = make(map[string]int, len(s.Scores))
	for p, v := range s.Scores {
		next.Scores[p] = v
	}
	next.Streaks = make(map[string]int, len(s.Streaks))
	for p, v := range s.Streaks {
		next.Streaks[p] = v
	}
	next.Bag = append([]rune(nil), s.Bag...)
	return next
}

func removeLetters(rack []rune, letters string) []rune {
	out := append([]rune(nil), rack...)
	for _, r := range letters {
		for i, held := range out {
			if held == r {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
	}
	return out
}

func draw(bag []rune, n int) ([]rune, []rune) {
	if n > len(bag) {
		n = len(bag)
	}
	drawn := append([]rune(nil), bag[:n]...)
	return drawn, bag[n:]
}
