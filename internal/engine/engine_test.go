package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wordgrid/wordgrid-backend/internal/types"
)

func testState() State {
	return State{
		Players: [2]string{"alice", "bob"},
		Racks:   map[string][]rune{"alice": []rune("catxyz"), "bob": []rune("dogqrs")},
		Scores:  map[string]int{"alice": 0, "bob": 0},
		Streaks: map[string]int{"alice": 0, "bob": 0},
		Bag:     []rune("eeeaaii"),
	}
}

func play(word string) types.Action {
	payload, _ := json.Marshal(types.PlayPayload{Word: word})
	return types.Action{Kind: types.ActionPlay, Payload: payload, RawInput: word}
}

func exchange(letters string) types.Action {
	payload, _ := json.Marshal(types.ExchangePayload{Letters: letters})
	return types.Action{Kind: types.ActionExchange, Payload: payload}
}

func pass() types.Action {
	return types.Action{Kind: types.ActionPass, Payload: json.RawMessage(`{}`)}
}

func TestApply_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		setup    func(State) State
		playerID string
		action   types.Action
		wantErr  error
	}{
		{
			name:     "unknown player",
			setup:    func(s State) State { return s },
			playerID: "mallory",
			action:   play("cat"),
			wantErr:  ErrUnknownPlayer,
		},
		{
			name:     "out of turn",
			setup:    func(s State) State { return s },
			playerID: "bob",
			action:   play("dog"),
			wantErr:  ErrWrongTurn,
		},
		{
			name:     "game already over",
			setup:    func(s State) State { s.Over = true; return s },
			playerID: "alice",
			action:   play("cat"),
			wantErr:  ErrGameAlreadyOver,
		},
		{
			name:     "word not in dictionary",
			setup:    func(s State) State { return s },
			playerID: "alice",
			action:   play("xyz"),
			wantErr:  ErrWordNotAllowed,
		},
		{
			name:     "tiles not held",
			setup:    func(s State) State { return s },
			playerID: "alice",
			action:   play("dog"),
			wantErr:  ErrTilesNotHeld,
		},
		{
			name:     "exchange with empty bag",
			setup:    func(s State) State { s.Bag = []rune("e"); return s },
			playerID: "alice",
			action:   exchange("ca"),
			wantErr:  ErrNotEnoughTiles,
		},
		{
			name:     "unsupported kind",
			setup:    func(s State) State { return s },
			playerID: "alice",
			action:   types.Action{Kind: "DANCE", Payload: json.RawMessage(`{}`)},
			wantErr:  ErrUnsupportedAction,
		},
		{
			name:     "malformed payload",
			setup:    func(s State) State { return s },
			playerID: "alice",
			action:   types.Action{Kind: types.ActionPlay, Payload: json.RawMessage(`"oops`)},
			wantErr:  ErrBadPayload,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.setup(testState())
			_, _, err := Apply(s, tc.playerID, tc.action)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestApply_WordRejectionNamesTheWord(t *testing.T) {
	s := testState()
	_, _, err := Apply(s, "alice", play("xyz"))
	require.ErrorIs(t, err, ErrWordNotAllowed)
	require.Contains(t, err.Error(), `"xyz"`)
}

func TestApply_PlayScoresAndAdvances(t *testing.T) {
	s := testState()
	next, outcome, err := Apply(s, "alice", play("cat"))
	require.NoError(t, err)

	require.Equal(t, 5, next.Scores["alice"]) // c=3 a=1 t=1
	require.Equal(t, 1, next.Streaks["alice"])
	require.Equal(t, "bob", next.ActivePlayer())
	require.Len(t, next.Racks["alice"], 7) // refilled from the bag
	require.Len(t, next.Bag, 3)

	require.NotNil(t, outcome.Update)
	require.Equal(t, "bob", outcome.Update.Round.ActivePlayer)
	require.Equal(t, 1, outcome.Update.Round.Number)
	require.Equal(t, 5, outcome.Update.LastMove.Points)

	require.NotNil(t, outcome.Feedback)
	require.Contains(t, outcome.Feedback.LocalPlayer.Message, `"cat"`)
	require.True(t, outcome.Feedback.LocalPlayer.IsClickable)
	require.Contains(t, outcome.Feedback.Opponent.Message, "opponent")
	require.Empty(t, outcome.Feedback.EndGame)

	// Input state untouched.
	require.Zero(t, s.Scores["alice"])
	require.Len(t, s.Racks["alice"], 6)
}

func TestApply_StreakBonus(t *testing.T) {
	s := testState()
	s.Streaks["alice"] = 2
	next, _, err := Apply(s, "alice", play("cat"))
	require.NoError(t, err)
	require.Equal(t, 5+2*streakBonus, next.Scores["alice"])
	require.Equal(t, 3, next.Streaks["alice"])
}

func TestApply_PassResetsStreakAndCanEndGame(t *testing.T) {
	s := testState()
	s.Streaks["alice"] = 2
	s.Scoreless = scorelessLimit - 1
	s.Scores["alice"] = 10
	s.Scores["bob"] = 5

	next, outcome, err := Apply(s, "alice", pass())
	require.NoError(t, err)
	require.True(t, next.Over)
	require.Zero(t, next.Streaks["alice"])
	require.Empty(t, next.ActivePlayer())

	require.NotNil(t, outcome.Feedback)
	require.Len(t, outcome.Feedback.EndGame, 3)
	require.Equal(t, "alice wins", outcome.Feedback.EndGame[0].Message)
	require.True(t, outcome.Update.Over)
}

func TestApply_ExchangeSwapsTiles(t *testing.T) {
	s := testState()
	next, outcome, err := Apply(s, "alice", exchange("ca"))
	require.NoError(t, err)

	require.Len(t, next.Racks["alice"], 6) // same size as before
	require.Len(t, next.Bag, len(s.Bag))   // returned tiles go back
	require.Equal(t, 1, next.Scoreless)
	require.Equal(t, "bob", next.ActivePlayer())
	require.Contains(t, outcome.Feedback.LocalPlayer.Message, "2 tiles")
}

func TestApply_EmptyRackAndBagEndsGame(t *testing.T) {
	s := testState()
	s.Racks["alice"] = []rune("at")
	s.Bag = nil
	s.Scores["alice"] = 1
	s.Scores["bob"] = 40

	next, outcome, err := Apply(s, "alice", play("at"))
	require.NoError(t, err)
	require.True(t, next.Over)
	require.Equal(t, "bob wins", outcome.Feedback.EndGame[0].Message)
	require.Empty(t, outcome.Update.Round.ActivePlayer)
}

func TestResetObjectives_ClearsStreakOnly(t *testing.T) {
	s := testState()
	s.Streaks["alice"] = 3
	s.Streaks["bob"] = 1
	s.Scores["alice"] = 12

	next, update, err := ResetObjectives(s, "alice")
	require.NoError(t, err)
	require.Zero(t, next.Streaks["alice"])
	require.Equal(t, 1, next.Streaks["bob"])
	require.Equal(t, 12, next.Scores["alice"])
	require.Zero(t, update.Streaks["alice"])
	require.Nil(t, update.LastMove)

	_, _, err = ResetObjectives(s, "mallory")
	require.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestNewState_DealsSevenEach(t *testing.T) {
	s := NewState("alice", "bob", 42)
	require.Len(t, s.Racks["alice"], RackSize)
	require.Len(t, s.Racks["bob"], RackSize)
	require.Len(t, s.Bag, 98-2*RackSize)
	require.Equal(t, "alice", s.ActivePlayer())
}
