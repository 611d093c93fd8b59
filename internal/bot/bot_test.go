package bot

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wordgrid/wordgrid-backend/internal/engine"
	"github.com/wordgrid/wordgrid-backend/internal/hub"
	"github.com/wordgrid/wordgrid-backend/internal/session"
	"github.com/wordgrid/wordgrid-backend/internal/types"
)

func TestIsBot(t *testing.T) {
	require.True(t, IsBot("bot:ada"))
	require.False(t, IsBot("alice"))
	require.False(t, IsBot(""))
}

func TestChooseAction(t *testing.T) {
	cases := []struct {
		name string
		rack string
		bag  string
		want types.ActionKind
	}{
		{name: "plays when a word is formable", rack: "dogqrs", bag: "eeee", want: types.ActionPlay},
		{name: "exchanges when stuck with tiles left", rack: "zz", bag: "eeee", want: types.ActionExchange},
		{name: "passes when stuck and bag is short", rack: "zz", bag: "e", want: types.ActionPass},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := engine.State{
				Players: [2]string{"alice", "bot:ada"},
				Racks:   map[string][]rune{"alice": []rune("catxyz"), "bot:ada": []rune(tc.rack)},
				Scores:  map[string]int{"alice": 0, "bot:ada": 0},
				Streaks: map[string]int{"alice": 0, "bot:ada": 0},
				Bag:     []rune(tc.bag),
				Turn:    1,
			}
			act := chooseAction(s, "bot:ada")
			require.Equal(t, tc.want, act.Kind)
			require.NotNil(t, act.Payload)
		})
	}
}

type captureSubmitter struct {
	mu      sync.Mutex
	actions []types.Action
}

func (c *captureSubmitter) Dispatch(ctx context.Context, gameID, playerID string, action types.Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actions = append(c.actions, action)
	return nil
}

func TestTriggerTurn_SubmitsExactlyOneAction(t *testing.T) {
	h := hub.NewHub(context.Background(), zap.NewNop())
	state := engine.State{
		Players: [2]string{"alice", "bot:ada"},
		Racks:   map[string][]rune{"alice": []rune("catxyz"), "bot:ada": []rune("dogqrs")},
		Scores:  map[string]int{"alice": 0, "bot:ada": 0},
		Streaks: map[string]int{"alice": 0, "bot:ada": 0},
		Bag:     []rune("eeeaaii"),
		Turn:    1,
	}
	reply := make(chan *session.Session, 1)
	h.Inbox() <- hub.CreateSession{GameID: "g1", State: state, Reply: reply}
	require.NotNil(t, <-reply)

	sub := &captureSubmitter{}
	p := New(context.Background(), h, zap.NewNop())
	p.SetThinkDelay(0)
	p.SetSubmitter(sub)

	update := types.GameUpdate{Round: &types.RoundInfo{Number: 1, ActivePlayer: "bot:ada"}}
	p.TriggerTurn(update, "g1")

	require.Len(t, sub.actions, 1)
	require.Equal(t, types.ActionPlay, sub.actions[0].Kind)
	var payload types.PlayPayload
	require.NoError(t, json.Unmarshal(sub.actions[0].Payload, &payload))
	require.True(t, engine.Allowed(payload.Word))
}

func TestTriggerTurn_IgnoresHumanTurn(t *testing.T) {
	h := hub.NewHub(context.Background(), zap.NewNop())
	sub := &captureSubmitter{}
	p := New(context.Background(), h, zap.NewNop())
	p.SetThinkDelay(0)
	p.SetSubmitter(sub)

	p.TriggerTurn(types.GameUpdate{Round: &types.RoundInfo{ActivePlayer: "alice"}}, "g1")
	p.TriggerTurn(types.GameUpdate{}, "g1")

	require.Empty(t, sub.actions)
}
