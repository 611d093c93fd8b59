package dispatch

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/wordgrid/wordgrid-backend/internal/types"
)

// Clients render chat content as markup, so end-game lines join on <br>.
const endGameSeparator = "<br>"

// routeFeedback delivers each bundle component to its audience: the acting
// player, the opponent, and (on game end) the whole session. The three sends
// are independent; any subset may fire.
func (d *Dispatcher) routeFeedback(ctx context.Context, gameID, playerID string, fb types.FeedbackBundle) {
	if fb.LocalPlayer.Message != "" {
		msg := types.ChatMessage{
			Content:     fb.LocalPlayer.Message,
			SenderID:    types.SenderSystem,
			GameID:      gameID,
			IsClickable: fb.LocalPlayer.IsClickable,
		}
		if err := d.notify.SendMessage(ctx, gameID, playerID, msg); err != nil {
			d.log.Warn("local feedback send failed",
				zap.String("game_id", gameID), zap.String("player_id", playerID), zap.Error(err))
		}
	}

	if fb.Opponent.Message != "" {
		opponent, err := d.lookup.Opponent(gameID, playerID)
		if err != nil {
			// Session corruption; fail loudly instead of dereferencing nothing.
			d.log.Error("opponent lookup failed",
				zap.String("game_id", gameID), zap.String("player_id", playerID), zap.Error(err))
		} else {
			msg := types.ChatMessage{
				Content:     fb.Opponent.Message,
				SenderID:    types.SenderSystem,
				GameID:      gameID,
				IsClickable: fb.Opponent.IsClickable,
			}
			if err := d.notify.SendMessage(ctx, gameID, opponent, msg); err != nil {
				d.log.Warn("opponent feedback send failed",
					zap.String("game_id", gameID), zap.String("player_id", opponent), zap.Error(err))
			}
		}
	}

	if len(fb.EndGame) > 0 {
		lines := make([]string, len(fb.EndGame))
		for i, item := range fb.EndGame {
			lines[i] = item.Message // absent messages render as empty text
		}
		msg := types.ChatMessage{
			Content:  strings.Join(lines, endGameSeparator),
			SenderID: types.SenderSystem,
			GameID:   gameID,
		}
		if err := d.notify.BroadcastMessage(ctx, gameID, msg); err != nil {
			d.log.Warn("end game broadcast failed", zap.String("game_id", gameID), zap.Error(err))
		}
	}
}
