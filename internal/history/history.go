package history

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wordgrid/wordgrid-backend/internal/types"
)

// ChatRecord archives one delivered chat message.
type ChatRecord struct {
	ID        uint   `gorm:"primaryKey"`
	GameID    string `gorm:"index"`
	SenderID  string
	Content   string
	Broadcast bool
	CreatedAt time.Time
}

// GameRecord archives the final standing of a finished game.
type GameRecord struct {
	ID         uint   `gorm:"primaryKey"`
	GameID     string `gorm:"uniqueIndex"`
	Scores     string // JSON map playerID -> points
	FinishedAt time.Time
}

// Store is the optional Postgres archive. A nil *Store is valid and records
// nothing, so callers never have to branch on whether persistence is on.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func Open(dsn string, zlog *zap.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ChatRecord{}, &GameRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db, log: zlog}, nil
}

func (s *Store) RecordChat(msg types.ChatMessage, broadcast bool) {
	if s == nil {
		return
	}
	rec := ChatRecord{
		GameID:    msg.GameID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		Broadcast: broadcast,
	}
	if err := s.db.Create(&rec).Error; err != nil {
		s.log.Warn("chat archive failed", zap.String("game_id", msg.GameID), zap.Error(err))
	}
}

func (s *Store) RecordFinish(gameID string, update types.GameUpdate) {
	if s == nil {
		return
	}
	scores, _ := json.Marshal(update.Scores)
	rec := GameRecord{GameID: gameID, Scores: string(scores), FinishedAt: time.Now()}
	if err := s.db.Create(&rec).Error; err != nil {
		s.log.Warn("game archive failed", zap.String("game_id", gameID), zap.Error(err))
	}
}
