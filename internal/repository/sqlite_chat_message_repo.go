package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"chatbot-backend/internal/models"
)

type chatMessageRow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;index:idx_chat_messages_created_at_id,priority:2"`
	Question  string    `gorm:"type:text;not null"`
	Answer    string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_chat_messages_created_at_id,priority:1"`
}

func (chatMessageRow) TableName() string { return "chat_messages" }

func (row *chatMessageRow) toModel() *models.ChatMessage {
	return &models.ChatMessage{
		ID:        row.ID,
		Question:  row.Question,
		Answer:    row.Answer,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

// SQLiteChatMessageRepo is the GORM-backed store used for local runs and
// tests. Timestamps are taken from now(), always in UTC, so the text
// representation SQLite keeps sorts the same way the instants do.
type SQLiteChatMessageRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSQLiteChatMessageRepo(db *gorm.DB) *SQLiteChatMessageRepo {
	return &SQLiteChatMessageRepo{db: db, now: time.Now}
}

// WithClock replaces the timestamp source.
func (r *SQLiteChatMessageRepo) WithClock(now func() time.Time) *SQLiteChatMessageRepo {
	r.now = now
	return r
}

func (r *SQLiteChatMessageRepo) Migrate() error {
	return storageErr("migrate chat_messages", r.db.AutoMigrate(&chatMessageRow{}))
}

func (r *SQLiteChatMessageRepo) Append(ctx context.Context, question, answer string) (*models.ChatMessage, error) {
	row := &chatMessageRow{
		Question:  question,
		Answer:    answer,
		CreatedAt: r.now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, storageErr("append chat message", err)
	}
	return row.toModel(), nil
}

func (r *SQLiteChatMessageRepo) ListRecent(ctx context.Context, limit int) ([]*models.ChatMessage, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	var rows []chatMessageRow
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, storageErr("list recent chat messages", err)
	}

	messages := make([]*models.ChatMessage, 0, len(rows))
	for i := range rows {
		messages = append(messages, rows[i].toModel())
	}
	return messages, nil
}
