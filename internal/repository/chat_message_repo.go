package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"chatbot-backend/internal/models"
)

type ChatMessageRepo struct {
	pool *pgxpool.Pool
}

func NewChatMessageRepo(pool *pgxpool.Pool) *ChatMessageRepo {
	return &ChatMessageRepo{pool: pool}
}

// Append inserts one record; id and created_at come from the database.
func (r *ChatMessageRepo) Append(ctx context.Context, question, answer string) (*models.ChatMessage, error) {
	m := &models.ChatMessage{}
	query := `INSERT INTO chat_messages (question, answer)
		VALUES ($1, $2) RETURNING id, question, answer, created_at`

	err := r.pool.QueryRow(ctx, query, question, answer).Scan(
		&m.ID, &m.Question, &m.Answer, &m.CreatedAt,
	)
	if err != nil {
		return nil, storageErr("append chat message", err)
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}

// ListRecent returns up to limit records, newest first.
func (r *ChatMessageRepo) ListRecent(ctx context.Context, limit int) ([]*models.ChatMessage, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	query := `SELECT id, question, answer, created_at
		FROM chat_messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, storageErr("list recent chat messages", err)
	}
	defer rows.Close()

	messages := []*models.ChatMessage{}
	for rows.Next() {
		m := &models.ChatMessage{}
		if err := rows.Scan(&m.ID, &m.Question, &m.Answer, &m.CreatedAt); err != nil {
			return nil, storageErr("scan chat message", err)
		}
		m.CreatedAt = m.CreatedAt.UTC()
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate chat messages", err)
	}

	return messages, nil
}
