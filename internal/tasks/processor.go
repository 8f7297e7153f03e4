package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SessionSweeper and TrustUpdater are the two storage operations the worker
// needs. The Postgres repositories and the in-memory test stores satisfy
// them.
type SessionSweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type TrustUpdater interface {
	UpdateTrustScore(ctx context.Context, id string, score int) error
}

type Processor struct {
	sessions SessionSweeper
	users    TrustUpdater
	logger   zerolog.Logger
}

// TaskPayload is the wire shape of one stream entry. Stream values arrive as
// strings, so Score stays a string until parsed.
type TaskPayload struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Score  string `json:"score"`
}

func NewProcessor(sessions SessionSweeper, users TrustUpdater, logger zerolog.Logger) *Processor {
	return &Processor{
		sessions: sessions,
		users:    users,
		logger:   logger,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	var payload TaskPayload
	if err := decodePayload(msg.Values, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	switch payload.Type {
	case "session_cleanup":
		return p.handleSessionCleanup(ctx)
	case "trust_refresh":
		return p.handleTrustRefresh(ctx, payload)
	default:
		p.logger.Warn().Str("type", payload.Type).Msg("unknown task type")
		return nil
	}
}

func decodePayload(values map[string]interface{}, out *TaskPayload) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (p *Processor) handleSessionCleanup(ctx context.Context) error {
	deleted, err := p.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	p.logger.Info().Int64("deleted", deleted).Msg("expired sessions swept")
	return nil
}

// handleTrustRefresh applies a score reported by the external scoring feed.
// The score is opaque here; we only clamp it to the displayable range.
func (p *Processor) handleTrustRefresh(ctx context.Context, payload TaskPayload) error {
	if payload.UserID == "" {
		return fmt.Errorf("trust refresh without userId")
	}
	score, err := strconv.Atoi(payload.Score)
	if err != nil {
		return fmt.Errorf("parse score %q: %w", payload.Score, err)
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if err := p.users.UpdateTrustScore(ctx, payload.UserID, score); err != nil {
		return fmt.Errorf("update trust score: %w", err)
	}
	p.logger.Info().Str("user_id", payload.UserID).Int("score", score).Msg("trust score refreshed")
	return nil
}
