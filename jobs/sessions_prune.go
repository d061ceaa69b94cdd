package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPruneBatchSize = 1000

// SessionsPruneJob deletes session audit rows whose expiry has passed.
type SessionsPruneJob struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewSessionsPruneJob constructs the job.
func NewSessionsPruneJob(pool *pgxpool.Pool, logger *slog.Logger) *SessionsPruneJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionsPruneJob{pool: pool, logger: logger}
}

// Handle processes TaskSessionsPrune tasks.
func (j *SessionsPruneJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SessionsPrunePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.BatchSize <= 0 {
		payload.BatchSize = defaultPruneBatchSize
	}

	const query = `
		DELETE FROM sessions
		WHERE id IN (
			SELECT id FROM sessions WHERE expires_at < NOW() LIMIT $1
		)
	`
	tag, err := j.pool.Exec(ctx, query, payload.BatchSize)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		j.logger.Info("pruned expired sessions", slog.Int64("rows", tag.RowsAffected()))
	}
	return nil
}
