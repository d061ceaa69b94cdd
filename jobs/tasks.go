package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionsPrune removes expired session audit rows.
	TaskSessionsPrune = "sessions:prune"
)

// SessionsPrunePayload bounds how many rows a single run may delete.
type SessionsPrunePayload struct {
	BatchSize int `json:"batch_size"`
}

// NewSessionsPruneTask constructs an Asynq task.
func NewSessionsPruneTask(batchSize int) (*asynq.Task, error) {
	data, err := json.Marshal(SessionsPrunePayload{BatchSize: batchSize})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionsPrune, data), nil
}
