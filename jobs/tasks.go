// Package jobs defines the background task types and the Asynq worker that
// runs them.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAnalyticsWarmup pre-populates the analytics cache.
	TaskAnalyticsWarmup = "analytics:warmup"
)

// AnalyticsWarmupPayload configures one warmup run. An empty panel list warms
// every panel.
type AnalyticsWarmupPayload struct {
	Panels []string `json:"panels,omitempty"`
}

// NewAnalyticsWarmupTask constructs an Asynq task.
func NewAnalyticsWarmupTask(payload AnalyticsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalyticsWarmup, data), nil
}
