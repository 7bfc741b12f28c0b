package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskRepurchaseScan evaluates which clients are due for a recontact.
	TaskRepurchaseScan = "analytics:repurchase_scan"
	// TaskEffectCleanup prunes old saga effect markers.
	TaskEffectCleanup = "sales:effect_cleanup"
)

// RepurchaseScanPayload parameterises the scan window.
type RepurchaseScanPayload struct {
	WindowDays int `json:"window_days"`
}

// NewRepurchaseScanTask constructs an Asynq task.
func NewRepurchaseScanTask(windowDays int) (*asynq.Task, error) {
	data, err := json.Marshal(RepurchaseScanPayload{WindowDays: windowDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRepurchaseScan, data), nil
}

// EffectCleanupPayload sets the marker retention window.
type EffectCleanupPayload struct {
	RetentionDays int `json:"retention_days"`
}

// NewEffectCleanupTask constructs an Asynq task.
func NewEffectCleanupTask(retentionDays int) (*asynq.Task, error) {
	data, err := json.Marshal(EffectCleanupPayload{RetentionDays: retentionDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEffectCleanup, data), nil
}
