package eventlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"changeview/review"
)

// taskFile is the on-disk shape of a recorded task log.
type taskFile struct {
	TaskID string                      `json:"task_id"`
	Events []review.FileOperationEvent `json:"events"`
}

// Save writes the log to <dir>/<taskID>.json and returns the file path.
func (l *Log) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create task log directory: %w", err)
	}

	snap := l.Snapshot()
	data, err := json.MarshalIndent(taskFile{TaskID: snap.TaskID, Events: snap.Events}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode task log: %w", err)
	}

	path := filepath.Join(dir, snap.TaskID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write task log: %w", err)
	}

	return path, nil
}

// LoadTaskLog reads a recorded task log from disk. The snapshot version is a
// hash of the raw file bytes, so re-reading an unchanged file produces the
// same fingerprint and keeps the review cache warm.
func LoadTaskLog(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read task log: %w", err)
	}

	var file taskFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse task log %s: %w", path, err)
	}

	taskID := file.TaskID
	if taskID == "" {
		taskID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return Snapshot{
		TaskID:  taskID,
		Version: review.FingerprintBytes(data),
		Events:  file.Events,
	}, nil
}
