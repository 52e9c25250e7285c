package review

import (
	"encoding/json"
	"time"
)

// Operation identifies how a tool invocation touched a file.
type Operation string

const (
	// OpWrite means the tool declared it created the file or replaced its
	// content wholesale. Whether that was a creation depends on the original
	// content snapshot.
	OpWrite Operation = "write"
	// OpEdit means an in-place modification of existing content.
	OpEdit Operation = "edit"
)

// UnmarshalJSON decodes an operation tag. Unknown tags degrade to edit, the
// conservative verdict: a pre-existing file's history must never hide behind
// a spurious "new" label.
func (op *Operation) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch Operation(raw) {
	case OpWrite, OpEdit:
		*op = Operation(raw)
	default:
		*op = OpEdit
	}
	return nil
}

// FileOperationEvent records one tool invocation that touched a file during a
// task. Content snapshots are pointers because absent and empty are different
// things: a genuine new-file write has an empty original, while an event
// logged without snapshots has none at all.
type FileOperationEvent struct {
	ToolID          string    `json:"tool_id"`
	FilePath        string    `json:"file_path"`
	Operation       Operation `json:"operation"`
	Timestamp       time.Time `json:"timestamp"`
	OriginalContent *string   `json:"original_content,omitempty"`
	NewContent      *string   `json:"new_content,omitempty"`
}
