package eventlog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"changeview/review"
)

// Snapshot is a point-in-time copy of a task's event log. Version moves on
// every append, so it doubles as the review cache fingerprint.
type Snapshot struct {
	TaskID  string
	Version review.Fingerprint
	Events  []review.FileOperationEvent
}

// Subscriber receives a fresh snapshot after every append.
type Subscriber func(Snapshot)

// Log is the append-only in-memory event log for a single task. The agent
// side appends one event per tool invocation; the review side takes
// snapshots, possibly while the task is still running.
type Log struct {
	mu          sync.RWMutex
	taskID      string
	events      []review.FileOperationEvent
	version     uint64
	subscribers []Subscriber
}

// NewLog creates an empty log for the given task. An empty task ID gets a
// generated one.
func NewLog(taskID string) *Log {
	if taskID == "" {
		taskID = uuid.New().String()
	}
	return &Log{taskID: taskID}
}

// TaskID returns the task this log belongs to.
func (l *Log) TaskID() string {
	return l.taskID
}

// Append records one file operation and notifies subscribers. A missing tool
// ID or timestamp is filled in so downstream ordering always has something to
// work with.
func (l *Log) Append(ev review.FileOperationEvent) {
	l.mu.Lock()
	if ev.ToolID == "" {
		ev.ToolID = uuid.New().String()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	l.events = append(l.events, ev)
	l.version++
	snap := l.snapshotLocked()
	subs := make([]Subscriber, len(l.subscribers))
	copy(subs, l.subscribers)
	l.mu.Unlock()

	// Notify outside the lock so a subscriber may take further snapshots.
	for _, sub := range subs {
		sub(snap)
	}
}

// Subscribe registers a callback for future appends.
func (l *Log) Subscribe(sub Subscriber) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, sub)
}

// Snapshot returns a copy of the current log state. The returned event slice
// is owned by the caller.
func (l *Log) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

func (l *Log) snapshotLocked() Snapshot {
	events := make([]review.FileOperationEvent, len(l.events))
	copy(events, l.events)
	return Snapshot{
		TaskID:  l.taskID,
		Version: review.Fingerprint(l.version),
		Events:  events,
	}
}
