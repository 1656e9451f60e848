// Package audit appends mediated steps to a JSONL audit trail. One line per
// event, credentials redacted before serialization.
package audit

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/gzhole/browsershield/internal/redact"
)

// Event is one audited mediation step.
type Event struct {
	Timestamp   string `json:"timestamp"`
	Task        string `json:"task,omitempty"`
	ActionType  string `json:"action_type"`
	Params      string `json:"params"`
	URL         string `json:"url"`
	RiskScore   int    `json:"risk_score"`
	Explanation string `json:"explanation,omitempty"`
	Decision    string `json:"decision"`
	Reason      string `json:"reason"`
	Escaped     bool   `json:"escaped,omitempty"`
}

// Logger writes events to an append-only file.
type Logger struct {
	file *os.File
	mu   sync.Mutex
}

// New opens (creating if needed) the audit file at path.
func New(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &Logger{file: file}, nil
}

// Log appends one event. Params and reasons are redacted: typed text can
// carry passwords on their way into login forms.
func (l *Logger) Log(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	event.Params = redact.Redact(event.Params)
	event.Reason = redact.Redact(event.Reason)
	event.Explanation = redact.Redact(event.Explanation)

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

// Close releases the underlying file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
