// Package audit provides the structured event log the SDK and CLI write
// to: authentication attempts, API requests, and item pushes, encoded as
// one JSON object per line with background writing and size-based rotation.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of logged event
type EventType string

const (
	EventAuth       EventType = "AUTH"
	EventAuthFailed EventType = "AUTH_FAILED"
	EventRequest    EventType = "REQUEST"
	EventItemFetch  EventType = "ITEM_FETCH"
	EventItemPush   EventType = "ITEM_PUSH"

	EventStartup  EventType = "STARTUP"
	EventShutdown EventType = "SHUTDOWN"
	EventError    EventType = "ERROR"
)

// Severity represents the severity level of an event
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Event represents a single log entry
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Type      EventType              `json:"type"`
	Severity  Severity               `json:"severity"`
	Source    string                 `json:"source"`
	Action    string                 `json:"action"`
	Result    string                 `json:"result"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger writes events to a file through a background worker.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	filepath  string
	maxSize   int64
	encoder   *json.Encoder
	eventChan chan *Event
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// Config represents logger configuration
type Config struct {
	FilePath string
	MaxSize  int64 // maximum file size in bytes before rotation
}

// NewLogger creates a new event logger
func NewLogger(config Config) (*Logger, error) {
	dir := filepath.Dir(config.FilePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := &Logger{
		file:      file,
		filepath:  config.FilePath,
		maxSize:   config.MaxSize,
		encoder:   json.NewEncoder(file),
		eventChan: make(chan *Event, 100),
		stopChan:  make(chan struct{}),
	}

	logger.wg.Add(1)
	go logger.worker()

	logger.LogSystem(EventStartup, "Event logger started", nil)
	return logger, nil
}

// Log queues an event for writing.
func (l *Logger) Log(event *Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case l.eventChan <- event:
	case <-time.After(time.Second):
		// Timeout rather than block the caller.
		fmt.Fprintf(os.Stderr, "Failed to log event: timeout\n")
	}
}

// LogAuth logs an authentication attempt.
func (l *Logger) LogAuth(success bool, username string) {
	eventType := EventAuth
	result := "SUCCESS"
	severity := SeverityInfo
	if !success {
		eventType = EventAuthFailed
		result = "FAILED"
		severity = SeverityWarning
	}

	l.Log(&Event{
		Type:     eventType,
		Severity: severity,
		Source:   "auth",
		Action:   "authenticate",
		Result:   result,
		Details: map[string]interface{}{
			"username": maskUsername(username),
		},
	})
}

// LogRequest logs one API round trip.
func (l *Logger) LogRequest(method, path string, status int) {
	severity := SeverityInfo
	if status >= 400 {
		severity = SeverityWarning
	}
	l.Log(&Event{
		Type:     EventRequest,
		Severity: severity,
		Source:   "rest",
		Action:   method + " " + path,
		Result:   fmt.Sprintf("%d", status),
	})
}

// LogItemFetch logs a full-record item read.
func (l *Logger) LogItemFetch(itemID int64) {
	l.Log(&Event{
		Type:     EventItemFetch,
		Severity: SeverityInfo,
		Source:   "items",
		Action:   "fetch",
		Result:   "SUCCESS",
		Details: map[string]interface{}{
			"item_id": itemID,
		},
	})
}

// LogItemPush logs a write-back (create or update) of an item.
func (l *Logger) LogItemPush(action string, itemID int64) {
	l.Log(&Event{
		Type:     EventItemPush,
		Severity: SeverityInfo,
		Source:   "items",
		Action:   action,
		Result:   "SUCCESS",
		Details: map[string]interface{}{
			"item_id": itemID,
		},
	})
}

// LogError logs an error event.
func (l *Logger) LogError(source string, err error, details map[string]interface{}) {
	l.Log(&Event{
		Type:     EventError,
		Severity: SeverityError,
		Source:   source,
		Action:   "error",
		Result:   "ERROR",
		Error:    err.Error(),
		Details:  details,
	})
}

// LogSystem logs a lifecycle event.
func (l *Logger) LogSystem(eventType EventType, message string, details map[string]interface{}) {
	l.Log(&Event{
		Type:     eventType,
		Severity: SeverityInfo,
		Source:   "system",
		Action:   string(eventType),
		Result:   message,
		Details:  details,
	})
}

// worker processes events in the background
func (l *Logger) worker() {
	defer l.wg.Done()

	for {
		select {
		case event := <-l.eventChan:
			l.writeEvent(event)

		case <-l.stopChan:
			// Drain remaining events
			for {
				select {
				case event := <-l.eventChan:
					l.writeEvent(event)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) writeEvent(event *Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.encoder.Encode(event); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write event: %v\n", err)
	}

	if l.maxSize > 0 {
		if info, err := l.file.Stat(); err == nil && info.Size() > l.maxSize {
			l.rotate()
		}
	}
}

// rotate renames the current file with a timestamp suffix and reopens.
func (l *Logger) rotate() {
	_ = l.file.Close()

	timestamp := time.Now().Format("20060102-150405")
	_ = os.Rename(l.filepath, fmt.Sprintf("%s.%s", l.filepath, timestamp))

	file, err := os.OpenFile(l.filepath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open new log file: %v\n", err)
		return
	}

	l.file = file
	l.encoder = json.NewEncoder(file)
}

// Close flushes pending events and closes the log.
func (l *Logger) Close() error {
	l.LogSystem(EventShutdown, "Event logger shutting down", nil)

	close(l.stopChan)
	l.wg.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// maskUsername keeps just enough of an address to correlate log lines.
func maskUsername(username string) string {
	at := strings.IndexByte(username, '@')
	if at <= 1 {
		return "***"
	}
	return username[:1] + "***" + username[at:]
}
