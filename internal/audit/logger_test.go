package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	var events []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var event Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		events = append(events, event)
	}
	require.NoError(t, scanner.Err())
	return events
}

func newTestLogger(t *testing.T, maxSize int64) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.log")
	logger, err := NewLogger(Config{FilePath: path, MaxSize: maxSize})
	require.NoError(t, err)
	return logger, path
}

func eventOfType(events []Event, eventType EventType) *Event {
	for i := range events {
		if events[i].Type == eventType {
			return &events[i]
		}
	}
	return nil
}

func TestLoggerLifecycle(t *testing.T) {
	logger, path := newTestLogger(t, 0)
	require.NoError(t, logger.Close())

	events := readEvents(t, path)
	require.NotNil(t, eventOfType(events, EventStartup))
	require.NotNil(t, eventOfType(events, EventShutdown))
	for _, event := range events {
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.Timestamp.IsZero())
	}
}

func TestLogRequest(t *testing.T) {
	logger, path := newTestLogger(t, 0)
	logger.LogRequest("GET", "/item/4321", 200)
	logger.LogRequest("POST", "/item/app/99/", 404)
	require.NoError(t, logger.Close())

	events := readEvents(t, path)
	ok := eventOfType(events, EventRequest)
	require.NotNil(t, ok)
	assert.Equal(t, "GET /item/4321", ok.Action)
	assert.Equal(t, "200", ok.Result)
	assert.Equal(t, SeverityInfo, ok.Severity)

	var failed *Event
	for i := range events {
		if events[i].Result == "404" {
			failed = &events[i]
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, SeverityWarning, failed.Severity)
}

func TestLogItemFetch(t *testing.T) {
	logger, path := newTestLogger(t, 0)
	logger.LogItemFetch(4321)
	require.NoError(t, logger.Close())

	event := eventOfType(readEvents(t, path), EventItemFetch)
	require.NotNil(t, event)
	assert.Equal(t, "fetch", event.Action)
	assert.Equal(t, float64(4321), event.Details["item_id"])
}

func TestLogItemPush(t *testing.T) {
	logger, path := newTestLogger(t, 0)
	logger.LogItemPush("create", 8000)
	require.NoError(t, logger.Close())

	event := eventOfType(readEvents(t, path), EventItemPush)
	require.NotNil(t, event)
	assert.Equal(t, "create", event.Action)
	assert.Equal(t, float64(8000), event.Details["item_id"])
}

func TestLogAuthMasksUsername(t *testing.T) {
	logger, path := newTestLogger(t, 0)
	logger.LogAuth(true, "alice@example.com")
	logger.LogAuth(false, "alice@example.com")
	require.NoError(t, logger.Close())

	events := readEvents(t, path)
	success := eventOfType(events, EventAuth)
	require.NotNil(t, success)
	assert.Equal(t, "a***@example.com", success.Details["username"])

	failed := eventOfType(events, EventAuthFailed)
	require.NotNil(t, failed)
	assert.Equal(t, SeverityWarning, failed.Severity)
}

func TestLogError(t *testing.T) {
	logger, path := newTestLogger(t, 0)
	logger.LogError("rest", errors.New("connection refused"), map[string]interface{}{"path": "/item/1"})
	require.NoError(t, logger.Close())

	event := eventOfType(readEvents(t, path), EventError)
	require.NotNil(t, event)
	assert.Equal(t, "rest", event.Source)
	assert.Equal(t, "connection refused", event.Error)
	assert.Equal(t, "/item/1", event.Details["path"])
}

func TestRotation(t *testing.T) {
	logger, path := newTestLogger(t, 256)
	for i := 0; i < 50; i++ {
		logger.LogRequest("GET", "/item/4321", 200)
	}
	require.NoError(t, logger.Close())

	rotated, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	assert.NotEmpty(t, rotated)
}

func TestMaskUsername(t *testing.T) {
	assert.Equal(t, "a***@example.com", maskUsername("alice@example.com"))
	assert.Equal(t, "***", maskUsername("a@example.com"))
	assert.Equal(t, "***", maskUsername("no-at-sign"))
}
