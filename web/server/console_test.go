package server

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestWebLogger_Basic(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	server := &recordingLogger{}
	logger := NewWebLogger("test-render-123", messageChan, server)

	logger.Printf("Test log message\n")

	require.Len(t, messageChan, 1)
	msg := <-messageChan
	assert.Equal(t, "Test log message", msg.Message)
	assert.Equal(t, "test-render-123", msg.RenderID)
	assert.Equal(t, "info", msg.Level)
	assert.WithinDuration(t, time.Now(), msg.Timestamp, time.Second)

	assert.Equal(t, []string{"[test-render-123] Test log message\n"}, server.lines)
}

func TestWebLogger_MultipleMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-456", messageChan, nil)

	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Printf("%s\n", msg)
	}

	require.Len(t, messageChan, len(messages))
	for _, expected := range messages {
		assert.Equal(t, expected, (<-messageChan).Message)
	}
}

func TestWebLogger_ChannelFullDoesNotBlock(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan, nil)

	logger.Printf("Message 1\n")
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	require.Len(t, messageChan, 1)
	assert.Equal(t, "Message 1", (<-messageChan).Message)
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil, nil)
	assert.NotPanics(t, func() {
		logger.Printf("Test message with nil channel\n")
	})
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-format", messageChan, nil)

	logger.Printf("Loading %s with %d triangles...\n", "dragon.ply", 12345)

	require.Len(t, messageChan, 1)
	assert.Equal(t, "Loading dragon.ply with 12345 triangles...", (<-messageChan).Message)
}

func TestConsoleMessage_JSON(t *testing.T) {
	msg := ConsoleMessage{
		RenderID:  "abc",
		Message:   "Test message",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     "info",
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"renderId":"abc","message":"Test message","timestamp":"2024-01-02T03:04:05Z","level":"info"}`, string(data))
}
