package server

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan, nil)

	testMessage := "Test log message"
	logger.Printf("%s\n", testMessage)

	select {
	case msg := <-messageChan:
		expectedMessage := testMessage + "\n"
		if msg.Message != expectedMessage {
			t.Errorf("Expected message '%s', got '%s'", expectedMessage, msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render id 'test-render-123', got '%s'", msg.RenderID)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_Levels(t *testing.T) {
	testCases := []struct {
		message string
		level   string
	}{
		{"Rendering 400x225\n", "info"},
		{"Warning: scene file skipped\n", "warning"},
		{"Error: write failed\n", "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			messageChan := make(chan ConsoleMessage, 1)
			NewWebLogger("levels", messageChan, nil).Printf("%s", tc.message)

			msg := <-messageChan
			if msg.Level != tc.level {
				t.Errorf("Level for %q = %q, want %q", tc.message, msg.Level, tc.level)
			}
		})
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan, nil)

	logger.Printf("Message 1\n")
	// These must not block even though the channel is full
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	msg := <-messageChan
	if msg.Message != "Message 1\n" {
		t.Errorf("Expected first message to be kept, got %q", msg.Message)
	}
	select {
	case extra := <-messageChan:
		t.Errorf("Dropped message should not be delivered, got %q", extra.Message)
	default:
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWebLogger("test-render-nil", nil, core.NewWriterLogger(&buf))

	logger.Printf("Test message with nil channel\n")

	if !strings.Contains(buf.String(), "[test-render-nil] Test message with nil channel") {
		t.Errorf("Server log should carry the message, got %q", buf.String())
	}
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-format", messageChan, nil)

	logger.Printf("Scanlines remaining: %d of %d\n", 12, 225)

	select {
	case msg := <-messageChan:
		expected := "Scanlines remaining: 12 of 225\n"
		if msg.Message != expected {
			t.Errorf("Expected formatted message '%s', got '%s'", expected, msg.Message)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for formatted message")
	}
}
