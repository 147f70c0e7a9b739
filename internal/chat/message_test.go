package chat

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("Hello", "")

	if msg.Role != RoleUser {
		t.Errorf("Role = %s, want %s", msg.Role, RoleUser)
	}
	if msg.Text != "Hello" {
		t.Errorf("Text = %q, want Hello", msg.Text)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp is zero")
	}
	if msg.DisplayTime == "" {
		t.Error("DisplayTime is empty")
	}
	if !strings.HasSuffix(msg.ID, "-user") {
		t.Errorf("ID = %q, want -user suffix", msg.ID)
	}
}

func TestNewUserMessage_WithImage(t *testing.T) {
	msg := NewUserMessage("", "aGVsbG8=")

	if msg.Image != "aGVsbG8=" {
		t.Errorf("Image = %q, want aGVsbG8=", msg.Image)
	}
	if !msg.HasContent() {
		t.Error("image-only message should have content")
	}
	if strings.HasPrefix(msg.Image, "data:") {
		t.Error("stored image payload must not carry a data-URI prefix")
	}
}

func TestNewAssistantMessage(t *testing.T) {
	msg := NewAssistantMessage("Hi there!")

	if msg.Role != RoleAssistant {
		t.Errorf("Role = %s, want %s", msg.Role, RoleAssistant)
	}
	if !strings.HasSuffix(msg.ID, "-ai") {
		t.Errorf("ID = %q, want -ai suffix", msg.ID)
	}
	if msg.IsError() {
		t.Error("assistant message must not classify as error")
	}
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage("rate limited")

	if msg.Role != RoleSystem {
		t.Errorf("Role = %s, want %s", msg.Role, RoleSystem)
	}
	if !msg.IsError() {
		t.Error("error message should classify as error")
	}
	if msg.Text != ErrorMarker+"rate limited" {
		t.Errorf("Text = %q, want marker prefix", msg.Text)
	}
	if msg.ErrorDetail() != "rate limited" {
		t.Errorf("ErrorDetail = %q, want rate limited", msg.ErrorDetail())
	}
	if !strings.HasSuffix(msg.ID, "-error") {
		t.Errorf("ID = %q, want -error suffix", msg.ID)
	}
}

func TestNewErrorMessage_TruncatesDetail(t *testing.T) {
	long := strings.Repeat("x", 500)
	msg := NewErrorMessage(long)

	detail := msg.ErrorDetail()
	if len(detail) != maxErrorDetailLen+3 {
		t.Errorf("detail length = %d, want %d", len(detail), maxErrorDetailLen+3)
	}
	if !strings.HasSuffix(detail, "...") {
		t.Error("truncated detail should end with ellipsis")
	}
}

func TestNewErrorMessage_TruncationKeepsValidUTF8(t *testing.T) {
	long := strings.Repeat("é", maxErrorDetailLen+50)
	msg := NewErrorMessage(long)

	detail := msg.ErrorDetail()
	if !utf8.ValidString(detail) {
		t.Error("truncated detail contains invalid UTF-8")
	}
	if got := utf8.RuneCountInString(detail); got != maxErrorDetailLen+3 {
		t.Errorf("rune count = %d, want %d", got, maxErrorDetailLen+3)
	}
}

func TestMessage_IsError_PlainSystem(t *testing.T) {
	msg := newMessage(RoleSystem, "sys", "bootstrap note", "")
	if msg.IsError() {
		t.Error("unmarked system message must not classify as error")
	}
}

func TestMessage_HasContent(t *testing.T) {
	empty := Message{}
	if empty.HasContent() {
		t.Error("empty message should not have content")
	}
}
