// Package chat implements the conversation pipeline: the message
// entity model, the in-memory conversation store, the feed projection
// and the scroll position tracker.
package chat

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies the author of a message
type Role string

// Message roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ErrorMarker prefixes the text of error-carrying system messages so
// the projector and renderer can special-case them without inspecting
// the role alone.
const ErrorMarker = "⚠️ Error: "

// maxErrorDetailLen bounds the error text shown in the feed
const maxErrorDetailLen = 200

// Message is one immutable record in the conversation store.
// Image holds a bare base64 payload; the data-URI prefix is added only
// at the render and transmit boundaries.
type Message struct {
	ID          string
	Role        Role
	Text        string
	Image       string
	Timestamp   time.Time
	DisplayTime string
}

// NewUserMessage creates a user message from the current input. At
// least one of text and imageBase64 should be non-empty; the request
// builder rejects the send otherwise.
func NewUserMessage(text, imageBase64 string) Message {
	return newMessage(RoleUser, "user", text, imageBase64)
}

// NewAssistantMessage creates an assistant message from completion text
func NewAssistantMessage(text string) Message {
	return newMessage(RoleAssistant, "ai", text, "")
}

// NewErrorMessage creates an error-marked system message. The raw
// detail is truncated so a stack trace or JSON dump cannot flood the
// feed.
func NewErrorMessage(rawDetail string) Message {
	detail := rawDetail
	// Truncate on a rune boundary; a byte index could split a
	// multi-byte character and leave invalid UTF-8 in the feed.
	if runes := []rune(detail); len(runes) > maxErrorDetailLen {
		detail = string(runes[:maxErrorDetailLen]) + "..."
	}
	return newMessage(RoleSystem, "error", ErrorMarker+detail, "")
}

func newMessage(role Role, discriminator, text, image string) Message {
	now := time.Now()
	return Message{
		ID:          fmt.Sprintf("%d-%s", now.UnixMilli(), discriminator),
		Role:        role,
		Text:        text,
		Image:       image,
		Timestamp:   now,
		DisplayTime: now.Format("15:04"),
	}
}

// IsError reports whether the message is an error-carrying system turn
func (m Message) IsError() bool {
	return m.Role == RoleSystem && strings.HasPrefix(m.Text, ErrorMarker)
}

// ErrorDetail returns the error text without the marker prefix
func (m Message) ErrorDetail() string {
	return strings.TrimPrefix(m.Text, ErrorMarker)
}

// HasContent reports whether the message carries text or an image
func (m Message) HasContent() bool {
	return m.Text != "" || m.Image != ""
}
