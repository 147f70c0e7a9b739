package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dost-cli/dost/internal/api"
	"github.com/dost-cli/dost/internal/chat"
	"github.com/dost-cli/dost/internal/config"
)

// fakePreparer stands in for the attachment preparer
type fakePreparer struct {
	data string
	err  error
}

func (f *fakePreparer) Prepare(string) (string, error) {
	return f.data, f.err
}

func newTestModel(client *api.MockClient) Model {
	return NewChatModel(client, config.DefaultConfig(), &fakePreparer{data: "aGVsbG8="})
}

func TestIsExitCommand(t *testing.T) {
	for _, input := range []string{"exit", "quit", "/exit", "/quit"} {
		if !isExitCommand(input) {
			t.Errorf("isExitCommand(%q) = false, want true", input)
		}
	}
	for _, input := range []string{"hello", "/clear", "exit now", ""} {
		if isExitCommand(input) {
			t.Errorf("isExitCommand(%q) = true, want false", input)
		}
	}
}

func TestHandleInput_AppendsUserMessageBeforeSend(t *testing.T) {
	m := newTestModel(&api.MockClient{SendVal: "hi!"})

	updated, cmd := m.handleInput("hello there")
	model := updated.(Model)

	if !model.loading {
		t.Error("model should be loading after a send")
	}
	if cmd == nil {
		t.Fatal("expected a send command")
	}

	msgs := model.store.Snapshot()
	if len(msgs) != 1 {
		t.Fatalf("store has %d messages, want 1 optimistic user entry", len(msgs))
	}
	if msgs[0].Role != chat.RoleUser || msgs[0].Text != "hello there" {
		t.Errorf("unexpected optimistic entry: %+v", msgs[0])
	}
}

func TestUpdate_ResponseAppendsAssistantMessage(t *testing.T) {
	m := newTestModel(&api.MockClient{})
	m.loading = true

	updated, _ := m.Update(responseMsg{text: "here you go"})
	model := updated.(Model)

	if model.loading {
		t.Error("loading should end on response")
	}
	msgs := model.store.Snapshot()
	if len(msgs) != 1 || msgs[0].Role != chat.RoleAssistant {
		t.Fatalf("store = %+v, want one assistant message", msgs)
	}
	if msgs[0].Text != "here you go" {
		t.Errorf("assistant text = %q", msgs[0].Text)
	}
}

func TestUpdate_ErrorBecomesConversationEntry(t *testing.T) {
	m := newTestModel(&api.MockClient{})
	m.loading = true

	updated, _ := m.Update(errMsg{err: errors.New("rate limited")})
	model := updated.(Model)

	msgs := model.store.Snapshot()
	if len(msgs) != 1 {
		t.Fatalf("store has %d messages, want 1", len(msgs))
	}
	if !msgs[0].IsError() {
		t.Error("entry should be an error message")
	}
	if msgs[0].ErrorDetail() != "rate limited" {
		t.Errorf("detail = %q, want rate limited", msgs[0].ErrorDetail())
	}
}

func TestSendMessage_UsesConfiguredModels(t *testing.T) {
	client := &api.MockClient{SendVal: "ok"}
	m := newTestModel(client)
	m.cfg.TextModel = "my-text-model"

	cmd := m.sendMessage(context.Background(), m.sendSeq, "hello", "", nil)
	msg := cmd()

	if _, ok := msg.(responseMsg); !ok {
		t.Fatalf("cmd returned %T, want responseMsg", msg)
	}
	if client.SendCalled != 1 {
		t.Errorf("SendCalled = %d, want 1", client.SendCalled)
	}
	if client.LastRequest.Model != "my-text-model" {
		t.Errorf("Model = %s, want my-text-model", client.LastRequest.Model)
	}
}

func TestSendMessage_SendFailureYieldsErrMsg(t *testing.T) {
	client := &api.MockClient{SendErr: errors.New("boom")}
	m := newTestModel(client)

	msg := m.sendMessage(context.Background(), m.sendSeq, "hello", "", nil)()

	e, ok := msg.(errMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want errMsg", msg)
	}
	if e.err.Error() != "boom" {
		t.Errorf("err = %v", e.err)
	}
}

// runSend executes a dispatched send batch and returns the reply message
func runSend(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()

	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatal("expected a batched send command")
	}
	for _, c := range batch {
		switch msg := c().(type) {
		case responseMsg:
			return msg
		case errMsg:
			return msg
		}
	}
	t.Fatal("batch contained no completion reply")
	return nil
}

func TestEscDuringSendCancelsRequest(t *testing.T) {
	client := &api.MockClient{SendVal: "late reply"}
	m := newTestModel(client)

	updated, cmd := m.handleInput("first message")
	model := updated.(Model)

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = next.(Model)
	if model.loading {
		t.Error("esc should end the loading state")
	}

	// The dispatched command completes after the cancel
	late := runSend(t, cmd)
	if client.LastCtx == nil || client.LastCtx.Err() != context.Canceled {
		t.Error("in-flight request context should be cancelled by esc")
	}

	// The abandoned reply must not enter the conversation
	next, _ = model.Update(late)
	model = next.(Model)
	msgs := model.store.Snapshot()
	if len(msgs) != 1 || msgs[0].Role != chat.RoleUser {
		t.Fatalf("store = %+v, want only the optimistic user entry", msgs)
	}
}

func TestStaleReplyDoesNotEndSecondSend(t *testing.T) {
	client := &api.MockClient{SendVal: "reply"}
	m := newTestModel(client)

	updated, firstCmd := m.handleInput("first")
	model := updated.(Model)

	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = next.(Model)

	model.textarea.SetValue("second")
	next, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = next.(Model)
	if !model.loading {
		t.Fatal("second send should be in flight")
	}

	stale := runSend(t, firstCmd)
	next, _ = model.Update(stale)
	model = next.(Model)

	if !model.loading {
		t.Error("a reply from the cancelled send must not end the active one")
	}
	for _, msg := range model.store.Snapshot() {
		if msg.Role == chat.RoleAssistant {
			t.Error("a reply from the cancelled send must not be appended")
		}
	}
}

func TestAttachFlow(t *testing.T) {
	m := newTestModel(&api.MockClient{})

	updated, cmd := m.handleInput("/attach /tmp/photo.png")
	model := updated.(Model)
	if cmd == nil {
		t.Fatal("expected an attach command")
	}

	msg := cmd()
	attached, ok := msg.(attachedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want attachedMsg", msg)
	}

	next, _ := model.Update(attached)
	model = next.(Model)
	if model.pendingImageData != "aGVsbG8=" {
		t.Errorf("pendingImageData = %q", model.pendingImageData)
	}
	if model.pendingImagePath != "/tmp/photo.png" {
		t.Errorf("pendingImagePath = %q", model.pendingImagePath)
	}
}

func TestAttachFailure_NeverEntersConversation(t *testing.T) {
	m := NewChatModel(&api.MockClient{}, config.DefaultConfig(), &fakePreparer{err: errors.New("file too big")})

	updated, cmd := m.handleInput("/attach /tmp/huge.png")
	model := updated.(Model)

	msg := cmd()
	next, _ := model.Update(msg)
	model = next.(Model)

	if model.notice != "file too big" {
		t.Errorf("notice = %q, want the attachment error", model.notice)
	}
	if model.store.Len() != 0 {
		t.Error("attachment failures must not be appended to the conversation")
	}
}

func TestPendingImageClearedAfterSend(t *testing.T) {
	m := newTestModel(&api.MockClient{SendVal: "nice photo"})
	m.pendingImagePath = "/tmp/photo.png"
	m.pendingImageData = "aGVsbG8="

	updated, _ := m.sendInput("what is this?")
	model := updated.(Model)

	if model.pendingImageData != "" || model.pendingImagePath != "" {
		t.Error("pending attachment must be consumed by the send")
	}
	msgs := model.store.Snapshot()
	if msgs[0].Image != "aGVsbG8=" {
		t.Error("optimistic entry should carry the attached image")
	}
}

func TestClearConfirmFlow(t *testing.T) {
	m := newTestModel(&api.MockClient{})
	m.store.Append(chat.NewUserMessage("hello", ""))
	m.store.Append(chat.NewAssistantMessage("hi"))

	updated, _ := m.handleInput("/clear")
	model := updated.(Model)
	if !model.confirmClear {
		t.Fatal("expected confirmation overlay")
	}

	// Declining keeps the conversation
	next, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	model = next.(Model)
	if model.confirmClear {
		t.Error("overlay should close on decline")
	}
	if model.store.Len() != 2 {
		t.Error("decline must not clear the conversation")
	}

	// Accepting clears it
	model.confirmClear = true
	next, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	model = next.(Model)
	if model.store.Len() != 0 {
		t.Error("accept must clear the conversation")
	}
	if !model.tracker.NearBottom {
		t.Error("scroll state must reset with the conversation")
	}
}

func TestUpdate_HealthMsg(t *testing.T) {
	m := newTestModel(&api.MockClient{})

	updated, _ := m.Update(healthMsg{status: api.StatusOnline})
	model := updated.(Model)
	if model.health != api.StatusOnline {
		t.Errorf("health = %s, want Online", model.health)
	}
}

func TestRenderFeed_SeparatorsAndBubbles(t *testing.T) {
	now := time.Date(2026, time.August, 29, 15, 0, 0, 0, time.UTC)
	messages := []chat.Message{
		{ID: "1-user", Role: chat.RoleUser, Text: "hello", Timestamp: now.Add(-time.Hour), DisplayTime: "14:00"},
		{ID: "2-ai", Role: chat.RoleAssistant, Text: "hi there", Timestamp: now.Add(-30 * time.Minute), DisplayTime: "14:30"},
		{ID: "3-error", Role: chat.RoleSystem, Text: chat.ErrorMarker + "rate limited", Timestamp: now, DisplayTime: "15:00"},
	}

	out := renderFeed(messages, 80, now)

	if !strings.Contains(out, "Today") {
		t.Error("feed should contain a Today separator")
	}
	if !strings.Contains(out, "hello") || !strings.Contains(out, "hi there") {
		t.Error("feed should contain both bubbles")
	}
	if !strings.Contains(out, "rate limited") {
		t.Error("feed should contain the error entry")
	}
}

func TestView_BeforeReady(t *testing.T) {
	m := newTestModel(&api.MockClient{})
	if !strings.Contains(m.View(), "Initializing") {
		t.Error("pre-ready view should show the initializing notice")
	}
}
