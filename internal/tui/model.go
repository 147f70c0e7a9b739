package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dost-cli/dost/internal/api"
	"github.com/dost-cli/dost/internal/chat"
	"github.com/dost-cli/dost/internal/config"
	"github.com/dost-cli/dost/internal/render"
)

// healthInterval is how often the backend liveness probe runs
const healthInterval = 5 * time.Second

// Message types for the TUI
type (
	responseMsg struct {
		seq  int
		text string
	}
	errMsg struct {
		seq int
		err error
	}
	attachedMsg struct {
		path string
		data string
	}
	attachFailedMsg struct {
		err error
	}
	healthMsg struct {
		status api.Status
	}
	healthTickMsg time.Time
)

// AttachPreparer validates and encodes an image file for sending
type AttachPreparer interface {
	Prepare(path string) (string, error)
}

// Model represents the chat TUI state
type Model struct {
	client   api.ClientInterface
	cfg      config.Config
	preparer AttachPreparer

	// Conversation state
	store   *chat.Store
	tracker *chat.ScrollTracker

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading      bool
	ready        bool
	health       api.Status
	confirmClear bool
	notice       string

	// Pending attachment, staged until the next send
	pendingImagePath string
	pendingImageData string

	// In-flight send bookkeeping. sendSeq identifies the current
	// request so a reply from a cancelled one cannot reach the store.
	sendSeq    int
	cancelSend context.CancelFunc

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(client api.ClientInterface, cfg config.Config, preparer AttachPreparer) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		client:   client,
		cfg:      cfg,
		preparer: preparer,
		store:    chat.NewStore(),
		tracker:  chat.NewScrollTracker(),
		textarea: ta,
		spinner:  s,
		health:   api.StatusConnecting,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.checkHealth(),
		healthTick(),
	)
}

// healthTick schedules the next liveness probe
func healthTick() tea.Cmd {
	return tea.Tick(healthInterval, func(t time.Time) tea.Msg {
		return healthTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.confirmClear {
		return m.updateConfirmClear(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.loading {
				m.abortSend()
				m.notice = "Request cancelled"
			} else {
				return m, tea.Quit
			}

		case "ctrl+g":
			m.viewport.GotoBottom()
			m.tracker.JumpToBottom()

		case "enter":
			if !m.loading && strings.TrimSpace(m.textarea.Value()) != "" {
				return m.handleInput(strings.TrimSpace(m.textarea.Value()))
			}
		}

	case responseMsg:
		if msg.seq != m.sendSeq {
			break
		}
		m.finishSend()
		m.store.Append(chat.NewAssistantMessage(msg.text))
		m.refreshViewport()
		if m.tracker.OnContentGrown() {
			m.viewport.GotoBottom()
		}

	case errMsg:
		if msg.seq != m.sendSeq {
			break
		}
		m.finishSend()
		m.store.Append(chat.NewErrorMessage(msg.err.Error()))
		m.refreshViewport()
		if m.tracker.OnContentGrown() {
			m.viewport.GotoBottom()
		}

	case attachedMsg:
		m.pendingImagePath = msg.path
		m.pendingImageData = msg.data
		m.notice = ""

	case attachFailedMsg:
		// Attachment problems never enter the conversation; they are
		// shown as a transient notice instead.
		m.notice = msg.err.Error()

	case healthMsg:
		m.health = msg.status

	case healthTickMsg:
		cmds = append(cmds, m.checkHealth(), healthTick())

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	// Keep the jump indicator in sync with the scroll position
	m.tracker.OnScroll(m.viewport.YOffset, m.viewport.Height, m.viewport.TotalLineCount())

	return m, tea.Batch(cmds...)
}

// handleInput routes a submitted input line: slash commands first,
// everything else is sent as a chat message.
func (m Model) handleInput(input string) (tea.Model, tea.Cmd) {
	switch {
	case isExitCommand(input):
		return m, tea.Quit

	case input == "/clear":
		m.textarea.Reset()
		m.confirmClear = true
		return m, nil

	case strings.HasPrefix(input, "/attach"):
		m.textarea.Reset()
		path := strings.TrimSpace(strings.TrimPrefix(input, "/attach"))
		if path == "" {
			m.notice = "usage: /attach <image path>"
			return m, nil
		}
		return m, m.prepareAttachment(path)
	}

	return m.sendInput(input)
}

// sendInput appends the user message optimistically and fires the send
func (m Model) sendInput(input string) (tea.Model, tea.Cmd) {
	prior := m.store.Snapshot()

	m.store.Append(chat.NewUserMessage(input, m.pendingImageData))
	m.refreshViewport()
	m.viewport.GotoBottom()
	m.tracker.JumpToBottom()

	m.loading = true
	m.notice = ""
	m.textarea.Reset()

	image := m.pendingImageData
	m.pendingImagePath = ""
	m.pendingImageData = ""

	m.sendSeq++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelSend = cancel

	return m, tea.Batch(
		m.sendMessage(ctx, m.sendSeq, input, image, prior),
		m.spinner.Tick,
	)
}

// abortSend cancels the outstanding request and invalidates its
// sequence number so a late reply is dropped on arrival.
func (m *Model) abortSend() {
	if m.cancelSend != nil {
		m.cancelSend()
		m.cancelSend = nil
	}
	m.sendSeq++
	m.loading = false
}

// finishSend releases the per-send context once a reply has landed
func (m *Model) finishSend() {
	if m.cancelSend != nil {
		m.cancelSend()
		m.cancelSend = nil
	}
	m.loading = false
}

// updateConfirmClear handles input while the clear confirmation is up
func (m Model) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.store.Clear()
		m.tracker.Reset()
		m.confirmClear = false
		m.refreshViewport()
	case "n", "N", "esc":
		m.confirmClear = false
	case "ctrl+c":
		return m, tea.Quit
	}

	return m, nil
}

// sendMessage creates a command that performs the completion exchange
func (m Model) sendMessage(ctx context.Context, seq int, text, image string, prior []chat.Message) tea.Cmd {
	client := m.client
	cfg := m.cfg
	return func() tea.Msg {
		sel := api.ModelSelection{Text: cfg.TextModel, Vision: cfg.VisionModel}
		req, err := api.BuildCompletionRequest(sel, text, image, prior, cfg.HistoryTurns)
		if err != nil {
			return errMsg{seq: seq, err: err}
		}

		out, err := client.Send(ctx, req)
		if err != nil {
			return errMsg{seq: seq, err: err}
		}
		return responseMsg{seq: seq, text: out}
	}
}

// prepareAttachment creates a command that validates and encodes a file
func (m Model) prepareAttachment(path string) tea.Cmd {
	preparer := m.preparer
	return func() tea.Msg {
		data, err := preparer.Prepare(path)
		if err != nil {
			return attachFailedMsg{err: err}
		}
		return attachedMsg{path: path, data: data}
	}
}

// checkHealth creates a command that probes the companion backend
func (m Model) checkHealth() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthInterval)
		defer cancel()
		return healthMsg{status: client.CheckHealth(ctx)}
	}
}

// isExitCommand reports whether the input asks to leave the chat
func isExitCommand(input string) bool {
	switch input {
	case "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}

// refreshViewport rebuilds the viewport content from the store
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderFeed(m.store.Snapshot(), m.viewport.Width, time.Now()))
}

// renderFeed renders the dated conversation feed into a single string
func renderFeed(messages []chat.Message, width int, now time.Time) string {
	items := chat.Project(messages, now)
	bubbleWidth := width - 6
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var content strings.Builder
	for i, item := range items {
		if i > 0 {
			content.WriteString("\n")
		}

		if item.Type == chat.FeedItemSeparator {
			content.WriteString(separatorStyle.Width(width).Render("── " + item.DateLabel + " ──"))
			content.WriteString("\n")
			continue
		}

		msg := item.Message
		switch {
		case msg.IsError():
			label := errorLabelStyle.Render("⚠ Error")
			bubble := errorBubbleStyle.Width(bubbleWidth).Render(msg.ErrorDetail())
			content.WriteString(label + "\n" + bubble)

		case msg.Role == chat.RoleUser:
			label := userLabelStyle.Render("⬤ You") + " " + timestampStyle.Render(msg.DisplayTime)
			body := msg.Text
			if msg.Image != "" {
				chip := attachmentStyle.Render("📎 image attached")
				if body == "" {
					body = chip
				} else {
					body = chip + "\n" + body
				}
			}
			bubble := userBubbleStyle.Width(bubbleWidth).Render(body)
			content.WriteString(label + "\n" + bubble)

		default:
			label := assistantLabelStyle.Render("✦ Dost") + " " + timestampStyle.Render(msg.DisplayTime)
			rendered, err := render.MarkdownWithWidth(msg.Text, bubbleWidth-4)
			if err != nil {
				rendered = msg.Text
			}
			rendered = strings.TrimRight(rendered, "\n")
			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	return content.String()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.confirmClear {
		return m.renderConfirmClear()
	}

	var sections []string
	contentWidth := m.width - 4

	sections = append(sections, m.renderHeader(contentWidth))

	var messagesContent string
	if m.store.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	if m.tracker.ShowJumpButton {
		sections = append(sections, jumpIndicatorStyle.Width(contentWidth).Render("↓ new messages (ctrl+g)"))
	}

	var inputContent string
	if m.loading {
		inputContent = m.spinner.View() + loadingStyle.Render(" Dost is thinking...")
	} else {
		inputLabel := inputLabelStyle.Render("You")
		if m.pendingImagePath != "" {
			inputLabel += " " + attachmentStyle.Render("📎 "+m.pendingImagePath)
		}
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabel,
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	if m.notice != "" {
		sections = append(sections, noticeStyle.Render("  "+m.notice))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title bar with the backend liveness dot
func (m Model) renderHeader(width int) string {
	parts := []string{
		titleStyle.Render("✦ Dost"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.cfg.TextModel),
		hintStyle.Render("  •  "),
		m.renderStatus(),
	}
	if m.loading {
		parts = append(parts,
			hintStyle.Render("  •  "),
			loadingStyle.Render("Thinking"),
		)
	}
	content := lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	return headerStyle.Width(width).Render(content)
}

// renderStatus renders the backend liveness indicator
func (m Model) renderStatus() string {
	switch m.health {
	case api.StatusOnline:
		return statusOnlineStyle.Render("● " + string(api.StatusOnline))
	case api.StatusOffline:
		return statusOfflineStyle.Render("● " + string(api.StatusOffline))
	}
	return statusWaitingStyle.Render("○ " + string(api.StatusConnecting))
}

// renderWelcome renders the empty conversation state
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("Hey, I'm Dost!")
	subtitle := welcomeStyle.Width(width).Render("Your friendly companion. Say hi, or /attach an image.")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderConfirmClear renders the clear-conversation confirmation overlay
func (m Model) renderConfirmClear() string {
	box := confirmBoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		confirmTitleStyle.Render("Clear this conversation?"),
		"",
		confirmChoiceStyle.Render("y: clear everything   n: keep chatting"),
	))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderStatusBar renders the bottom shortcut bar
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"/attach", "Image"},
		{"/clear", "Clear"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// RunChat starts the chat TUI
func RunChat(client api.ClientInterface, cfg config.Config, preparer AttachPreparer) error {
	m := NewChatModel(client, cfg, preparer)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
