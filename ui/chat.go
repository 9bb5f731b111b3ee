// Package ui implements dukaan's terminal chat interface on Bubble Tea.
// It is a thin consumer of the assistant package: it holds the message
// list, calls the orchestrator, and renders replies and artifacts.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dukaan/assistant"
	"dukaan/config"
	"dukaan/model"
	"dukaan/storage"
	"dukaan/tools"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

type assistantReplyMsg struct {
	userText string
	resp     *assistant.Response
}

// dashboardMsg carries the rendered business summary back from the
// command that fetched it off the update loop.
type dashboardMsg struct {
	text string
}

// ChatView is the root Bubble Tea model for the chat screen.
type ChatView struct {
	orchestrator *assistant.Orchestrator
	sessions     *storage.SessionStorage
	profiles     *config.ProfileStore
	provider     model.Provider
	cacheDir     string

	session *storage.Session
	history []model.Message

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	transcript []string
	palette    []SlashCommand
	thinking   bool
	lastReply  string
	statusNote string
	width      int
	height     int
	ready      bool
}

// NewChatView builds the chat screen, resuming the last session when one
// exists.
func NewChatView(orchestrator *assistant.Orchestrator, sessions *storage.SessionStorage, profiles *config.ProfileStore, provider model.Provider, cacheDir string) *ChatView {
	ta := textarea.New()
	ta.Placeholder = "Ask about your shop, or type / for commands"
	ta.Focus()
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	c := &ChatView{
		orchestrator: orchestrator,
		sessions:     sessions,
		profiles:     profiles,
		provider:     provider,
		cacheDir:     cacheDir,
		textarea:     ta,
		spinner:      sp,
	}

	c.resumeLastSession()
	return c
}

func (c *ChatView) resumeLastSession() {
	if c.sessions == nil {
		c.session = &storage.Session{Name: "New conversation"}
		return
	}

	id, err := c.sessions.LoadCurrentSessionID()
	if err == nil {
		if session, err := c.sessions.Load(id); err == nil {
			c.session = session
			c.history = fromStoredMessages(session.Messages)
			for _, msg := range c.history {
				c.appendTranscript(msg)
			}
			return
		}
	}

	c.session = &storage.Session{Name: "New conversation"}
}

// Init implements tea.Model.
func (c *ChatView) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (c *ChatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		if !c.ready {
			c.viewport = viewport.New(msg.Width, msg.Height-6)
			c.ready = true
		} else {
			c.viewport.Width = msg.Width
			c.viewport.Height = msg.Height - 6
		}
		c.textarea.SetWidth(msg.Width - 2)
		c.refreshViewport()
		return c, nil

	case tea.KeyMsg:
		return c.handleKey(msg)

	case assistantReplyMsg:
		return c.handleReply(msg)

	case dashboardMsg:
		c.addSystemText(msg.text)
		c.refreshViewport()
		return c, nil

	case spinner.TickMsg:
		if !c.thinking {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		c.refreshViewport()
		return c, cmd
	}

	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	c.updatePalette()
	return c, cmd
}

func (c *ChatView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		c.saveSession()
		return c, tea.Quit

	case tea.KeyTab:
		if len(c.palette) > 0 {
			c.textarea.SetValue(c.palette[0].Name + " ")
			c.palette = nil
			return c, nil
		}

	case tea.KeyEnter:
		text := strings.TrimSpace(c.textarea.Value())
		if text == "" || c.thinking {
			return c, nil
		}
		c.textarea.Reset()
		c.palette = nil

		if strings.HasPrefix(text, "/") {
			return c.runCommand(text)
		}
		return c.send(text)
	}

	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	c.updatePalette()
	return c, cmd
}

func (c *ChatView) updatePalette() {
	value := c.textarea.Value()
	if strings.HasPrefix(value, "/") && !strings.Contains(value, " ") {
		c.palette = FilterCommands(value)
	} else {
		c.palette = nil
	}
}

func (c *ChatView) send(text string) (tea.Model, tea.Cmd) {
	userMsg := model.Message{Role: "user", Content: text, Timestamp: time.Now()}
	c.appendTranscript(userMsg)
	c.thinking = true
	c.refreshViewport()

	history := append([]model.Message{}, c.history...)
	orch := c.orchestrator

	sendCmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		return assistantReplyMsg{userText: text, resp: orch.SendMessage(ctx, text, history)}
	}

	return c, tea.Batch(sendCmd, c.spinner.Tick)
}

func (c *ChatView) handleReply(msg assistantReplyMsg) (tea.Model, tea.Cmd) {
	c.thinking = false

	userMsg := model.Message{Role: "user", Content: msg.userText, Timestamp: time.Now()}
	reply := model.Message{Role: "assistant", Content: msg.resp.Content, Timestamp: time.Now()}
	reply.Rendered = RenderMarkdown(reply.Content, c.width)

	// Tool-phase messages sit between the user message and the reply so a
	// resumed session replays a well-formed transcript to the model.
	c.history = append(c.history, userMsg)
	c.history = append(c.history, msg.resp.Transcript...)
	c.history = append(c.history, reply)
	c.lastReply = reply.Content
	c.appendTranscript(reply)

	for _, line := range SaveArtifacts(c.cacheDir, msg.resp.Artifacts) {
		c.transcript = append(c.transcript, line, "")
	}

	c.saveSession()
	c.refreshViewport()
	return c, nil
}

func (c *ChatView) runCommand(text string) (tea.Model, tea.Cmd) {
	cmd := strings.Fields(text)[0]

	switch cmd {
	case "/help":
		var b strings.Builder
		for _, sc := range slashCommands {
			fmt.Fprintf(&b, "%s  %s\n", HighlightStyle.Render(sc.Name), sc.Description)
		}
		c.addSystemText(b.String())

	case "/clear":
		c.history = nil
		c.transcript = nil
		c.session = &storage.Session{Name: "New conversation"}

	case "/copy":
		if c.lastReply == "" {
			c.addSystemText("Nothing to copy yet.")
			break
		}
		if err := clipboard.WriteAll(c.lastReply); err != nil {
			c.addSystemText("Copy failed: " + err.Error())
			break
		}
		c.statusNote = "copied"

	case "/settings":
		p := c.profiles.Get()
		c.addSystemText(fmt.Sprintf(
			"Name: %s\nShop: %s\nUPI id: %s\nEmail: %s\nLanguage: %s\nShow cost price: %v",
			p.Name, p.ShopName, p.UPIID, p.Email, p.Language, p.ShowCP))

	case "/dashboard":
		orch := c.orchestrator
		c.refreshViewport()
		return c, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return dashboardMsg{text: formatBusinessSummary(orch.BusinessSummary(ctx))}
		}

	case "/sessions":
		c.addSystemText(c.renderSessionList())

	case "/search":
		query := strings.TrimSpace(strings.TrimPrefix(text, "/search"))
		if query == "" {
			c.addSystemText("Usage: /search <text>")
			break
		}
		c.addSystemText(c.renderSearchResults(query))

	case "/new":
		c.saveSession()
		c.history = nil
		c.transcript = nil
		c.session = &storage.Session{Name: "New conversation"}

	case "/quit":
		c.saveSession()
		return c, tea.Quit

	default:
		c.addSystemText("Unknown command: " + cmd + " (try /help)")
	}

	c.refreshViewport()
	return c, nil
}

// formatBusinessSummary renders a get_app_state result as dashboard lines.
func formatBusinessSummary(result tools.Result) string {
	if result.Failed() {
		return result.Message
	}

	fields := result.Fields()
	if fields == nil {
		return "No business data available."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Products: %v (inventory value %v)\n", fields["product_count"], fields["inventory_value"])
	fmt.Fprintf(&b, "Invoices: %v (%v paid, revenue %v)\n", fields["invoice_count"], fields["paid_invoice_count"], fields["total_revenue"])
	if stale, ok := fields["stale"].(bool); ok && stale {
		fmt.Fprintf(&b, "Offline - showing cached data from %v\n", fields["fetched_at"])
	}
	return b.String()
}

func (c *ChatView) renderSearchResults(query string) string {
	if c.sessions == nil {
		return "Session storage is unavailable."
	}

	matches, err := storage.NewSearchIndex(c.sessions).SearchAllSessions(query)
	if err != nil {
		return "Search failed: " + err.Error()
	}
	if len(matches) == 0 {
		return "No matches for " + query + "."
	}

	var b strings.Builder
	for i, m := range matches {
		if i >= 10 {
			fmt.Fprintf(&b, "...and %d more\n", len(matches)-i)
			break
		}
		fmt.Fprintf(&b, "%s: %s\n", m.SessionName, m.Preview)
	}
	return b.String()
}

func (c *ChatView) renderSessionList() string {
	if c.sessions == nil {
		return "Session storage is unavailable."
	}
	list, err := c.sessions.List()
	if err != nil {
		return "Could not list sessions: " + err.Error()
	}
	if len(list) == 0 {
		return "No saved conversations."
	}

	var b strings.Builder
	for _, s := range list {
		fmt.Fprintf(&b, "%s  (%d messages, %s)\n",
			s.Name, s.MessageCount, s.UpdatedAt.Format("Jan 2 15:04"))
	}
	return b.String()
}

func (c *ChatView) addSystemText(text string) {
	c.transcript = append(c.transcript, DimStyle.Render(text), "")
}

func (c *ChatView) appendTranscript(msg model.Message) {
	switch msg.Role {
	case "user":
		c.transcript = append(c.transcript, UserStyle.Render("You: ")+msg.Content, "")
	case "assistant":
		body := msg.Rendered
		if body == "" {
			body = msg.Content
		}
		// Tool-call carrier messages have no content to show.
		if body == "" {
			return
		}
		c.transcript = append(c.transcript, AssistantStyle.Render(body), "")
	}
}

func (c *ChatView) refreshViewport() {
	if !c.ready {
		return
	}

	lines := append([]string{}, c.transcript...)
	if c.thinking {
		lines = append(lines, DimStyle.Render(c.spinner.View()+" thinking..."))
	}
	c.viewport.SetContent(strings.Join(lines, "\n"))
	c.viewport.GotoBottom()
}

func (c *ChatView) saveSession() {
	if c.sessions == nil || len(c.history) == 0 {
		return
	}

	c.session.Messages = toStoredMessages(c.history)
	if c.session.Name == "New conversation" {
		c.session.Name = sessionName(c.history)
	}
	c.session.Provider = "dukaan"
	c.session.Model = c.provider.GetModel()

	if err := c.sessions.Save(c.session); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[ui] session save failed: %v", err)
		}
		return
	}
	c.sessions.SaveCurrentSessionID(c.session.ID)
}

// sessionName derives a session title from the first user message.
func sessionName(history []model.Message) string {
	for _, msg := range history {
		if msg.Role == "user" && msg.Content != "" {
			return runewidth.Truncate(msg.Content, 40, "...")
		}
	}
	return "New conversation"
}

// View implements tea.Model.
func (c *ChatView) View() string {
	if !c.ready {
		return "Loading..."
	}

	var b strings.Builder

	title := TitleStyle.Render("Dukaan Assistant")
	if shop := c.profiles.Get().ShopName; shop != "" {
		title += DimStyle.Render("  " + runewidth.Truncate(shop, 30, "..."))
	}
	b.WriteString(title + "\n")

	b.WriteString(c.viewport.View() + "\n")

	if len(c.palette) > 0 {
		for i, sc := range c.palette {
			if i >= 5 {
				break
			}
			style := DimStyle
			if i == 0 {
				style = SelectedStyle
			}
			b.WriteString(style.Render(fmt.Sprintf("  %-12s %s", sc.Name, sc.Description)) + "\n")
		}
	}

	b.WriteString(c.textarea.View() + "\n")

	status := StatusStyle.Render(c.provider.GetDisplayName())
	if c.statusNote != "" {
		status += "  " + HighlightStyle.Render(c.statusNote)
		c.statusNote = ""
	}
	b.WriteString(status + "  " + FormatFooter("Enter", "Send", "Tab", "Complete", "Esc", "Quit"))

	return b.String()
}

func toStoredMessages(history []model.Message) []storage.Message {
	result := make([]storage.Message, len(history))
	for i, msg := range history {
		stored := storage.Message{
			Role:       msg.Role,
			Content:    msg.Content,
			Rendered:   msg.Rendered,
			ToolCallID: msg.ToolCallID,
			ToolName:   msg.ToolName,
			Timestamp:  msg.Timestamp,
		}
		for _, call := range msg.ToolCalls {
			stored.ToolCalls = append(stored.ToolCalls, storage.ToolCallRecord{
				ID:        call.ID,
				Name:      call.Name,
				Arguments: call.Arguments,
			})
		}
		result[i] = stored
	}
	return result
}

func fromStoredMessages(stored []storage.Message) []model.Message {
	result := make([]model.Message, len(stored))
	for i, msg := range stored {
		restored := model.Message{
			Role:       msg.Role,
			Content:    msg.Content,
			Rendered:   msg.Rendered,
			ToolCallID: msg.ToolCallID,
			ToolName:   msg.ToolName,
			Timestamp:  msg.Timestamp,
		}
		for _, call := range msg.ToolCalls {
			restored.ToolCalls = append(restored.ToolCalls, model.ToolCall{
				ID:        call.ID,
				Name:      call.Name,
				Arguments: call.Arguments,
			})
		}
		result[i] = restored
	}
	return result
}
