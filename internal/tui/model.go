// Package tui is the interactive chat surface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docqa/internal/domain"
	"docqa/internal/service"
)

// Asker is the TUI-facing subset of the pipeline service.
type Asker interface {
	Ask(ctx context.Context, sess *service.Session, question string) (string, error)
}

// Model is the Bubble Tea model for the chat application. The conversation
// state lives in an explicit session owned by the model; ctrl+l clears it.
type Model struct {
	service  Asker
	session  *service.Session
	input    textinput.Model
	viewport viewport.Model
	folder   string
	summary  string
	status   string
	ready    bool
}

// New creates a chat model over an indexed folder.
func New(svc Asker, folder, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your documents, enter to send"
	ti.Focus()
	ti.CharLimit = 0
	return Model{
		service:  svc,
		session:  service.NewSession(),
		input:    ti,
		viewport: viewport.New(0, 0),
		folder:   folder,
		summary:  summary,
		status:   "Indexed. Ask away (ctrl+l clears the conversation, esc quits).",
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frame := chatBoxStyle.GetFrameSize()
		_, inputFrame := inputBoxStyle.GetFrameSize()
		reserved := 3 + inputFrame + frame // header + summary + status
		height := msg.Height - reserved
		if height < 3 {
			height = 3
		}
		m.viewport.Width = max(20, msg.Width-chatBoxStyle.GetHorizontalFrameSize())
		m.viewport.Height = height
		m.viewport.SetContent(m.renderConversation())
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlL:
			m.session.Clear()
			m.status = "Conversation cleared."
			m.viewport.SetContent(m.renderConversation())
			return m, nil
		case tea.KeyEnter:
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			// A successful Ask lands in the session; the render below picks
			// it up. A failed one only touches the status line.
			if _, err := m.service.Ask(context.Background(), m.session, question); err != nil {
				m.status = "Error: " + err.Error()
			} else {
				m.status = fmt.Sprintf("%d message(s) in this conversation.", m.session.Turns())
			}
			m.viewport.SetContent(m.renderConversation())
			m.viewport.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("docqa: chat with " + m.folder)
	summary := summaryStyle.Render(m.summary)
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderConversation() string {
	history := m.session.History()
	if len(history) == 0 {
		return "No questions yet."
	}
	var b strings.Builder
	for _, msg := range history {
		if msg.Role == domain.RoleUser {
			b.WriteString(userStyle.Render("You: ") + msg.Content)
		} else {
			b.WriteString(assistantStyle.Render("Assistant: ") + msg.Content)
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
