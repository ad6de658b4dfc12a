// Package tui is the terminal interview client.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
)

// Backend is the HTTP API as seen by the chat window.
type Backend interface {
	Chat(ctx context.Context, message, candidateID string) (*entity.ChatResult, error)
	UploadResume(ctx context.Context, path, candidateID string) (*entity.UploadResponse, error)
}

type speaker int

const (
	speakerCandidate speaker = iota
	speakerInterviewer
	speakerSystem
)

type line struct {
	from speaker
	text string
}

type replyMsg struct {
	result *entity.ChatResult
	err    error
}

type uploadMsg struct {
	resp *entity.UploadResponse
	err  error
}

// Model is the Bubble Tea model of the interview chat.
type Model struct {
	ctx        context.Context
	backend    Backend
	input      textinput.Model
	viewport   viewport.Model
	transcript []line
	candidate  string
	status     string
	waiting    bool
	ready      bool
}

func New(ctx context.Context, backend Backend, candidateID string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Answer the interviewer, /upload <file> or /candidate <id>"
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		ctx:       ctx,
		backend:   backend,
		input:     ti,
		viewport:  viewport.New(0, 0),
		candidate: candidateID,
		status:    "Say hello to start the interview.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptStyle.GetFrameSize()
		_, ih := inputStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header lines, status, input box
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved-th)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.addLine(speakerInterviewer, msg.result.Reply)
		if msg.result.ContextUsed {
			m.status = "Reply grounded in the resume."
		} else {
			m.status = "No resume context found for this reply."
		}
		return m, nil

	case uploadMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Upload failed: " + msg.err.Error()
			return m, nil
		}
		m.candidate = msg.resp.ID
		m.addLine(speakerSystem, msg.resp.Message)
		m.status = fmt.Sprintf("Interviewing %s.", m.candidate)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting {
		return m, nil
	}
	m.input.Reset()

	switch {
	case strings.HasPrefix(text, "/upload "):
		path := strings.TrimSpace(strings.TrimPrefix(text, "/upload "))
		m.waiting = true
		m.status = "Uploading " + path + "..."
		return m, m.uploadCmd(path)

	case strings.HasPrefix(text, "/candidate"):
		m.candidate = strings.TrimSpace(strings.TrimPrefix(text, "/candidate"))
		if m.candidate == "" {
			m.status = "Chatting without a candidate."
		} else {
			m.status = fmt.Sprintf("Interviewing %s.", m.candidate)
		}
		return m, nil

	case text == "/quit":
		return m, tea.Quit
	}

	m.addLine(speakerCandidate, text)
	m.waiting = true
	m.status = "Interviewer is thinking..."
	return m, m.chatCmd(text)
}

func (m Model) chatCmd(text string) tea.Cmd {
	candidate := m.candidate
	return func() tea.Msg {
		result, err := m.backend.Chat(m.ctx, text, candidate)
		return replyMsg{result: result, err: err}
	}
}

func (m Model) uploadCmd(path string) tea.Cmd {
	candidate := m.candidate
	return func() tea.Msg {
		resp, err := m.backend.UploadResume(m.ctx, path, candidate)
		return uploadMsg{resp: resp, err: err}
	}
}

func (m *Model) addLine(from speaker, text string) {
	m.transcript = append(m.transcript, line{from: from, text: text})
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := headerStyle.Render("HireFlow interview")
	candidate := "no candidate"
	if m.candidate != "" {
		candidate = "candidate: " + m.candidate
	}
	sub := mutedStyle.Render(candidate)
	status := statusStyle.Render(m.status)

	return header + "\n" + sub + "\n" +
		transcriptStyle.Render(m.viewport.View()) + "\n" +
		inputStyle.Render(m.input.View()) + "\n" +
		status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return mutedStyle.Render("No messages yet.")
	}

	width := m.viewport.Width
	lines := make([]string, 0, len(m.transcript))
	for _, l := range m.transcript {
		var label string
		switch l.from {
		case speakerCandidate:
			label = candidateStyle.Render("You")
		case speakerInterviewer:
			label = interviewerStyle.Render("Interviewer")
		default:
			label = mutedStyle.Render("System")
		}

		body := l.text
		if width > 0 {
			body = lipgloss.NewStyle().Width(width).Render(body)
		}
		lines = append(lines, label+"\n"+body)
	}
	return strings.Join(lines, "\n\n")
}

var (
	headerStyle      = lipgloss.NewStyle().Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	candidateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	interviewerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	transcriptStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
