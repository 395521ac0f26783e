package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/jwebster45206/dungeon-engine/internal/journal"
	"github.com/jwebster45206/dungeon-engine/internal/logger"
	"github.com/jwebster45206/dungeon-engine/pkg/game"
	"github.com/muesli/reflow/wordwrap"
)

const (
	PlaceHolderText = "Type a command (try 'help' or 'go north')..."
	hpBarWidth      = 12
	journalTimeout  = 2 * time.Second
)

// turnRecorder receives every completed turn. The Redis journal implements it.
type turnRecorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

type lineRole int

const (
	roleUser lineRole = iota
	roleNarrator
	roleSystem
	roleError
)

type chatLine struct {
	role lineRole
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctrl      *game.Controller
	journal   turnRecorder
	sessionID uuid.UUID
	logger    *slog.Logger

	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int

	history       []chatLine
	lastNarration string
	announced     game.Status
	journalErr    error

	// Quit confirmation state
	showQuitModal bool
}

type journalRecordedMsg struct {
	err error
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // red
			Bold(true)

	victoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	hpHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))  // green
	hpMidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // yellow
	hpLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

const consoleHelp = `
Console commands:
• /help - Show this help
• /copy - Copy the last response to the clipboard
• /quit - Quit the game
• Ctrl+C or Esc - Quit

Movement:
• go <direction>, or just north/south/east/west/up/down (n/s/e/w/u/d)

Type 'help' for the game commands.
`

// NewConsoleUI builds the model. rec may be nil when the journal is disabled.
func NewConsoleUI(ctrl *game.Controller, rec turnRecorder, sessionID uuid.UUID, logger *slog.Logger) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	opening := ctrl.ExecuteCommand("look")
	return ConsoleUI{
		ctrl:          ctrl,
		journal:       rec,
		sessionID:     sessionID,
		logger:        logger,
		textarea:      ta,
		chatViewport:  chatVp,
		metaViewport:  metaVp,
		history:       []chatLine{{role: roleNarrator, text: opening}},
		lastNarration: opening,
		announced:     ctrl.Status(),
	}
}

func writeIntro(worldName string, chatWidth int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render(strings.ToUpper(worldName)) + "\n\n")
	content.WriteString("Welcome to your text-based adventure!\n")
	content.WriteString("Type commands below. /help lists console commands.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")
	return content.String()
}

func writeMetadata(ctrl *game.Controller, sessionID uuid.UUID, journalErr error) string {
	p := ctrl.Player()
	room := p.CurrentRoom()

	var content strings.Builder
	content.WriteString(titleStyle.Render("ADVENTURER") + "\n\n")
	fmt.Fprintf(&content, "%s (Level %d)\n\n", p.Name(), p.Level())

	content.WriteString("Health:\n")
	content.WriteString(hpBar(p.Percent()) + " " + p.HPString() + "\n\n")

	content.WriteString("Experience:\n")
	fmt.Fprintf(&content, "%d/%d\n\n", p.Experience(), p.NextLevelAt())

	content.WriteString("Weapon:\n")
	if w := p.EquippedWeapon(); w != nil {
		fmt.Fprintf(&content, "%s (%d dmg)\n\n", w.Name(), p.CalculateDamage())
	} else {
		fmt.Fprintf(&content, "Fists (%d dmg)\n\n", p.CalculateDamage())
	}

	content.WriteString(titleStyle.Render("LOCATION") + "\n\n")
	content.WriteString(room.Name() + "\n")
	if exits := room.ExitDirections(); len(exits) > 0 {
		content.WriteString("Exits: " + strings.Join(exits, ", ") + "\n")
	}
	if m, ok := room.LivingMonster(); ok {
		content.WriteString("\n" + dangerStyle.Render(m.Name()) + "\n")
		content.WriteString(hpBar(m.Percent()) + " " + m.HPString() + "\n")
		content.WriteString(string(m.Condition()) + "\n")
	}

	content.WriteString("\nStatus: " + string(ctrl.Status()) + "\n")
	content.WriteString("Session: " + sessionID.String()[:8] + "...\n")
	if journalErr != nil {
		content.WriteString(errorStyle.Render("Journal offline") + "\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /copy: Copy\n")

	return content.String()
}

// hpBar renders a fixed width health bar coloured by remaining percentage.
func hpBar(percent int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * hpBarWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", hpBarWidth-filled)

	switch {
	case percent > 50:
		return hpHighStyle.Render(bar)
	case percent > 25:
		return hpMidStyle.Render(bar)
	default:
		return hpLowStyle.Render(bar)
	}
}

// formatNarration wraps a response and highlights room headers, alerts and victories.
func formatNarration(response string, width int) string {
	wrapped := wordwrap.String(response, max(width, 10))
	lines := strings.Split(wrapped, "\n")
	formatted := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			formatted = append(formatted, "")
		case strings.HasPrefix(trimmed, "==="):
			formatted = append(formatted, headerStyle.Render(line))
		case strings.HasPrefix(trimmed, "[Victory!]"), strings.HasPrefix(trimmed, "You reached level"):
			formatted = append(formatted, victoryStyle.Render(line))
		case strings.HasPrefix(trimmed, "[!]"), strings.HasPrefix(trimmed, "[Monster]"), strings.HasPrefix(trimmed, game.MsgGameOver):
			formatted = append(formatted, dangerStyle.Render(line))
		default:
			formatted = append(formatted, narratorStyle.Render(line))
		}
	}
	return strings.Join(formatted, "\n")
}

// writeChatContent rebuilds the chat content for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(writeIntro(m.ctrl.World().Name(), chatWidth))

	for _, l := range m.history {
		switch l.role {
		case roleUser:
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(l.text, max(chatWidth-6, 10)) + "\n\n")
		case roleNarrator:
			content.WriteString(formatNarration(l.text, chatWidth) + "\n\n")
		case roleSystem:
			content.WriteString(titleStyle.Render(l.text) + "\n\n")
		case roleError:
			content.WriteString(errorStyle.Render(l.text) + "\n\n")
		}
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) refreshMetadata() {
	m.metaViewport.SetContent(writeMetadata(m.ctrl, m.sessionID, m.journalErr))
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 5
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

// play runs one line of player input through the game and records the exchange.
func (m *ConsoleUI) play(input string) string {
	var response string
	if dir, ok := game.ParseMove(input); ok {
		response = m.ctrl.MovePlayer(dir)
	} else {
		response = m.ctrl.ExecuteCommand(input)
	}

	m.history = append(m.history,
		chatLine{role: roleUser, text: input},
		chatLine{role: roleNarrator, text: response})
	m.lastNarration = response

	status := m.ctrl.Status()
	if status != m.announced {
		switch status {
		case game.StatusWon:
			m.history = append(m.history, chatLine{role: roleSystem, text: "*** VICTORY! You have conquered " + m.ctrl.World().Name() + "! ***"})
			m.logger.Info("Game won", "level", m.ctrl.Player().Level())
		case game.StatusLost:
			m.history = append(m.history, chatLine{role: roleSystem, text: "*** GAME OVER ***"})
			m.logger.Info("Game lost", "room", m.ctrl.Player().CurrentRoom().Name())
		}
		m.announced = status
	}
	return response
}

func (m ConsoleUI) recordTurn(input, response string) tea.Cmd {
	if m.journal == nil {
		return nil
	}
	p := m.ctrl.Player()
	entry := journal.Entry{
		Input:    input,
		Response: response,
		Room:     p.CurrentRoom().Name(),
		HP:       p.HP(),
		MaxHP:    p.MaxHP(),
		Status:   string(m.ctrl.Status()),
	}
	rec := m.journal
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		return journalRecordedMsg{err: rec.Record(ctx, entry)}
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		// Reformat all content for the new width
		m.writeChatContent()
		m.refreshMetadata()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			response := m.play(input)
			m.writeChatContent()
			m.refreshMetadata()
			return m, m.recordTurn(input, response)
		}

	case journalRecordedMsg:
		if msg.err != nil {
			if m.journalErr == nil {
				logger.WithError(m.logger, msg.err).Warn("Failed to record turn")
			}
			m.journalErr = msg.err
			m.refreshMetadata()
		}
		return m, nil
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		m.history = append(m.history, chatLine{role: roleSystem, text: "Help:" + consoleHelp})

	case "/copy":
		if err := clipboard.WriteAll(m.lastNarration); err != nil {
			m.history = append(m.history, chatLine{role: roleError, text: "Could not copy to clipboard: " + err.Error()})
		} else {
			m.history = append(m.history, chatLine{role: roleSystem, text: "Copied the last response to the clipboard."})
		}

	case "/quit":
		m.showQuitModal = true
		return m, nil

	default:
		m.history = append(m.history, chatLine{role: roleError, text: "Unknown console command: " + cmd})
	}

	m.writeChatContent()
	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to abandon your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
