package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/layer-3/walletgate/core"
)

// Gate is the part of the gate handle the terminal drives
type Gate interface {
	Select(ctx context.Context, wallet core.WalletType) error
	ForceReauth(ctx context.Context)
	Detect()
	Connection() (core.ConnectionResult, bool)
}

type selectResultMsg struct {
	wallet core.WalletType
	err    error
}

type reauthDoneMsg struct{}

// Model is the bubbletea model of the gate
type Model struct {
	ctx      context.Context
	gate     Gate
	wallets  []core.WalletType
	progress progress.Model
	styles   styles

	screen   core.Screen
	percent  int
	controls map[core.WalletType]core.ControlState
	detected map[core.WalletType]bool
	conn     *core.ConnectionResult
	cursor   int
	lastErr  string
	width    int
}

func NewModel(ctx context.Context, gate Gate, wallets []core.WalletType) Model {
	return Model{
		ctx:      ctx,
		gate:     gate,
		wallets:  wallets,
		progress: progress.New(progress.WithDefaultGradient()),
		styles:   defaultStyles(),
		screen:   core.ScreenInitializing,
		controls: make(map[core.WalletType]core.ControlState),
		detected: make(map[core.WalletType]bool),
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(msg.Width-4, 10)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case screenMsg:
		m.screen = msg.screen
		m.conn = nil
		if msg.screen == core.ScreenAuthenticated {
			if conn, ok := m.gate.Connection(); ok {
				m.conn = &conn
			}
		}
		if msg.screen == core.ScreenLoading {
			m.lastErr = ""
		}

	case progressMsg:
		m.percent = msg.percent

	case controlMsg:
		m.controls[msg.wallet] = msg.state

	case detectedMsg:
		m.detected[msg.wallet] = msg.detected

	case selectResultMsg:
		m.lastErr = ""
		if msg.err != nil {
			m.lastErr = fmt.Sprintf("%s: %v", msg.wallet.DisplayName(), msg.err)
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		gate, ctx := m.gate, m.ctx
		return m, func() tea.Msg {
			gate.ForceReauth(ctx)
			return reauthDoneMsg{}
		}
	case "d":
		m.gate.Detect()
		return m, nil
	}

	if m.screen != core.ScreenAuthenticating || len(m.wallets) == 0 {
		return m, nil
	}

	switch key := msg.String(); key {
	case "left", "h":
		m.cursor = (m.cursor + len(m.wallets) - 1) % len(m.wallets)
	case "right", "l", "tab":
		m.cursor = (m.cursor + 1) % len(m.wallets)
	case "enter", " ":
		return m, m.selectCmd(m.wallets[m.cursor])
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(m.wallets) {
			m.cursor = int(key[0] - '1')
			return m, m.selectCmd(m.wallets[m.cursor])
		}
	}
	return m, nil
}

func (m Model) selectCmd(wallet core.WalletType) tea.Cmd {
	gate, ctx := m.gate, m.ctx
	return func() tea.Msg {
		return selectResultMsg{wallet: wallet, err: gate.Select(ctx, wallet)}
	}
}

func (m Model) View() string {
	var sb strings.Builder

	switch m.screen {
	case core.ScreenLoading:
		sb.WriteString(m.styles.Title.Render("Loading"))
		sb.WriteString("\n")
		sb.WriteString(m.progress.ViewAs(float64(m.percent) / 100))
		sb.WriteString("\n")

	case core.ScreenAuthenticating:
		sb.WriteString(m.styles.Title.Render("Connect a wallet"))
		sb.WriteString("\n")
		cards := make([]string, 0, len(m.wallets))
		for i, wallet := range m.wallets {
			cards = append(cards, m.card(i, wallet))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		sb.WriteString("\n")
		if m.lastErr != "" {
			sb.WriteString(m.styles.Error.Render(m.lastErr))
			sb.WriteString("\n")
		}
		sb.WriteString(m.styles.Muted.Render("[1-3/enter] connect  [←/→] move  [d] detect  [q] quit"))

	case core.ScreenAuthenticated:
		sb.WriteString(m.styles.Title.Render("Connected"))
		sb.WriteString("\n")
		if m.conn != nil {
			fmt.Fprintf(&sb, "%s  %s\n", m.conn.Type.DisplayName(), m.conn.Address)
		}
		sb.WriteString(m.styles.Muted.Render("[r] disconnect  [q] quit"))

	default:
		sb.WriteString(m.styles.Muted.Render("Starting..."))
	}

	return sb.String() + "\n"
}

func (m Model) card(i int, wallet core.WalletType) string {
	state, ok := m.controls[wallet]
	if !ok {
		state = core.IdleControl()
	}

	label := m.styles.Idle
	switch state.Status {
	case core.ControlBusy:
		label = m.styles.Busy
	case core.ControlSuccess:
		label = m.styles.Success
	case core.ControlError:
		label = m.styles.Error
	}

	detection := m.styles.Muted.Render("not detected")
	if m.detected[wallet] {
		detection = m.styles.Success.Render("detected")
	}

	box := m.styles.Card
	if i == m.cursor {
		box = m.styles.Selected
	}
	return box.Render(fmt.Sprintf("%d. %s\n%s\n%s", i+1, wallet.DisplayName(), label.Render(state.Label), detection))
}
