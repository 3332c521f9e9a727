// Package display is the shelf's terminal front end, built on Bubble Tea.
//
// The bottom of the screen holds a status bar and the prompt; everything
// else the app prints scrolls above them through Program.Println, so
// output from any goroutine lands in one piece.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	slate = lipgloss.Color("#94a3b8")
	zinc  = lipgloss.Color("#a1a1aa")
	dim   = lipgloss.Color("#71717a")

	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#1f2937")).
		Foreground(zinc)

	modeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a")).Bold(true)
	errBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	pendingStyle = lipgloss.NewStyle().Foreground(dim).Italic(true)
	labelStyle   = lipgloss.NewStyle().Foreground(zinc)
	sepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563"))
	promptStyle  = lipgloss.NewStyle().Foreground(slate)

	// BannerStyle colours the startup banner.
	BannerStyle = lipgloss.NewStyle().Foreground(slate)

	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd"))
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#bbf7d0")).Bold(true).Underline(true)
	primaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e4e4e7"))
	secondaryStyle = lipgloss.NewStyle().Foreground(dim)
	heartStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#f472b6"))
	urgentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Bold(true)
	echoStyle      = lipgloss.NewStyle().Foreground(zinc)
)

// Status is what the bar at the bottom shows.
type Status struct {
	Mode      string // "idle", "creating", "editing"
	Filter    string
	Total     int
	Visible   int
	Favorites int
	Pending   int // remote calls in flight
	Err       string
}

// ── UI ───────────────────────────────────────────────────────────

// UI owns the terminal while [UI.Run] is active. Any goroutine may print,
// push a [Status] or read [UI.InputChan] once [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	lines   chan string
	ready   chan struct{}
	quit    chan struct{}
	stopped atomic.Bool
}

// NewUI creates the display. Nothing is drawn until Run.
func NewUI() *UI {
	return &UI{
		lines: make(chan string, 16),
		ready: make(chan struct{}),
		quit:  make(chan struct{}),
	}
}

// live reports whether output should go through the program.
func (u *UI) live() bool {
	return u.program != nil && !u.stopped.Load()
}

// emit writes one rendered line above the prompt, or to stdout when the
// program is not running.
func (u *UI) emit(line string) {
	if u.live() {
		u.program.Println(line)
		return
	}
	fmt.Println(line)
}

// Println prints its operands as one line above the prompt.
func (u *UI) Println(a ...any) {
	u.emit(strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
}

// Printf prints formatted text as one line above the prompt.
func (u *UI) Printf(format string, a ...any) {
	u.emit(fmt.Sprintf(format, a...))
}

// InputChan delivers each line the user submits.
func (u *UI) InputChan() <-chan string { return u.lines }

// SetStatus replaces the bar contents. Dropped when the program is not
// running.
func (u *UI) SetStatus(s Status) {
	if u.live() {
		u.program.Send(statusMsg(s))
	}
}

// ── Print helpers ────────────────────────────────────────────────

func (u *UI) styled(style lipgloss.Style, text string) {
	u.emit(style.Render("  " + text))
}

// PrintChat prints a notice.
func (u *UI) PrintChat(text string) { u.styled(noticeStyle, text) }

// PrintHeader prints a section header.
func (u *UI) PrintHeader(text string) { u.styled(headerStyle, text) }

// PrintLine prints body text.
func (u *UI) PrintLine(text string) { u.styled(primaryStyle, text) }

// PrintHint prints dimmed text.
func (u *UI) PrintHint(text string) { u.styled(secondaryStyle, text) }

// PrintUrgent prints the error slot.
func (u *UI) PrintUrgent(text string) { u.styled(urgentStyle, "! "+text) }

// PrintRecipe prints one list entry. ref is what the user types to
// address it, e.g. "3" or "f1".
func (u *UI) PrintRecipe(ref string, c Card) {
	for _, line := range c.Lines(ref) {
		u.emit(line)
	}
}

// PrintUserInput echoes a submitted line into the scrollback.
func (u *UI) PrintUserInput(prompt, text string) {
	u.emit(promptStyle.Render(prompt) + echoStyle.Render(text))
}

// WaitReady blocks until the program is processing messages.
func (u *UI) WaitReady() { <-u.ready }

// Quit asks the program to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quit }

// Run draws the UI and processes input until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// The prompt stays unstyled text; escape codes in it throw off the
	// textinput width.
	ti.Prompt = promptFor("")
	ti.PromptStyle = promptStyle
	ti.TextStyle = echoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(slate)
	ti.CharLimit = 2000
	ti.Width = 60
	ti.Focus()

	u.program = tea.NewProgram(model{
		input: ti,
		lines: u.lines,
		ready: u.ready,
		echo:  u.PrintUserInput,
	})
	_, err := u.program.Run()
	u.stopped.Store(true)
	close(u.quit)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type statusMsg Status

type model struct {
	input textinput.Model
	lines chan<- string
	ready chan struct{}
	echo  func(prompt, text string)

	status Status
	width  int

	history []string
	cursor  int // index into history while browsing; len(history) when not
}

func (m model) Init() tea.Cmd {
	ready := m.ready
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("ottoshelf"),
		func() tea.Msg {
			close(ready)
			return nil
		},
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyEsc:
			m.input.Reset()
			m.cursor = len(m.history)
			return m, nil
		case tea.KeyUp:
			return m.recall(-1), nil
		case tea.KeyDown:
			return m.recall(+1), nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - len(m.input.Prompt); w > 0 {
			m.input.Width = w
		}
		return m, nil

	case statusMsg:
		m.status = Status(msg)
		m.input.Prompt = promptFor(m.status.Mode)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the current line to the app and records it in history.
func (m model) submit() (tea.Model, tea.Cmd) {
	v := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(v) == "" {
		return m, nil
	}
	if n := len(m.history); n == 0 || m.history[n-1] != v {
		m.history = append(m.history, v)
	}
	m.cursor = len(m.history)
	m.lines <- v

	// Println from inside Update would deadlock; defer it to a Cmd.
	echo, prompt := m.echo, m.input.Prompt
	return m, func() tea.Msg {
		echo(prompt, v)
		return nil
	}
}

// recall moves through earlier input by delta.
func (m model) recall(delta int) model {
	if len(m.history) == 0 {
		return m
	}
	m.cursor += delta
	switch {
	case m.cursor < 0:
		m.cursor = 0
	case m.cursor >= len(m.history):
		m.cursor = len(m.history)
		m.input.SetValue("")
		return m
	}
	m.input.SetValue(m.history[m.cursor])
	m.input.CursorEnd()
	return m
}

func (m model) View() string {
	return renderBar(m.status, m.width) + "\n\n" + m.input.View()
}

// promptFor returns the input prompt for an edit mode.
func promptFor(mode string) string {
	switch mode {
	case "creating":
		return "new> "
	case "editing":
		return "edit> "
	default:
		return "shelf> "
	}
}

func renderBar(s Status, width int) string {
	if width <= 0 {
		width = 80
	}
	mode := s.Mode
	if mode == "" {
		mode = "idle"
	}
	filterText := s.Filter
	if filterText == "" {
		filterText = "All"
	}

	parts := []string{
		modeStyle.Render(mode),
		labelStyle.Render(fmt.Sprintf("%s: %d/%d recipes", filterText, s.Visible, s.Total)),
		labelStyle.Render(fmt.Sprintf("♥ %d", s.Favorites)),
	}
	if s.Pending > 0 {
		parts = append(parts, pendingStyle.Render(fmt.Sprintf("%d pending", s.Pending)))
	}
	if s.Err != "" {
		parts = append(parts, errBarStyle.Render(s.Err))
	}

	return barBg.Width(width).Render(" " + strings.Join(parts, sepStyle.Render(" │ ")) + " ")
}
