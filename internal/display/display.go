// Package display provides the operator console using Bubble Tea.
//
// The [UI] type manages a persistent inventory status bar and an input
// prompt at the bottom of the terminal. All application output is
// printed above the rendered area via Program.Println,
// ensuring concurrent writes never garble the display.
package display

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/coffeemaker/internal/domain"
)

var _ domain.Notifier = (*UI)(nil)

const prompt = "brew> "

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	levelOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	levelLowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// BannerStyle is muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking).  Other goroutines may
// safely call [UI.Println] and the Print helpers, and read from
// [UI.InputChan] at any time after [UI.WaitReady] returns.
type UI struct {
	program   atomic.Pointer[tea.Program]
	inputCh   chan string
	readyCh   chan struct{}
	threshold int
	done      atomic.Bool
}

// NewUI creates the display. Ingredients at or below threshold are
// highlighted in the status bar and named in the window title.
func NewUI(threshold int) *UI {
	return &UI{
		threshold: threshold,
		inputCh:   make(chan string, 16),
		readyCh:   make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe. If the program
// hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if p := u.program.Load(); p != nil && !u.done.Load() {
		p.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// InputChan returns completed operator-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintChat prints a conversational line.
func (u *UI) PrintChat(text string) {
	u.Println(chatStyle.Render("  " + text))
}

// PrintHeader prints a section header such as "Menu:".
func (u *UI) PrintHeader(text string) {
	u.Println(headerStyle.Render("  " + text))
}

// PrintLine prints primary body text.
func (u *UI) PrintLine(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// Notify reports a completed purchase.
func (u *UI) Notify(ctx context.Context, message string) error {
	u.PrintChat(message)
	return nil
}

// NotifyUrgent reports a refund or a stock alert.
func (u *UI) NotifyUrgent(ctx context.Context, message string) error {
	u.PrintUrgent(message)
	return nil
}

// PrintUserInput echoes the operator's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("brew") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if p := u.program.Load(); p != nil {
		p.Quit()
	}
}

// Run starts the Bubble Tea event loop over stock. Blocks until quit.
func (u *UI) Run(stock domain.InventoryReader) error {
	p := tea.NewProgram(u.newModel(stock))
	// Stored before the loop starts, so it is visible once ready closes.
	u.program.Store(p)
	_, err := p.Run()
	u.done.Store(true)
	return err
}

func (u *UI) newModel(stock domain.InventoryReader) model {
	ti := textinput.New()
	// Plain-text prompt: styled prompts break textinput's width math.
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60 // updated on first WindowSizeMsg

	return model{
		stock:     stock,
		levels:    stock.Levels(),
		threshold: u.threshold,
		input:     ti,
		inputCh:   u.inputCh,
		readyCh:   u.readyCh,
		echoFn: func(v string) {
			u.PrintUserInput(v)
		},
	}
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	stock     domain.InventoryReader
	levels    domain.Quantities
	threshold int
	input     textinput.Model
	inputCh   chan<- string
	readyCh   chan struct{}
	echoFn    func(string) // prints operator input into scrollback
	width     int
}

type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Echo from a Cmd so Update never blocks on Println.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil

	case tickMsg:
		m.levels = m.stock.Levels()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(TitleFor(m.levels, m.threshold)))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(RenderBar(m.levels, m.width, m.threshold))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	return b.String()
}

// LowStock returns the ingredients at or below threshold.
func LowStock(levels domain.Quantities, threshold int) []domain.Ingredient {
	var low []domain.Ingredient
	for _, ing := range domain.Ingredients {
		if levels[ing] <= threshold {
			low = append(low, ing)
		}
	}
	return low
}

// TitleFor builds the terminal window title for the given stock.
func TitleFor(levels domain.Quantities, threshold int) string {
	low := LowStock(levels, threshold)
	if len(low) == 0 {
		return "CoffeeMaker"
	}
	names := make([]string, len(low))
	for i, ing := range low {
		names[i] = ing.String()
	}
	return "CoffeeMaker - low: " + strings.Join(names, ", ")
}

// RenderBar draws the inventory status bar at the given width.
func RenderBar(levels domain.Quantities, width, threshold int) string {
	parts := make([]string, 0, domain.NumIngredients)
	for _, ing := range domain.Ingredients {
		style := levelOKStyle
		if levels[ing] <= threshold {
			style = levelLowStyle
		}
		parts = append(parts, labelStyle.Render(ing.String()+": ")+style.Render(fmt.Sprint(levels[ing])))
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "

	if width <= 0 {
		width = 80
	}
	return barBg.Width(width).Render(content)
}
