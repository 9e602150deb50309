package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/calc/calc"
	"github.com/ardnew/calc/log"
)

// editVarsMsg is sent when variable editing completes successfully.
type editVarsMsg struct{ vars map[string]float64 }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a parse
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-parse error.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help       Print this help
  vars       List variables and their values
  funcs      List functions
  rpn EXPR   Show the postfix form of EXPR
  edit       Edit variables in external $EDITOR
  reset      Remove all variables
  clear      Clear screen
  quit       Exit REPL

Usage:
  Type an expression to evaluate it; "name = expr" assigns a variable
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Use Alt+Up/Alt+Down to switch to command mode and navigate command history
    (restores original mode when reaching end of history)
  Type exit, or press Ctrl+C on empty line or Ctrl+D, to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatCommand formats the command echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// formatCtrlCommand formats the control command echo line with prompt and input
// styled.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// Options configures every REPL front end.
type Options struct {
	// History records submitted lines. Nil keeps no history.
	History *History
	// Precision is the number of significant digits printed, or -1 for the
	// shortest exact representation.
	Precision int
	// Logger traces REPL activity.
	Logger log.Logger
}

func (o Options) history() *History {
	if o.History == nil {
		return NewHistory("")
	}

	return o.History
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc          func() context.Context
	input            textinput.Model
	ev               *calc.Evaluator
	logger           log.Logger
	history          *History
	precision        int
	historyIdx       int
	matches          fuzzy.Matches // current fuzzy match results
	candidates       []string      // backing candidate list
	wordStart        int           // byte offset of current word start
	wordEnd          int           // byte offset of current word end
	suggIdx          int           // selected candidate index
	tabActive        bool          // whether user is tab-cycling
	preTabText       string        // input text before tab-cycling began
	preTabCursor     int           // cursor position before tab-cycling began
	altNavActive     bool          // whether user is in Alt+Up/Down navigation
	altNavOrigMode   inputMode     // original mode before Alt navigation
	altNavOrigText   string        // original text before Alt navigation
	altNavOrigCursor int           // original cursor position before Alt navigation
	width            int           // terminal width for ellipsization
	quitting         bool
	mode             inputMode
	evalText         string
	evalCursor       int
	ctrlText         string
	ctrlCursor       int
}

// Run starts the full-screen REPL on ev.
func Run(ctx context.Context, ev *calc.Evaluator, opts Options) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m := newModel(ctx, ev, opts)

	opts.Logger.TraceContext(ctx, "repl start",
		slog.String("frontend", "tui"),
		slog.Int("history", m.history.Len()),
	)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, ev *calc.Evaluator, opts Options) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	history := opts.history()

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		ev:         ev,
		logger:     opts.Logger,
		history:    history,
		precision:  opts.Precision,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editVarsMsg:
		m.ev.Replace(msg.vars)
		m.logger.TraceContext(m.ctxFunc(), "repl edit complete",
			slog.Int("vars", len(msg.vars)),
		)

		return m, tea.Println(resultStyle.Render("✔ variables updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hintLine())
	b.WriteString("\n")

	return b.String()
}

// hintLine returns the line shown below the input: the history position,
// a usage hint, a function signature, or the completion bar.
func (m model) hintLine() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeEval {
			return hintStyle.Render("Type an expression or press Esc for commands")
		}

		return hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)")
	}

	if len(m.matches) > 0 {
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
	}

	if m.mode == modeEval {
		if call := detectFunctionCall(input, m.input.Position()); call.inCall {
			return renderSignatureHint(call.name)
		}
	}

	return ""
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.altNavActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			m.altNavActive = false

			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		m.altNavActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		if msg.Alt {
			return m.historyCtrl(-1)
		}

		return m.historyStep(-1)

	case tea.KeyDown:
		if msg.Alt {
			return m.historyCtrl(1)
		}

		return m.historyStep(1)

	case tea.KeyShiftUp:
		return m.historyInMode(-1)

	case tea.KeyShiftDown:
		return m.historyInMode(1)

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		m.altNavActive = false

		return m.toggleMode()

	case tea.KeyRunes, tea.KeySpace:
		// Space breaks out of tab-cycling, keeping the candidate.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.altNavActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping at either end. A single
// candidate is completed immediately.
func (m model) cycle(step int) (model, tea.Cmd) {
	n := len(m.matches)
	if n == 0 {
		return m, nil
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also auto-confirms the completion when exactly
// one candidate remains and the typed word already equals that candidate.
// autoConfirm should be false for deletions and cursor navigation so that
// the user can freely edit without unexpected completions.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.evalText = ""
	m.evalCursor = 0
	m.ctrlText = ""
	m.ctrlCursor = 0
	m.input.SetValue("")
	m.matches = nil

	_, _ = m.history.WriteWithMode(input, m.mode)
	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("input", input))

		return m.executeCommand(input)
	}

	if input == "exit" || input == "quit" {
		m.quitting = true

		return m, tea.Sequence(tea.Println(formatCommand(input)), tea.Quit)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval", slog.String("input", input))

	echoCmd := tea.Println(formatCommand(input))

	res, err := m.ev.Eval(m.ctxFunc(), input)
	if err != nil {
		return m, tea.Sequence(
			echoCmd,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	return m, tea.Sequence(
		echoCmd,
		tea.Println(resultStyle.Render(formatResult(res, m.precision))),
	)
}

// formatResult renders a successful evaluation, noting any assignment.
func formatResult(res calc.Result, precision int) string {
	v := calc.FormatValue(res.Value, precision)
	if res.Assigned != "" {
		return res.Assigned + " = " + v
	}

	return v
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	echoCmd := tea.Println(formatCtrlCommand(input))

	m.logger.TraceContext(m.ctxFunc(), "repl exec command",
		slog.String("command", cmd),
		slog.String("arg", arg),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "v", "vars":
		return m, tea.Sequence(echoCmd, tea.Println(listVars(m.ev, m.precision)))

	case "f", "funcs":
		return m, tea.Sequence(echoCmd, tea.Println(listFuncs()))

	case "rpn":
		out, err := rpn(arg)
		if err != nil {
			return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return m, tea.Sequence(echoCmd, tea.Println(resultStyle.Render(out)))

	case "r", "reset":
		m.ev.Replace(nil)

		return m, tea.Sequence(echoCmd, tea.Println(hintStyle.Render("variables cleared")))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echoCmd, m.editVars())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

// editVars suspends the program to edit the variables in $EDITOR.
func (m model) editVars() tea.Cmd {
	cmd := &editVarsCommand{
		vars:    m.ev.Vars(),
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.newVars == nil:
			return editCancelledMsg{}
		}

		return editVarsMsg{vars: cmd.newVars}
	})
}

// listVars renders each variable and its value, one per line.
func listVars(ev *calc.Evaluator, precision int) string {
	vars := ev.Vars()
	if len(vars) == 0 {
		return hintStyle.Render("  (no variables)")
	}

	var b strings.Builder

	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&b, "  %s = %s\n", name,
			resultStyle.Render(calc.FormatValue(vars[name], precision)))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// listFuncs renders each function signature and description, one per line.
func listFuncs() string {
	var b strings.Builder

	for _, name := range calc.Funcs() {
		sig, doc, _ := signature(name)
		fmt.Fprintf(&b, "  %-8s %s\n", sig, hintStyle.Render(doc))
	}

	for _, name := range calc.Constants() {
		v, _ := calc.Constant(name)
		fmt.Fprintf(&b, "  %-8s %s\n", name, hintStyle.Render(calc.FormatValue(v, -1)))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// rpn returns the postfix form of expr.
func rpn(expr string) (string, error) {
	if expr == "" {
		return "", errors.New("usage: rpn EXPR")
	}

	prog, err := calc.Compile(expr)
	if err != nil {
		return "", err
	}

	return prog.String(), nil
}

// historyLoad shows entry i in the input, switching mode if switchMode is
// set.
func (m model) historyLoad(i int, entry HistoryEntry, switchMode bool) model {
	if switchMode && m.mode != entry.Mode {
		m, _ = m.switchToMode(entry.Mode)
	}

	m.historyIdx = i
	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	refreshMatches(&m, false)

	return m
}

// historySeek returns the index of the next entry from the current position
// in direction step that satisfies want.
func (m model) historySeek(step int, want func(HistoryEntry) bool) (int, HistoryEntry, bool) {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		if entry, err := m.history.GetEntry(i); err == nil && want(entry) {
			return i, entry, true
		}
	}

	return 0, HistoryEntry{}, false
}

// historyReset leaves history navigation with an empty input.
func (m model) historyReset() model {
	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	refreshMatches(&m, false)

	return m
}

// historyStep moves through all history, switching mode to match each entry.
func (m model) historyStep(step int) (model, tea.Cmd) {
	if i, entry, ok := m.historySeek(step, func(HistoryEntry) bool { return true }); ok {
		return m.historyLoad(i, entry, true), nil
	}

	if step > 0 {
		return m.historyReset(), nil
	}

	return m, nil
}

// historyInMode moves through entries of the current mode only.
func (m model) historyInMode(step int) (model, tea.Cmd) {
	mode := m.mode

	if i, entry, ok := m.historySeek(step, func(e HistoryEntry) bool { return e.Mode == mode }); ok {
		return m.historyLoad(i, entry, false), nil
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		return m.historyReset(), nil
	}

	return m, nil
}

// historyCtrl moves through command history, switching to command mode and
// restoring the original mode and input at either end.
func (m model) historyCtrl(step int) (model, tea.Cmd) {
	if !m.altNavActive {
		m.altNavActive = true
		m.altNavOrigMode = m.mode
		m.altNavOrigText = m.input.Value()
		m.altNavOrigCursor = m.input.Position()

		if m.mode != modeCtrl {
			m, _ = m.switchToMode(modeCtrl)
		}
	}

	if i, entry, ok := m.historySeek(step, func(e HistoryEntry) bool { return e.Mode == modeCtrl }); ok {
		return m.historyLoad(i, entry, false), nil
	}

	m.altNavActive = false
	if m.altNavOrigMode != m.mode {
		m, _ = m.switchToMode(m.altNavOrigMode)
	}

	m.input.SetValue(m.altNavOrigText)
	m.input.SetCursor(m.altNavOrigCursor)
	m.historyIdx = m.history.Len()
	refreshMatches(&m, false)

	return m, nil
}

// toggleMode switches between eval and control modes, preserving input state.
func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeEval)
}

// switchToMode switches to the specified mode, preserving input state.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	if m.mode == modeEval {
		m.evalText = m.input.Value()
		m.evalCursor = m.input.Position()
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m, nil
}
