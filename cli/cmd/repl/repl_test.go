package repl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/calc/calc"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	return newModel(t.Context(), calc.New(), Options{Precision: -1})
}

func press(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	mm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T, want model", next)
	}

	return mm, cmd
}

func submit(t *testing.T, m model, input string) (model, tea.Cmd) {
	t.Helper()

	m.input.SetValue(input)
	m.input.SetCursor(len(input))

	return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestModel_Eval(t *testing.T) {
	m := newTestModel(t)

	m, cmd := submit(t, m, "r = 2 ** 3")
	if cmd == nil {
		t.Fatal("submit returned no command")
	}

	if v, ok := m.ev.Lookup("r"); !ok || v != 8 {
		t.Errorf("r = (%v, %v), want 8", v, ok)
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if e, _ := m.history.GetEntry(0); e != (HistoryEntry{Line: "r = 2 ** 3", Mode: modeEval}) {
		t.Errorf("history entry = %+v", e)
	}

	// A failed evaluation leaves variables unchanged.
	m, _ = submit(t, m, "r = 1/0")
	if v, _ := m.ev.Lookup("r"); v != 8 {
		t.Errorf("failed assignment changed r to %v", v)
	}

	if m.quitting {
		t.Error("evaluation error quit the REPL")
	}
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		run  func(model) (model, tea.Cmd)
	}{
		{"exit", func(m model) (model, tea.Cmd) { return submit(t, m, "exit") }},
		{"ctrl_d", func(m model) (model, tea.Cmd) { return press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD}) }},
		{"ctrl_c", func(m model) (model, tea.Cmd) { return press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC}) }},
		{"quit_command", func(m model) (model, tea.Cmd) {
			m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

			return submit(t, m, "quit")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := tt.run(newTestModel(t))
			if !m.quitting {
				t.Error("model did not quit")
			}

			if m.View() != "" {
				t.Errorf("View() after quit = %q, want empty", m.View())
			}
		})
	}
}

func TestModel_CtrlCClearsInput(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("1 +")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.quitting || m.input.Value() != "" {
		t.Errorf("quitting = %v, input = %q; want input cleared", m.quitting, m.input.Value())
	}
}

func TestModel_ToggleMode(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("1 + 2")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("mode = %v, input = %q after Esc", m.mode, m.input.Value())
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeEval || m.input.Value() != "1 + 2" {
		t.Errorf("eval input not restored: %q", m.input.Value())
	}
}

func TestModel_Commands(t *testing.T) {
	m := newTestModel(t)

	m, _ = submit(t, m, "a = 1")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = submit(t, m, "reset")
	if _, ok := m.ev.Lookup("a"); ok {
		t.Error("reset left variable a defined")
	}

	if e, _ := m.history.GetEntry(1); e != (HistoryEntry{Line: "reset", Mode: modeCtrl}) {
		t.Errorf("history entry = %+v", e)
	}

	if _, cmd := submit(t, m, "nonsense"); cmd == nil {
		t.Error("unknown command printed nothing")
	}
}

func TestModel_EditMessages(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, editVarsMsg{vars: map[string]float64{"k": 7}})
	if v, ok := m.ev.Lookup("k"); !ok || v != 7 {
		t.Errorf("k = (%v, %v), want 7", v, ok)
	}

	m, _ = press(t, m, editCancelledMsg{})
	if _, ok := m.ev.Lookup("k"); !ok {
		t.Error("cancelled edit removed variables")
	}

	m, _ = press(t, m, editDeclinedMsg{})
	if !m.quitting {
		t.Error("declined edit did not quit")
	}
}

func TestModel_History(t *testing.T) {
	m := newTestModel(t)

	m, _ = submit(t, m, "1 + 1")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = submit(t, m, "vars")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	// Up switches to the mode of each entry.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.mode != modeCtrl || m.input.Value() != "vars" {
		t.Fatalf("after Up: mode = %v, input = %q", m.mode, m.input.Value())
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.mode != modeEval || m.input.Value() != "1 + 1" {
		t.Fatalf("after Up Up: mode = %v, input = %q", m.mode, m.input.Value())
	}

	if !strings.Contains(m.View(), "/2") {
		t.Errorf("View() missing history position: %q", m.View())
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("Down past end: input = %q, idx = %d", m.input.Value(), m.historyIdx)
	}

	// Shift+Up stays within the current mode.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeEval {
		t.Fatalf("mode = %v after Esc, want eval", m.mode)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftUp})
	if m.mode != modeEval || m.input.Value() != "1 + 1" {
		t.Errorf("Shift+Up: mode = %v, input = %q, want 1 + 1", m.mode, m.input.Value())
	}
}

func TestModel_TabCycle(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if len(m.matches) < 2 {
		t.Fatalf("matches for s = %v, want several", m.matches)
	}

	first := m.matches[0].Str

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.tabActive || m.input.Value() != first {
		t.Fatalf("after Tab input = %q, want %q", m.input.Value(), first)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.input.Value() != m.matches[1].Str {
		t.Errorf("second Tab input = %q, want %q", m.input.Value(), m.matches[1].Str)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.tabActive || m.input.Value() != "s" || m.mode != modeEval {
		t.Errorf("Esc during tab: input = %q, mode = %v", m.input.Value(), m.mode)
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)

	if !strings.Contains(m.View(), "Type an expression") {
		t.Errorf("empty View() = %q", m.View())
	}

	m.input.SetValue("2 * sqrt(")
	m.input.SetCursor(9)
	refreshMatches(&m, false)

	if !strings.Contains(m.View(), "square root") {
		t.Errorf("View() in call = %q, want signature hint", m.View())
	}
}

func TestFormatResult(t *testing.T) {
	if got := formatResult(calc.Result{Value: 0.5}, -1); got != "0.5" {
		t.Errorf("formatResult = %q", got)
	}

	if got := formatResult(calc.Result{Value: 2, Assigned: "x"}, -1); got != "x = 2" {
		t.Errorf("formatResult with assignment = %q", got)
	}
}
