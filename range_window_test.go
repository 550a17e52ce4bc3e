package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func loadedModel(t *testing.T) *model {
	t.Helper()
	m := testModel(t, map[string]string{"a.csv": flightCSV})
	runLoad(t, m, m.Init())
	m.table = flightLog(500)
	m.sidebar.forget()
	m.recompute()
	return m
}

func TestRangeDrawerApply(t *testing.T) {
	m := loadedModel(t)
	m.openRangeDrawer()
	if m.ui.mode != modeRange || !m.ui.rangeWindow.open {
		t.Fatal("drawer did not open")
	}

	rw := &m.ui.rangeWindow
	rw.startInput.SetValue("50")
	rw.endInput.SetValue("150")
	rw.rateInput.SetValue("5")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if rw.open || m.ui.mode != modeView {
		t.Fatal("drawer should close on apply")
	}
	opts := m.result.opts
	if opts.MinID != 50 || opts.MaxID != 150 || opts.SampleRate != 5 {
		t.Fatalf("options = %d-%d/%d", opts.MinID, opts.MaxID, opts.SampleRate)
	}
}

func TestRangeDrawerRejectsBadInput(t *testing.T) {
	m := loadedModel(t)
	m.openRangeDrawer()
	rw := &m.ui.rangeWindow
	rw.startInput.SetValue("200")
	rw.endInput.SetValue("100")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !rw.open || rw.errorMsg == "" {
		t.Fatal("start after end should keep the drawer open with an error")
	}
	if m.sidebar.rangeMin != 0 || m.sidebar.rangeMax != 100 {
		t.Fatalf("range changed to %d-%d", m.sidebar.rangeMin, m.sidebar.rangeMax)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if rw.open {
		t.Fatal("esc should close the drawer")
	}
}

func TestRangeScrubberShift(t *testing.T) {
	m := loadedModel(t)
	m.openRangeDrawer()
	m.setRangeFocus(rangeFocusScrubber)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})

	rw := &m.ui.rangeWindow
	if rw.draftStart != rangeStepDefault || rw.draftEnd != 100+rangeStepDefault {
		t.Fatalf("draft = %d-%d", rw.draftStart, rw.draftEnd)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.sidebar.rangeMin != rangeStepDefault {
		t.Fatalf("applied start = %d", m.sidebar.rangeMin)
	}
}
