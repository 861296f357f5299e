package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pickerFiles() []string {
	return []string{
		"skills/demo.md",
		".claude/commands/run.md",
		".claude/commands/test.md",
	}
}

func TestNewFilePickerModel(t *testing.T) {
	m := NewFilePickerModel(pickerFiles(), "demo", "/tmp/marketplace")

	if len(m.files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(m.files))
	}
	// Sorted
	if m.files[0] != ".claude/commands/run.md" {
		t.Errorf("expected sorted files, got %v", m.files)
	}
	// All selected by default
	if len(m.selectedFiles()) != 3 {
		t.Errorf("expected all files selected, got %v", m.selectedFiles())
	}
}

func TestFilePickerModel_ToggleAndConfirm(t *testing.T) {
	m := NewFilePickerModel(pickerFiles(), "demo", "/tmp/marketplace")

	// Toggle the first file off
	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = newModel.(FilePickerModel)
	if len(m.selectedFiles()) != 2 {
		t.Fatalf("expected 2 selected after toggle, got %v", m.selectedFiles())
	}

	// Confirm enters confirmation mode
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m = newModel.(FilePickerModel)
	if !m.confirmMode {
		t.Fatal("expected confirmation mode")
	}

	// Accept
	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m = newModel.(FilePickerModel)
	if cmd == nil {
		t.Fatal("expected quit command after confirmation")
	}

	result := m.Result()
	if !result.Confirmed {
		t.Fatal("expected confirmed result")
	}
	if len(result.Selected) != 2 {
		t.Errorf("expected 2 selected files, got %v", result.Selected)
	}
}

func TestFilePickerModel_ToggleAll(t *testing.T) {
	m := NewFilePickerModel(pickerFiles(), "demo", "/tmp/marketplace")

	// All start selected, so toggle-all deselects everything
	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = newModel.(FilePickerModel)
	if len(m.selectedFiles()) != 0 {
		t.Fatalf("expected all deselected, got %v", m.selectedFiles())
	}

	// Confirm does nothing with an empty selection
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m = newModel.(FilePickerModel)
	if m.confirmMode {
		t.Fatal("confirmation must require a selection")
	}

	// Toggle-all again reselects everything
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = newModel.(FilePickerModel)
	if len(m.selectedFiles()) != 3 {
		t.Fatalf("expected all reselected, got %v", m.selectedFiles())
	}
}

func TestFilePickerModel_QuitWithoutConfirm(t *testing.T) {
	m := NewFilePickerModel(pickerFiles(), "demo", "/tmp/marketplace")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = newModel.(FilePickerModel)

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.Result().Confirmed {
		t.Error("quit must not confirm the sync")
	}
}

func TestFilePickerModel_Filter(t *testing.T) {
	m := NewFilePickerModel(pickerFiles(), "demo", "/tmp/marketplace")

	// Enter filtering mode and type "skills"
	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = newModel.(FilePickerModel)
	if !m.filtering {
		t.Fatal("expected filtering mode")
	}
	for _, c := range "skills" {
		newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{c}})
		m = newModel.(FilePickerModel)
	}
	if len(m.filtered) != 1 || m.filtered[0] != "skills/demo.md" {
		t.Fatalf("expected filter to narrow to skills/demo.md, got %v", m.filtered)
	}

	// Esc clears the filter
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = newModel.(FilePickerModel)
	if len(m.filtered) != 3 {
		t.Errorf("expected filter cleared, got %v", m.filtered)
	}
}
