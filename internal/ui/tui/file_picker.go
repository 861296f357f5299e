package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FilePickerResult contains the outcome of the file picker interaction.
type FilePickerResult struct {
	// Confirmed is true when the user chose to proceed with the sync.
	Confirmed bool

	// Selected holds the source-relative paths the user kept selected.
	Selected []string
}

// filePickerKeyMap defines the key bindings for the file picker.
type filePickerKeyMap struct {
	Toggle    key.Binding
	ToggleAll key.Binding
	Confirm   key.Binding
	Filter    key.Binding
	ClearFlt  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultFilePickerKeyMap() filePickerKeyMap {
	return filePickerKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "tab"),
			key.WithHelp("space/tab", "toggle"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y/enter", "sync selected"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFlt: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Styles specific to the file picker; Title and Help come from Styles.
var filePickerStyles = struct {
	Filter      lipgloss.Style
	FilterInput lipgloss.Style
	Confirm     lipgloss.Style
	Status      lipgloss.Style
}{
	Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	FilterInput: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	Confirm:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true).Padding(1, 2),
	Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
}

const (
	filePickerCheckboxWidth = 3
	filePickerPathWidth     = 60
)

// FilePickerModel is the BubbleTea model for choosing which files a
// sync should copy. All files start selected.
type FilePickerModel struct {
	table       table.Model
	files       []string
	filtered    []string
	selected    map[string]bool
	keys        filePickerKeyMap
	result      FilePickerResult
	skillName   string
	targetDir   string
	filter      string
	filtering   bool
	showHelp    bool
	confirmMode bool
	width       int
	quitting    bool
}

// NewFilePickerModel creates a file picker over the given
// source-relative paths.
func NewFilePickerModel(files []string, skillName, targetDir string) FilePickerModel {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	selected := make(map[string]bool, len(sorted))
	for _, f := range sorted {
		selected[f] = true
	}

	m := FilePickerModel{
		files:     sorted,
		filtered:  sorted,
		selected:  selected,
		keys:      defaultFilePickerKeyMap(),
		skillName: skillName,
		targetDir: targetDir,
	}

	t := table.New(
		table.WithColumns(filePickerColumns(0)),
		table.WithRows(m.filesToRows(sorted)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	return m
}

func filePickerColumns(totalWidth int) []table.Column {
	pathWidth := filePickerPathWidth
	if extra := totalWidth - filePickerCheckboxWidth - filePickerPathWidth - 8; extra > 0 {
		pathWidth += extra
	}
	return []table.Column{
		{Title: " ", Width: filePickerCheckboxWidth},
		{Title: "File", Width: pathWidth},
	}
}

func (m FilePickerModel) filesToRows(files []string) []table.Row {
	rows := make([]table.Row, len(files))
	for i, f := range files {
		checkbox := "[ ]"
		if m.selected[f] {
			checkbox = "[✓]"
		}
		rows[i] = table.Row{checkbox, f}
	}
	return rows
}

// Init implements tea.Model.
func (m FilePickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m FilePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(max(msg.Height-8, 5))
		m.table.SetColumns(filePickerColumns(msg.Width))
		m.table.SetRows(m.filesToRows(m.filtered))

	case tea.KeyMsg:
		if m.confirmMode {
			switch msg.String() {
			case "y", "Y", "enter":
				m.result = FilePickerResult{
					Confirmed: true,
					Selected:  m.selectedFiles(),
				}
				m.quitting = true
				return m, tea.Quit
			case "n", "N", "esc":
				m.confirmMode = false
				return m, nil
			}
			return m, nil
		}

		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
				return m, nil
			case "esc":
				m.filter = ""
				m.filtering = false
				m.applyFilter()
				return m, nil
			case "backspace":
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.applyFilter()
				}
				return m, nil
			default:
				if len(msg.String()) == 1 {
					m.filter += msg.String()
					m.applyFilter()
				}
				return m, nil
			}
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			return m, nil

		case key.Matches(msg, m.keys.ClearFlt):
			m.filter = ""
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if file, ok := m.cursorFile(); ok {
				m.selected[file] = !m.selected[file]
				m.table.SetRows(m.filesToRows(m.filtered))
			}
			return m, nil

		case key.Matches(msg, m.keys.ToggleAll):
			selectedCount := 0
			for _, f := range m.filtered {
				if m.selected[f] {
					selectedCount++
				}
			}
			selectAll := selectedCount < len(m.filtered)/2+1
			for _, f := range m.filtered {
				m.selected[f] = selectAll
			}
			m.table.SetRows(m.filesToRows(m.filtered))
			return m, nil

		case key.Matches(msg, m.keys.Confirm):
			if len(m.selectedFiles()) > 0 {
				m.confirmMode = true
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *FilePickerModel) applyFilter() {
	if m.filter == "" {
		m.filtered = m.files
	} else {
		var filtered []string
		lowerFilter := strings.ToLower(m.filter)
		for _, f := range m.files {
			if strings.Contains(strings.ToLower(f), lowerFilter) {
				filtered = append(filtered, f)
			}
		}
		m.filtered = filtered
	}
	m.table.SetRows(m.filesToRows(m.filtered))
}

func (m FilePickerModel) cursorFile() (string, bool) {
	cursor := m.table.Cursor()
	if cursor >= 0 && cursor < len(m.filtered) {
		return m.filtered[cursor], true
	}
	return "", false
}

func (m FilePickerModel) selectedFiles() []string {
	var selected []string
	for _, f := range m.files {
		if m.selected[f] {
			selected = append(selected, f)
		}
	}
	return selected
}

// View implements tea.Model.
func (m FilePickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := Styles.Title.Render(fmt.Sprintf("🔄 Sync %s → %s", m.skillName, m.targetDir))
	b.WriteString(title)
	b.WriteString("\n\n")

	if m.filter != "" || m.filtering {
		filterStr := filePickerStyles.Filter.Render("Filter: ")
		filterVal := filePickerStyles.FilterInput.Render(m.filter)
		if m.filtering {
			filterVal += "█"
		}
		b.WriteString(filterStr + filterVal + "\n\n")
	}

	if m.confirmMode {
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
		confirmMsg := fmt.Sprintf("Sync %d file(s) to %s? (y/n)", len(m.selectedFiles()), m.targetDir)
		b.WriteString(filePickerStyles.Confirm.Render(confirmMsg))
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	selectedCount := len(m.selectedFiles())
	status := fmt.Sprintf("%d file(s) selected of %d", selectedCount, len(m.filtered))
	if m.filter != "" {
		status = fmt.Sprintf("%d selected, %d of %d shown (filtered)", selectedCount, len(m.filtered), len(m.files))
	}
	b.WriteString(filePickerStyles.Status.Render(status))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(m.renderShortHelp())
	}

	return b.String()
}

func (m FilePickerModel) renderShortHelp() string {
	keys := []string{
		"↑/↓ navigate",
		"space toggle",
		"a toggle all",
		"y sync",
		"/ filter",
		"? help",
		"q quit",
	}
	return Styles.Help.Render(strings.Join(keys, " • "))
}

func (m FilePickerModel) renderFullHelp() string {
	help := `Navigation:
  ↑/k      Move up
  ↓/j      Move down

Selection:
  Space/Tab  Toggle current file
  a          Toggle all files

Actions:
  y/Enter  Confirm and sync selected files

Filter:
  /        Start filtering by path
  Esc      Clear filter
  Enter    Finish filtering

General:
  ?        Toggle full help
  q        Quit without syncing`
	return Styles.Help.Render(help)
}

// Result returns the outcome of the user interaction.
func (m FilePickerModel) Result() FilePickerResult {
	return m.result
}

// RunFilePicker runs the interactive file picker and returns the
// result. An empty file list confirms immediately with no selection.
func RunFilePicker(files []string, skillName, targetDir string) (FilePickerResult, error) {
	if len(files) == 0 {
		return FilePickerResult{}, nil
	}

	mdl := NewFilePickerModel(files, skillName, targetDir)
	finalModel, err := Run(mdl, tea.WithAltScreen())
	if err != nil {
		return FilePickerResult{}, err
	}

	if m, ok := finalModel.(FilePickerModel); ok {
		return m.Result(), nil
	}

	return FilePickerResult{}, nil
}
