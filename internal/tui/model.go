package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"filingtext/internal/domain"
	"filingtext/internal/readability"
)

// previewLimit caps the document text rendered under a report.
const previewLimit = 4000

// AnalyzerPort is the TUI-facing subset of the analysis service.
type AnalyzerPort interface {
	AnalyzeText(text string) domain.Result
}

// Model is the Bubble Tea model for browsing fog reports.
type Model struct {
	service  AnalyzerPort
	input    textinput.Model
	viewport viewport.Model
	results  []domain.Result
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model over already computed results.
func New(service AnalyzerPort, results []domain.Result) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Paste text and press Enter to score it"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	status := fmt.Sprintf("Loaded %d documents. Up/Down to browse.", len(results))
	return Model{service: service, input: ti, viewport: vp, results: results, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := reportBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input line
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				r := m.service.AnalyzeText(text)
				m.results = append(m.results, r)
				m.cursor = len(m.results) - 1
				m.status = fmt.Sprintf("Scored input: fog index %.2f", r.Fog.Index)
				m.input.Reset()
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrent())
				m.viewport.GotoTop()
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrent())
				m.viewport.GotoTop()
				return m, nil
			}
		case "pgdown", "pgup":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the layout and the selected report.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Filing Readability")
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	report := reportBoxStyle.Render(m.viewport.View())
	return header + "\n" + report + "\n" + input + "\n" + status
}

// Results returns the results shown, including scored input.
func (m Model) Results() []domain.Result { return m.results }

// Cursor returns the index of the selected result.
func (m Model) Cursor() int { return m.cursor }

func (m Model) renderCurrent() string {
	if len(m.results) == 0 {
		return "No documents yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Document %d/%d  %s", m.cursor+1, len(m.results), r.Path)
	if r.Err != nil {
		return title + "\n\n" + errorStyle.Render("Error: "+r.Err.Error())
	}
	return title + "\n\n" + renderReport(r) + "\n" + highlightComplex(preview(r.Text))
}

func renderReport(r domain.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fog index:        %s\n", indexStyle.Render(fmt.Sprintf("%.2f", r.Fog.Index)))
	fmt.Fprintf(&b, "Sentences:        %d\n", r.Fog.Sentences)
	fmt.Fprintf(&b, "Words:            %d\n", r.Fog.Words)
	fmt.Fprintf(&b, "Complex words:    %d (%.2f%%)\n", r.Fog.ComplexWords, r.Fog.PercentComplex)
	fmt.Fprintf(&b, "Avg sentence len: %.2f\n", r.Fog.AvgSentenceLength)
	fmt.Fprintf(&b, "Keyword mentions: %d\n", r.Keywords.Total)
	for _, c := range r.Keywords.Categories {
		if c.Total() == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s: %d\n", c.Category, c.Total())
	}
	if len(r.Hotspots) > 0 {
		b.WriteString("Hardest sentences:\n")
		for _, h := range r.Hotspots {
			fmt.Fprintf(&b, "  [%.1f] %s\n", h.Fog, highlightComplex(h.Sentence))
		}
	}
	return b.String()
}

var (
	reportBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	indexStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	asciiWordRe    = regexp.MustCompile(`\b[a-zA-Z]+\b`)
)

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "…"
}

// highlightComplex renders the words counted as complex in the highlight style.
func highlightComplex(text string) string {
	return asciiWordRe.ReplaceAllStringFunc(text, func(w string) string {
		if readability.IsComplex(w) {
			return highlightStyle.Render(w)
		}
		return w
	})
}
