package tui

import (
	"context"
	"fmt"
	"time"

	"quantpulse/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Predictor interface {
	Predict(ctx context.Context, symbol string, requestPrice float64, shock bool) (domain.EnsembleResult, error)
}

// Services carries everything the terminal UI needs from the host process.
type Services struct {
	Predictions Predictor
	Username    string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	upStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	downStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	sidewaysStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	shockStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type predictionMsg struct {
	result domain.EnsembleResult
	err    error
}

// AppModel is the interactive symbol picker plus prediction pane.
type AppModel struct {
	svc     Services
	symbols []string
	cursor  int
	shock   bool
	loading bool
	result  *domain.EnsembleResult
	err     error
	width   int
	height  int
}

func NewAppModel(svc Services) *AppModel {
	return &AppModel{
		svc:     svc,
		symbols: domain.SupportedSymbols,
	}
}

func (m *AppModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *AppModel) Init() tea.Cmd {
	return nil
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case predictionMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.result = nil
		} else {
			m.err = nil
			result := msg.result
			m.result = &result
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.symbols)-1 {
				m.cursor++
			}
		case "s":
			m.shock = !m.shock
		case "enter", "r":
			if !m.loading && len(m.symbols) > 0 {
				m.loading = true
				m.err = nil
				return m, m.runPrediction(m.symbols[m.cursor], m.shock)
			}
		}
	}
	return m, nil
}

func (m *AppModel) runPrediction(symbol string, shock bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := m.svc.Predictions.Predict(ctx, symbol, 0, shock)
		return predictionMsg{result: result, err: err}
	}
}

func (m *AppModel) View() string {
	header := titleStyle.Render("QuantPulse · ensemble predictions")
	if m.svc.Username != "" {
		header += dimStyle.Render("  (" + m.svc.Username + ")")
	}

	list := ""
	for i, symbol := range m.symbols {
		line := "  " + symbol
		if i == m.cursor {
			line = cursorStyle.Render("> " + symbol)
		}
		list += line + "\n"
	}

	mode := dimStyle.Render("shock: off")
	if m.shock {
		mode = shockStyle.Render("shock: ON")
	}

	body := m.renderResult()

	help := dimStyle.Render("↑/↓ select · enter predict · s shock · q quit")
	return fmt.Sprintf("%s\n\n%s\n%s\n%s\n%s\n", header, list, mode, body, help)
}

func (m *AppModel) renderResult() string {
	if m.loading {
		return dimStyle.Render("\nrunning ensemble...\n")
	}
	if m.err != nil {
		return errStyle.Render("\nerror: " + m.err.Error() + "\n")
	}
	if m.result == nil {
		return dimStyle.Render("\nno prediction yet\n")
	}

	r := m.result
	dir := sidewaysStyle
	switch r.Direction {
	case domain.DirectionUp:
		dir = upStyle
	case domain.DirectionDown:
		dir = downStyle
	}

	content := fmt.Sprintf(
		"%s  %s\ncurrent   ₹%.2f\npredicted ₹%.2f (%+.2f%%)\nconfidence %.1f%%\ncluster    %s (%s)\nsentiment  %s ×%.3f",
		r.Symbol, dir.Render(string(r.Direction)),
		r.CurrentPrice,
		r.WeightedPrediction, r.PriceChangePercent,
		r.ConfidenceScore,
		r.Components.TopologyAgent.ClusterName, r.Components.TopologyAgent.ClusterRisk,
		r.Components.SentimentAgent.SentimentLabel, r.Components.SentimentAgent.SentimentMultiplier,
	)
	if r.ShockSimulationActive {
		content += "\n" + shockStyle.Render("shock scenario applied")
	}
	return "\n" + paneStyle.Render(content) + "\n"
}
