// Package ui provides the Bubble Tea TUI for the card arbitrage scanner.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fd1az/card-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/card-arbitrage/pkg/ui/components"
)

// SourceInfo holds a data source's health state.
type SourceInfo struct {
	OK       bool
	Detail   string
	LastSeen time.Time
}

// StartupStep represents a step in the startup process.
type StartupStep struct {
	Name   string
	Status string // "pending", "connecting", "connected", "failed"
}

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome   Phase = "welcome"   // Initial welcome screen
	PhaseStartup   Phase = "startup"   // Loading/connecting
	PhaseDashboard Phase = "dashboard" // Main dashboard
)

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

// ErrorEntry represents an error with timestamp.
type ErrorEntry struct {
	Message   string
	Timestamp time.Time
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	// Components
	evidence *components.EvidenceComponent
	results  *components.ResultsComponent
	stats    *components.StatsComponent
	status   *components.StatusComponent
	keys     KeyMap

	// Phase state
	phase        Phase
	welcomeStart time.Time

	// State
	ready       bool
	quitting    bool
	paused      bool
	width       int
	height      int
	sourceState map[string]*SourceInfo
	lastUpdate  time.Time
	errorMsg    string
	errors      []ErrorEntry // Persistent error panel (last 3)
	logs        []string     // Recent log messages

	// Startup state
	startupComplete bool
	startupSteps    map[string]*StartupStep
	startupTime     time.Time

	// Activity tracking
	scanStats    components.Stats
	activityFeed []string // Recent activity messages
	lastScanTime time.Time
	scanDone     bool
}

// New creates a new TUI model.
func New() Model {
	now := time.Now()
	return Model{
		evidence:     components.NewEvidenceComponent(),
		results:      components.NewResultsComponent(50), // Store more for scrolling
		stats:        components.NewStatsComponent(),
		status:       components.NewStatusComponent(),
		keys:         DefaultKeyMap(),
		phase:        PhaseWelcome,
		welcomeStart: now,
		sourceState: map[string]*SourceInfo{
			"collector": {OK: false},
			"ebay":      {OK: false},
			"130point":  {OK: false},
			"fx":        {OK: false},
		},
		logs:         make([]string, 0, 10),
		errors:       make([]ErrorEntry, 0, 3),
		activityFeed: make([]string, 0, 8),
		startupSteps: map[string]*StartupStep{
			"config":   {Name: "Loading configuration", Status: "pending"},
			"buyee":    {Name: "Starting Buyee collector", Status: "pending"},
			"ebay":     {Name: "Authenticating with eBay", Status: "pending"},
			"130point": {Name: "Probing 130point", Status: "pending"},
			"fx":       {Name: "Fetching JPY/USD rate", Status: "pending"},
		},
		startupTime: now,
	}
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every 100ms for smooth animations.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Always allow quit
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		// During welcome phase, any other key skips to startup
		if m.phase == PhaseWelcome {
			m.phase = PhaseStartup
			m.startupTime = time.Now()
			// Trigger callback directly (don't use Send() from within Update)
			if OnStartModules != nil {
				go OnStartModules()
			}
			return m, tickCmd()
		}
		// Normal key handling
		switch {
		case key.Matches(msg, m.keys.Clear):
			m.results.Clear()
			return m, nil
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			return m, nil
		case key.Matches(msg, m.keys.ScrollUp):
			m.results.ScrollUp()
			return m, nil
		case key.Matches(msg, m.keys.ScrollDown):
			m.results.ScrollDown()
			return m, nil
		case key.Matches(msg, m.keys.ClearErrors):
			m.errors = make([]ErrorEntry, 0, 3)
			m.errorMsg = ""
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		// Check if welcome timeout has elapsed
		if m.phase == PhaseWelcome && time.Since(m.welcomeStart) >= WelcomeDuration {
			m.phase = PhaseStartup
			m.startupTime = time.Now()
			// Trigger callback directly (don't use Send() from within Update)
			if OnStartModules != nil {
				go OnStartModules()
			}
		}
		return m, tickCmd()

	case ResultMsg:
		if msg.Result != nil {
			m.applyResult(msg.Result)
		}

	case SourceStatusMsg:
		m.sourceState[msg.Name] = &SourceInfo{
			OK:       msg.OK,
			Detail:   msg.Detail,
			LastSeen: time.Now(),
		}
		m.status.Update(components.SourceStatus{
			Name:       msg.Name,
			OK:         msg.OK,
			Detail:     msg.Detail,
			LastUpdate: time.Now(),
		})
		m.lastUpdate = time.Now()

		// Startup steps mirror the first status report of each source
		stepKey := msg.Name
		if stepKey == "collector" {
			stepKey = "buyee"
		}
		if step, ok := m.startupSteps[stepKey]; ok {
			if msg.OK {
				step.Status = "connected"
			} else if step.Status != "connected" {
				step.Status = "failed"
			}
		}
		// Config loading is done once any source reports
		if m.startupSteps["config"] != nil {
			m.startupSteps["config"].Status = "done"
		}

	case SummaryMsg:
		m.startupComplete = true
		m.scanStats.ListingsScanned += int64(msg.Scanned)
		m.scanStats.Opportunities = int64(msg.Opportunities)
		m.stats.Update(m.scanStats)
		m.scanDone = true
		m.lastUpdate = time.Now()
		activity := fmt.Sprintf("Scan complete: %d scanned, %d scored, %d opportunities",
			msg.Scanned, msg.Scored, msg.Opportunities)
		m.activityFeed = addActivity(m.activityFeed, activity)

	case ErrorMsg:
		m.errorMsg = msg.Error.Error()
		m.logs = addLog(m.logs, "error", msg.Error.Error())
		m.scanStats.Errors++
		m.stats.Update(m.scanStats)
		// Add to persistent errors (keep last 3)
		m.errors = append(m.errors, ErrorEntry{
			Message:   msg.Error.Error(),
			Timestamp: time.Now(),
		})
		if len(m.errors) > 3 {
			m.errors = m.errors[len(m.errors)-3:]
		}

	case LogMsg:
		m.logs = addLog(m.logs, msg.Level, msg.Message)

	case StartupMsg:
		if step, ok := m.startupSteps[msg.Step]; ok {
			step.Status = msg.Status
		}
		// Check if all steps are complete
		allConnected := true
		for _, step := range m.startupSteps {
			if step.Status != "connected" && step.Status != "done" {
				allConnected = false
				break
			}
		}
		if allConnected {
			m.startupComplete = true
		}
	}

	return m, nil
}

// applyResult folds a scored listing into every dashboard panel.
func (m *Model) applyResult(res *domain.ArbitrageResult) {
	card := res.Listing.TitleEN
	if card == "" {
		card = res.Listing.Title
	}

	m.results.Add(components.ResultRow{
		Timestamp: res.AnalyzedAt.Format("15:04:05"),
		Card:      card,
		Grade:     string(res.TargetGrade),
		ListedUSD: res.ListedUSD,
		RefUSD:    res.Reference.Median,
		ProfitUSD: res.Profit.ProfitUSD,
		MarginPct: res.Profit.MarginPct,
		Score:     res.Score,
		Action:    string(res.Action),
		Fallback:  res.Reference.Fallback,
	})

	m.evidence.SetQuery(res.Listing.Query())
	m.evidence.SetBreakdown(components.EvidenceBreakdown{
		Card:        card,
		Grade:       string(res.TargetGrade),
		Condition:   string(res.Condition.Ordinal),
		ListedUSD:   res.ListedUSD.InexactFloat64(),
		MedianUSD:   res.Reference.Median.InexactFloat64(),
		SampleCount: res.Reference.SampleCount,
		SourceCount: res.Reference.SourceCount,
		SpreadRatio: res.Reference.SpreadRatio.InexactFloat64(),
		Fallback:    res.Reference.Fallback,
		GrossProfit: res.Profit.ProfitUSD.InexactFloat64(),
		NetProfit:   res.NetProfitUSD.InexactFloat64(),
		MarginPct:   res.Profit.MarginPct.InexactFloat64(),
		Risk:        res.Risk.InexactFloat64(),
		Score:       res.Score.InexactFloat64(),
		Action:      string(res.Action),
		HasEvidence: res.Profit.HasEvidence,
	})

	m.scanStats.ListingsScored++
	if res.Action != domain.ActionPass {
		m.scanStats.Opportunities++
	}
	if res.Action == domain.ActionStrongBuy {
		m.scanStats.StrongBuys++
		activity := fmt.Sprintf("STRONG_BUY %s ($%s profit)", truncateActivity(card), res.Profit.ProfitUSD.StringFixed(2))
		m.activityFeed = addActivity(m.activityFeed, activity)
	} else {
		activity := fmt.Sprintf("Scored %s: %s (%s)", truncateActivity(card), res.Score.StringFixed(1), res.Action)
		m.activityFeed = addActivity(m.activityFeed, activity)
	}
	m.stats.Update(m.scanStats)

	m.lastScanTime = time.Now()
	m.lastUpdate = time.Now()
}

func truncateActivity(s string) string {
	if len(s) > 30 {
		return s[:29] + "…"
	}
	return s
}

// addLog adds a log message and returns the updated slice (keeps last 5).
func addLog(logs []string, level, message string) []string {
	timestamp := time.Now().Format("15:04:05")
	logLine := fmt.Sprintf("[%s] %s: %s", timestamp, level, message)
	logs = append(logs, logLine)
	if len(logs) > 5 {
		logs = logs[len(logs)-5:]
	}
	return logs
}

// addActivity adds an activity message and returns the updated slice (keeps last 6).
func addActivity(feed []string, message string) []string {
	timestamp := time.Now().Format("15:04:05")
	line := fmt.Sprintf("[%s] %s", timestamp, message)
	feed = append(feed, line)
	if len(feed) > 6 {
		feed = feed[len(feed)-6:]
	}
	return feed
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	// Phase-based rendering
	switch m.phase {
	case PhaseWelcome:
		return m.renderWelcomeScreen()
	case PhaseStartup:
		// Show startup until the first result or all sources report
		if m.scanStats.ListingsScored == 0 && !m.startupComplete {
			return m.renderStartupScreen()
		}
		// Transition to dashboard when ready
		m.phase = PhaseDashboard
		fallthrough
	case PhaseDashboard:
		// Continue to main dashboard
	}

	var b strings.Builder

	// Title
	title := TitleStyle.Render(" 🎴 Card Arbitrage Scanner ")
	b.WriteString(title)
	b.WriteString("\n\n")

	// Status bar
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	// Top row: evidence breakdown on left, activity feed on right
	leftCol := m.evidence.View()
	rightCol := m.renderActivityFeed()

	// Side by side if enough width
	if m.width > 100 {
		left := BoxStyle.Width(m.width/2 - 2).Render(leftCol)
		right := BoxStyle.Width(m.width/2 - 2).Render(rightCol)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		b.WriteString(BoxStyle.Width(m.width - 4).Render(leftCol))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Width(m.width - 4).Render(rightCol))
	}

	b.WriteString("\n")

	// Results table, full width
	b.WriteString(m.results.View())
	b.WriteString("\n\n")

	// Stats and source health
	b.WriteString(m.stats.View())
	b.WriteString("\n")
	b.WriteString(m.status.View())
	b.WriteString("\n")

	// Persistent error panel (show last 3 errors)
	if len(m.errors) > 0 {
		errorStyle := lipgloss.NewStyle().Foreground(ColorDanger)
		errorHeader := lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
		mutedError := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

		b.WriteString(errorHeader.Render("ERRORS"))
		b.WriteString(mutedError.Render(" (e: clear)"))
		b.WriteString("\n")
		for _, err := range m.errors {
			ago := time.Since(err.Timestamp).Round(time.Second)
			b.WriteString(errorStyle.Render(fmt.Sprintf("  • %s ", err.Message)))
			b.WriteString(mutedError.Render(fmt.Sprintf("(%s ago)", ago)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Help
	helpText := "q: quit • c: clear • p: pause • ↑↓: scroll"
	if m.paused {
		pauseStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
		b.WriteString(pauseStyle.Render("⏸ PAUSED"))
		b.WriteString(" • ")
	}
	b.WriteString(HelpStyle.Render(helpText))

	return b.String()
}

// renderActivityFeed renders the recent activity feed.
func (m Model) renderActivityFeed() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	strongStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("LIVE ACTIVITY"))
	sb.WriteString("\n\n")

	if len(m.activityFeed) == 0 {
		sb.WriteString(mutedStyle.Render("  Waiting for listings..."))
	} else {
		for _, activity := range m.activityFeed {
			if strings.Contains(activity, "STRONG_BUY") {
				sb.WriteString(strongStyle.Render("  " + activity))
			} else {
				sb.WriteString(mutedStyle.Render("  " + activity))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// renderWelcomeScreen renders the animated welcome screen.
func (m Model) renderWelcomeScreen() string {
	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED"))

	goldStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F59E0B"))

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	greenStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	// Animated dots based on time
	elapsed := time.Since(m.welcomeStart)
	dotCount := int(elapsed.Milliseconds()/300) % 4
	dots := strings.Repeat(".", dotCount)

	var sb strings.Builder

	// Center the content vertically
	sb.WriteString("\n\n\n\n")

	// ASCII art logo
	logo := `
    ██████╗ █████╗ ██████╗ ██████╗      █████╗ ██████╗ ██████╗
   ██╔════╝██╔══██╗██╔══██╗██╔══██╗    ██╔══██╗██╔══██╗██╔══██╗
   ██║     ███████║██████╔╝██║  ██║    ███████║██████╔╝██████╔╝
   ██║     ██╔══██║██╔══██╗██║  ██║    ██╔══██║██╔══██╗██╔══██╗
   ╚██████╗██║  ██║██║  ██║██████╔╝    ██║  ██║██║  ██║██████╔╝
    ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝     ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝
`
	sb.WriteString(titleStyle.Render(logo))
	sb.WriteString("\n")

	// Subtitle
	subtitle := "           B U Y E E   →   E B A Y   S C A N N E R"
	sb.WriteString(mutedStyle.Render(subtitle))
	sb.WriteString("\n\n\n")

	// Tagline with gold styling
	tagline := "              🎴  Find undervalued cards  🎴"
	sb.WriteString(goldStyle.Render(tagline))
	sb.WriteString("\n\n\n")

	// Loading indicator
	loading := fmt.Sprintf("                  Initializing%s", dots)
	sb.WriteString(greenStyle.Render(loading))
	sb.WriteString("\n\n")

	// Skip hint
	hint := "            Press any key to skip, or wait..."
	sb.WriteString(mutedStyle.Render(hint))
	sb.WriteString("\n")

	return sb.String()
}

// renderStartupScreen renders the loading/startup screen.
func (m Model) renderStartupScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		MarginBottom(1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	connectingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	failedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	var sb strings.Builder

	sb.WriteString("\n\n")
	sb.WriteString(titleStyle.Render("  🎴 Card Arbitrage Scanner"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("  Starting up..."))
	sb.WriteString("\n\n")

	// Show startup steps in order
	stepOrder := []string{"config", "buyee", "ebay", "130point", "fx"}
	for _, key := range stepOrder {
		step, ok := m.startupSteps[key]
		if !ok {
			continue
		}

		var icon, statusText string
		var style lipgloss.Style

		switch step.Status {
		case "connected", "done":
			icon = "✓"
			statusText = "Ready"
			style = successStyle
		case "connecting":
			// Animated spinner based on time
			spinners := []string{"◐", "◓", "◑", "◒"}
			idx := int(time.Since(m.startupTime).Milliseconds()/200) % len(spinners)
			icon = spinners[idx]
			statusText = "Connecting..."
			style = connectingStyle
		case "failed":
			icon = "✗"
			statusText = "Failed"
			style = failedStyle
		default:
			icon = "○"
			statusText = "Pending"
			style = mutedStyle
		}

		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			style.Render(icon),
			mutedStyle.Render(step.Name),
			style.Render(statusText),
		))
	}

	sb.WriteString("\n")
	elapsed := time.Since(m.startupTime).Round(time.Second)
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  Elapsed: %s", elapsed)))
	sb.WriteString("\n\n")

	sb.WriteString(mutedStyle.Render("  Waiting for first Buyee listing..."))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) renderStatusBar() string {
	var parts []string

	// Scanning indicator (animated when recently scored)
	if time.Since(m.lastScanTime) < 500*time.Millisecond {
		spinners := []string{"⟳", "◐", "◓", "◑", "◒"}
		idx := int(time.Now().UnixMilli()/100) % len(spinners)
		scanningStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
		parts = append(parts, scanningStyle.Render(spinners[idx]+" Scanning"))
	}

	// Scored count
	if m.scanStats.ListingsScored > 0 {
		scanStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
		parts = append(parts, scanStyle.Render(fmt.Sprintf("Scored: %d", m.scanStats.ListingsScored)))
	}

	// Scan completion
	if m.scanDone {
		parts = append(parts, MutedValue.Render("scan complete"))
	}

	// Source status, fixed order for a stable bar
	for _, name := range []string{"collector", "ebay", "130point", "fx"} {
		info := m.sourceState[name]
		var statusStyle lipgloss.Style
		var icon string
		status := name
		if info != nil && info.OK {
			statusStyle = StatusConnected
			icon = "●"
		} else {
			statusStyle = StatusDisconnected
			icon = "○"
			if info != nil && info.Detail != "" {
				status = fmt.Sprintf("%s (%s)", name, info.Detail)
			} else {
				status = name + " (down)"
			}
		}
		parts = append(parts, statusStyle.Render(icon+" "+status))
	}

	// Last update with activity indicator
	if !m.lastUpdate.IsZero() {
		ago := time.Since(m.lastUpdate).Round(time.Second)
		indicator := ""
		if ago < 2*time.Second {
			indicator = "▪" // Recent activity indicator
		}
		parts = append(parts, MutedValue.Render(fmt.Sprintf("Updated: %s ago %s", ago, indicator)))
	}

	return strings.Join(parts, "  │  ")
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// OnStartModules is called when the welcome screen completes and modules should start.
// This is set by main.go to signal when to begin loading modules.
var OnStartModules func()

// Run starts the Bubble Tea program.
func Run() error {
	Program = tea.NewProgram(New(), tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
	// Call OnStartModules callback when StartModulesMsg is sent
	if _, ok := msg.(StartModulesMsg); ok && OnStartModules != nil {
		OnStartModules()
	}
}
