package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dhabedank/genchecklist/internal/core"
	"github.com/dhabedank/genchecklist/internal/session"
)

// AppConfig wires the checklist UI to the rest of the program.
type AppConfig struct {
	Session *session.Session

	// Domain opens straight into a checklist; "" shows the picker.
	Domain core.Domain

	// Details returns the form input for a domain.
	Details func(core.Domain) (core.Details, error)

	// Generate runs one generation. It is called off the UI goroutine.
	Generate func(context.Context, core.Details) (core.Checklist, error)

	// Export writes the checklist and returns where it went.
	Export func(core.Checklist) (string, error)

	Context context.Context
}

type view int

const (
	viewPicker view = iota
	viewChecklist
)

type startMsg struct{}

type generatedMsg struct {
	ticket    session.Ticket
	checklist core.Checklist
	err       error
}

type exportedMsg struct {
	path string
	err  error
}

// App is the Bubble Tea model for browsing and checking off checklists.
type App struct {
	cfg     AppConfig
	view    view
	picker  list.Model
	spinner spinner.Model
	domain  core.Domain
	cursor  int
	status  string
	width   int
	height  int
}

type domainItem struct {
	spec core.DomainSpec
}

func (d domainItem) Title() string       { return d.spec.Title }
func (d domainItem) Description() string { return d.spec.Description }
func (d domainItem) FilterValue() string { return d.spec.Title }

// NewApp builds the UI model.
func NewApp(cfg AppConfig) App {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}

	items := make([]list.Item, 0, len(core.Domains))
	for _, d := range core.Domains {
		spec, _ := d.Spec()
		items = append(items, domainItem{spec: spec})
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(ColorMuted)

	picker := list.New(items, delegate, 60, 20)
	picker.Title = "What are you planning?"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)
	picker.Styles.Title = TitleStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	a := App{cfg: cfg, picker: picker, spinner: s}
	if cfg.Domain != "" {
		a.view = viewChecklist
		a.domain = cfg.Domain
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.view == viewChecklist {
		return func() tea.Msg { return startMsg{} }
	}
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.picker.SetWidth(msg.Width)
		a.picker.SetHeight(msg.Height - 2)
		return a, nil

	case startMsg:
		a.cfg.Session.SwitchView(a.domain)
		cmd := a.generate()
		return a, cmd

	case generatedMsg:
		if !a.cfg.Session.Complete(msg.ticket, msg.checklist, msg.err) {
			return a, nil
		}
		a.cursor = 0
		if msg.err != nil {
			a.status = ""
		} else {
			a.status = SuccessStyle.Render("✓") + " checklist ready"
		}
		return a, nil

	case exportedMsg:
		if msg.err != nil {
			a.status = ErrorStyle.Render("export failed: " + msg.err.Error())
		} else {
			a.status = SuccessStyle.Render("✓") + " exported to " + msg.path
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.view == viewPicker {
			return a.updatePicker(msg)
		}
		return a.updateChecklist(msg)
	}

	if a.view == viewPicker {
		var cmd tea.Cmd
		a.picker, cmd = a.picker.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "enter":
		item, ok := a.picker.SelectedItem().(domainItem)
		if !ok {
			return a, nil
		}
		a.view = viewChecklist
		a.domain = item.spec.Domain
		a.cursor = 0
		a.status = ""
		a.cfg.Session.SwitchView(a.domain)
		cmd := a.generate()
		return a, cmd
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

func (a App) updateChecklist(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.rows()
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc", "b":
		a.cfg.Session.SwitchView("")
		a.view = viewPicker
		a.domain = ""
		a.status = ""
		return a, nil
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(rows)-1 {
			a.cursor++
		}
	case " ", "space", "x":
		if a.cursor < len(rows) {
			row := rows[a.cursor]
			a.cfg.Session.Toggle(a.domain, row.GroupKey, row.Item.ID)
		}
	case "r":
		cmd := a.generate()
		return a, cmd
	case "p":
		cmd := a.export()
		return a, cmd
	}
	return a, nil
}

// generate starts one request for the active domain. It does nothing while a
// request for that domain is outstanding.
func (a *App) generate() tea.Cmd {
	if a.cfg.Session.Loading(a.domain) {
		return nil
	}
	details, err := a.cfg.Details(a.domain)
	if err == nil {
		err = details.Validate()
	}
	if err != nil {
		a.status = ErrorStyle.Render(err.Error())
		return nil
	}

	a.status = ""
	ticket := a.cfg.Session.Begin(a.domain)
	ctx, gen := a.cfg.Context, a.cfg.Generate
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		cl, err := gen(ctx, details)
		return generatedMsg{ticket: ticket, checklist: cl, err: err}
	})
}

func (a *App) export() tea.Cmd {
	if a.cfg.Export == nil {
		return nil
	}
	snap := a.cfg.Session.Snapshot(a.domain)
	if snap.Checklist == nil {
		a.status = WarningStyle.Render("nothing to export yet")
		return nil
	}
	cl, exp := *snap.Checklist, a.cfg.Export
	return func() tea.Msg {
		path, err := exp(cl)
		return exportedMsg{path: path, err: err}
	}
}

func (a App) loading() bool {
	return a.domain != "" && a.cfg.Session.Loading(a.domain)
}

func (a App) rows() []Row {
	snap := a.cfg.Session.Snapshot(a.domain)
	if snap.Checklist == nil {
		return nil
	}
	return Rows(*snap.Checklist)
}

// Domain returns the domain in view, "" on the picker.
func (a App) Domain() core.Domain {
	return a.domain
}

// View implements tea.Model.
func (a App) View() string {
	if a.view == viewPicker {
		help := HelpStyle.Render("\n  ↑/↓: navigate • enter: generate • q: quit")
		return a.picker.View() + help
	}

	spec, _ := a.domain.Spec()
	var b strings.Builder
	b.WriteString("\n  " + TitleStyle.Render(spec.Title) + "\n\n")

	snap := a.cfg.Session.Snapshot(a.domain)
	switch {
	case snap.Loading:
		b.WriteString(fmt.Sprintf("  %s Generating your %s checklist...\n", a.spinner.View(), DomainStyle.Render(a.domain.String())))
	case snap.Status == session.StatusError:
		b.WriteString(ErrorBoxStyle.Render(snap.Error) + "\n")
	}
	if snap.Checklist != nil {
		b.WriteString(indent(RenderChecklist(*snap.Checklist, a.cursor)) + "\n")
	}

	if a.status != "" {
		b.WriteString("\n  " + a.status + "\n")
	}
	help := "↑/↓: move • space: toggle • r: regenerate • p: export • esc: domains • q: quit"
	if snap.Loading {
		help = "esc: domains • q: quit"
	}
	b.WriteString("\n  " + HelpStyle.Render(help))
	return b.String()
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "  " + l
		}
	}
	return strings.Join(lines, "\n")
}
