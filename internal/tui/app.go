package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/spantag/internal/annotate"
	"github.com/jask/spantag/internal/binder"
	"github.com/jask/spantag/internal/op"
)

// App is the annotator view: every key goes through the binder, and every
// committed operation is applied to the machine.
type App struct {
	ctx     context.Context
	binder  *binder.Binder
	machine *annotate.Machine
	styles  Styles
	log     *zap.Logger

	help     help.Model
	bindings []key.Binding
	quit     key.Binding
	clear    key.Binding

	title     string
	width     int
	status    string
	statusErr bool
	err       error
}

type Option func(*App)

func WithStyles(s Styles) Option {
	return func(a *App) { a.styles = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithTitle sets the text shown next to the app name in the header.
func WithTitle(t string) Option {
	return func(a *App) { a.title = t }
}

func New(ctx context.Context, b *binder.Binder, m *annotate.Machine, opts ...Option) *App {
	a := &App{
		ctx:     ctx,
		binder:  b,
		machine: m,
		styles:  DefaultStyles(m.Groups()),
		log:     zap.NewNop(),
		help:    help.New(),
		quit:    key.NewBinding(key.WithKeys(binder.QuitKey), key.WithHelp(binder.QuitKey, "quit")),
		clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.bindings = helpBindings(b.Bindings())
	a.bindings = append(a.bindings, a.quit)
	if m.Exhausted() {
		a.setStatus("nothing to annotate; ctrl+c to quit", false)
	}
	return a
}

func helpBindings(bs []binder.Binding) []key.Binding {
	out := make([]key.Binding, 0, len(bs))
	for _, b := range bs {
		shown := make([]string, len(b.Keys))
		for i, k := range b.Keys {
			shown[i] = binder.DisplayKey(k)
		}
		out = append(out, key.NewBinding(
			key.WithKeys(strings.Join(b.Keys, "")),
			key.WithHelp(strings.Join(shown, " "), describe(b.Operation)),
		))
	}
	return out
}

var opHelp = map[op.Kind]string{
	op.KindCancelLabel:     "unlabel",
	op.KindCursorLeft:      "left",
	op.KindCursorRight:     "right",
	op.KindCursorUp:        "up",
	op.KindCursorDown:      "down",
	op.KindConfirmSentence: "confirm",
	op.KindSetMark:         "select",
}

func describe(o op.Operation) string {
	if o.Kind == op.KindLabel {
		return o.Name
	}
	if h, ok := opHelp[o.Kind]; ok {
		return h
	}
	return o.String()
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
	case tea.KeyMsg:
		if key.Matches(m, a.quit) {
			return a, tea.Quit
		}
		return a, a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if err := a.binder.Feed(k); err != nil {
		if key.Matches(msg, a.clear) && len(a.binder.Pending()) > 0 {
			a.binder.Reset()
			a.setStatus("", false)
			return nil
		}
		a.log.Debug("key rejected", zap.String("key", k), zap.Strings("pending", a.binder.Pending()))
		a.setStatus(err.Error(), true)
		return nil
	}
	if !a.binder.CanCommit() {
		a.setStatus("", false)
		return nil
	}
	o, err := a.binder.Commit()
	a.binder.Reset()
	if err != nil {
		a.setStatus(err.Error(), true)
		return nil
	}
	return a.apply(o)
}

// apply runs o on the machine. A session that goes inactive before the
// sentences run out is a broken contract and ends the program.
func (a *App) apply(o op.Operation) tea.Cmd {
	exhausted := a.machine.Exhausted()
	err := a.machine.Apply(a.ctx, o)
	switch {
	case errors.Is(err, annotate.ErrSessionInactive) && exhausted:
		a.setStatus("no more sentences; ctrl+c to quit", true)
	case errors.Is(err, annotate.ErrSessionInactive):
		a.log.Error("session closed underneath the annotator", zap.Stringer("op", o), zap.Error(err))
		a.err = err
		return tea.Quit
	case err != nil:
		a.log.Warn("operation failed", zap.Stringer("op", o), zap.Error(err))
		a.setStatus(err.Error(), true)
	case o.Kind == op.KindConfirmSentence && a.machine.Exhausted():
		a.setStatus("all sentences annotated", false)
	case o.Kind == op.KindConfirmSentence:
		a.setStatus("saved", false)
	default:
		a.setStatus("", false)
	}
	return nil
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

func (a *App) View() string {
	snap := a.machine.Snapshot()
	sections := []string{
		a.renderHeader(snap),
		"",
		RenderSentence(a.styles, snap, a.width),
		"",
		a.renderStatus(),
		a.styles.Footer.Render(a.help.ShortHelpView(a.bindings)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderHeader(snap annotate.Snapshot) string {
	parts := []string{a.styles.HeaderApp.Render("spantag")}
	if a.title != "" {
		parts = append(parts, a.title)
	}
	parts = append(parts, RenderLegend(a.styles, snap.Groups))
	line := strings.Join(parts, "  ")
	return a.styles.Header.Render(fit(line, a.width))
}

func (a *App) renderStatus() string {
	var parts []string
	if pending := a.binder.Pending(); len(pending) > 0 {
		shown := make([]string, len(pending))
		for i, k := range pending {
			shown[i] = binder.DisplayKey(k)
		}
		next := make([]string, 0)
		for _, k := range a.binder.ValidNext() {
			next = append(next, binder.DisplayKey(k))
		}
		parts = append(parts,
			a.styles.Pending.Render(strings.Join(shown, " ")),
			fmt.Sprintf("next: %s", strings.Join(next, " ")))
	}
	if a.status != "" {
		st := a.styles.Status
		if a.statusErr {
			st = a.styles.StatusErr
		}
		parts = append(parts, st.Render(a.status))
	}
	return fit(strings.Join(parts, "  "), a.width)
}

// Status returns the current status line text.
func (a *App) Status() string { return a.status }

// Err is the error that ended the program, if any.
func (a *App) Err() error { return a.err }
