package ui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/lectio/internal/controller"
	"github.com/five82/lectio/internal/form"
	"github.com/five82/lectio/internal/guideapi"
	"github.com/five82/lectio/internal/prefs"
	"github.com/five82/lectio/internal/selection"
	"github.com/five82/lectio/internal/source"
	"github.com/five82/lectio/internal/state"
	"github.com/five82/lectio/internal/submit"
)

// focus is the form element receiving keys.
type focus int

const (
	focusTitle focus = iota
	focusAudience
	focusModel
	focusFiles
	focusSubmit
	focusCount
)

// pickerStatus tracks the Drive picker's asynchronous setup.
type pickerStatus int

const (
	pickerNone pickerStatus = iota
	pickerLoading
	pickerReady
	pickerFailed
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *controller.Controller
	// Picker is set when the Drive picker is the file source. Its Init runs
	// in the background once the program starts.
	Picker    *source.Picker
	Store     *state.Store
	ServerURL string
	LogPath   string
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	Logger    *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *controller.Controller
	picker    *source.Picker
	store     *state.Store
	serverURL string
	logPath   string
	prefsPath string
	pollTick  time.Duration
	logger    *zap.Logger

	// UI state
	theme  Theme
	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool

	// Form state
	focus      focus
	title      textinput.Model
	chipCursor int

	// Overlays
	modal        Modal
	loading      bool
	spinner      spinner.Model
	submittedAt  time.Time
	showHelp     bool
	helpViewport viewport.Model

	// Status line
	notice   controller.Notice
	noticeAt time.Time

	// Picker readiness
	pickerState pickerStatus

	// Health
	snapshot state.Snapshot

	// Activity view
	showActivity     bool
	activity         viewport.Model
	activityLines    []string
	activityFollow   bool
	activityDetailed bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	title := textinput.New()
	title.Placeholder = "e.g. Romans: The Gospel Explained"
	title.CharLimit = 200
	title.Prompt = ""
	title.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		ctx:            ctx,
		ctrl:           opts.Controller,
		picker:         opts.Picker,
		store:          opts.Store,
		serverURL:      opts.ServerURL,
		logPath:        opts.LogPath,
		prefsPath:      prefsPath,
		pollTick:       pollTick,
		logger:         logger.Named("ui"),
		theme:          GetTheme(opts.ThemeName),
		keys:           DefaultKeyMap(),
		help:           help.New(),
		title:          title,
		spinner:        spin,
		activityFollow: true,
	}
	if m.picker != nil {
		m.pickerState = pickerLoading
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.picker != nil {
		cmds = append(cmds, initPickerCmd(m.ctx, m.picker))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.title.Width = min(formWidth, m.width) - 8
		m.help.Width = m.width
		m.activity.Width = m.width
		m.activity.Height = max(3, m.height-3)
		m.helpViewport.Height = max(5, m.height-4)
		m.updateActivityViewport()
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
			return m, cmd
		}
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case pickerReadyMsg:
		if msg.err != nil {
			m.pickerState = pickerFailed
			m.logger.Warn("picker init failed", zap.Error(msg.err))
			m.setNotice(controller.NoticeFor(msg.err))
			return m, nil
		}
		m.pickerState = pickerReady
		return m, nil

	case candidatesMsg:
		m.loading = false
		cand, notice := m.ctrl.Opened(msg.candidate, msg.err)
		if !notice.Empty() {
			m.setNotice(notice)
			return m, nil
		}
		m.modal = newBrowseModal(cand, m.theme, m.width, m.height)
		return m, nil

	case browseConfirmMsg:
		return m.handleBrowseConfirm(msg)

	case generateDoneMsg:
		m.ctrl.FinishSubmit(msg.resp, msg.err)
		if m.ctrl.Phase() == submit.PhaseSuccess {
			m.rememberChoices()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Busy() && !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clipboardMsg:
		if msg.err != nil {
			m.setNotice(controller.Notice{Level: controller.LevelError, Text: "Could not copy link: " + msg.err.Error()})
		} else {
			m.setNotice(controller.Notice{Level: controller.LevelInfo, Text: "Link copied to clipboard."})
		}
		return m, nil

	case browserMsg:
		if msg.err != nil {
			m.setNotice(controller.Notice{Level: controller.LevelError, Text: "Could not open browser: " + msg.err.Error()})
		}
		return m, nil

	case activityMsg:
		if msg.err != nil {
			m.logger.Debug("read activity log", zap.Error(msg.err))
			return m, nil
		}
		m.activityLines = msg.lines
		m.updateActivityViewport()
		return m, nil
	}

	var cmds []tea.Cmd
	if m.modal != nil {
		var (
			cmd  tea.Cmd
			done bool
		)
		m.modal, cmd, done = m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		}
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch {
	case m.showHelp:
		return m.renderHelp()
	case m.ctrl.Busy():
		return m.renderBusy()
	case m.ctrl.Phase() == submit.PhaseSuccess:
		return m.renderSuccess()
	case m.ctrl.Phase() == submit.PhaseFailure:
		return m.renderFailure()
	case m.modal != nil:
		return m.modal.View(m.theme, m.width, m.height)
	case m.showActivity:
		return m.renderActivity()
	}
	return m.renderMain()
}

// handleKey routes keys to the top-most surface.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.helpViewport, cmd = m.helpViewport.Update(msg)
		return m, cmd
	}

	// The busy overlay swallows input until the request finishes.
	if m.ctrl.Busy() {
		return m, nil
	}

	switch m.ctrl.Phase() {
	case submit.PhaseSuccess, submit.PhaseFailure:
		return m.handleResultKey(msg)
	}

	if m.modal != nil {
		var (
			cmd  tea.Cmd
			done bool
		)
		m.modal, cmd, done = m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.openHelp()
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs(func(p *prefs.Prefs) { p.Theme = m.theme.Name })
		m.updateActivityViewport()
		return m, nil
	case key.Matches(msg, m.keys.Activity):
		m.showActivity = !m.showActivity
		if m.showActivity {
			return m, readActivityCmd(m.logPath, !m.activityDetailed)
		}
		return m, nil
	}

	if m.showActivity {
		return m.handleActivityKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Browse):
		return m.browse()
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}
	return m.handleFormKey(msg)
}

// handleResultKey drives the success and error dialogs.
func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	out := m.ctrl.Outcome()
	switch {
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Escape):
		m.ctrl.Dismiss()
		m.resetForm()
		return m, nil
	case out.Phase == submit.PhaseSuccess && key.Matches(msg, m.keys.CopyLink):
		return m, copyCmd(out.FileURL)
	case out.Phase == submit.PhaseSuccess && key.Matches(msg, m.keys.OpenLink):
		return m, openCmd(out.FileURL)
	}
	return m, nil
}

// browse starts a listing, or explains why it cannot.
func (m Model) browse() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	if m.pickerState == pickerFailed {
		m.pickerState = pickerLoading
		m.setNotice(controller.NoticeFor(source.ErrNotReady))
		return m, initPickerCmd(m.ctx, m.picker)
	}
	fetch, notice := m.ctrl.Browse()
	if fetch == nil {
		m.setNotice(notice)
		return m, nil
	}
	m.loading = true
	m.clearNotice()
	return m, tea.Batch(m.spinner.Tick, listCandidatesCmd(m.ctx, fetch))
}

func (m Model) handleBrowseConfirm(msg browseConfirmMsg) (tea.Model, tea.Cmd) {
	modal, _ := m.modal.(*browseModal)
	if msg.candidate.Kind == source.KindPicker {
		picked := make([]guideapi.DriveFile, 0, len(msg.indices))
		for _, i := range msg.indices {
			picked = append(picked, msg.candidate.Files[i])
		}
		m.modal = nil
		m.setNotice(m.ctrl.ApplyPicked(picked))
		m.clampChipCursor()
		return m, nil
	}

	notice, err := m.ctrl.ConfirmModal(msg.candidate, msg.indices)
	if err != nil {
		// A rejected count keeps the checklist open so the user can adjust it.
		var verr *selection.ValidationError
		if errors.As(err, &verr) && modal != nil {
			modal.setNotice(notice.Text)
			return m, nil
		}
		m.modal = nil
		m.setNotice(controller.Notice{Level: controller.LevelError, Text: err.Error()})
		return m, nil
	}
	m.modal = nil
	m.clampChipCursor()
	return m, nil
}

// submit enters Submitting and fires the request.
func (m Model) submit() (tea.Model, tea.Cmd) {
	send, err := m.ctrl.BeginSubmit()
	if err != nil {
		switch {
		case errors.Is(err, form.ErrIncomplete):
			m.setNotice(controller.Notice{Level: controller.LevelWarning, Text: incompleteHint(m.ctrl)})
		default:
			m.setNotice(controller.Notice{Level: controller.LevelWarning, Text: err.Error()})
		}
		return m, nil
	}
	m.clearNotice()
	m.submittedAt = time.Now()
	return m, tea.Batch(m.spinner.Tick, generateCmd(m.ctx, send))
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.showActivity && m.activityFollow {
		cmds = append(cmds, readActivityCmd(m.logPath, !m.activityDetailed))
	}
	if !m.notice.Empty() && time.Since(m.noticeAt) > NoticeTTL {
		m.clearNotice()
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

func (m *Model) setNotice(n controller.Notice) {
	if n.Empty() {
		return
	}
	m.notice = n
	m.noticeAt = time.Now()
}

func (m *Model) clearNotice() { m.notice = controller.Notice{} }

// resetForm mirrors a controller reset in the widgets.
func (m *Model) resetForm() {
	m.title.SetValue("")
	m.chipCursor = 0
	m.setFocus(focusTitle)
}

// rememberChoices stores the submitted audience and model for the headless
// generate command.
func (m *Model) rememberChoices() {
	fields := m.ctrl.Fields()
	m.savePrefs(func(p *prefs.Prefs) {
		p.Audience = string(fields.Audience)
		p.Model = string(fields.Model)
	})
}

func (m *Model) savePrefs(edit func(*prefs.Prefs)) {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Load(m.prefsPath)
	edit(&p)
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs", zap.Error(err))
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type pickerReadyMsg struct{ err error }

type candidatesMsg struct {
	candidate source.Candidate
	err       error
}

type generateDoneMsg struct {
	resp guideapi.GenerateResponse
	err  error
}

type clipboardMsg struct{ err error }

type browserMsg struct{ err error }

type activityMsg struct {
	lines []string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func initPickerCmd(ctx context.Context, picker *source.Picker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, PickerInitTimeout)
		defer cancel()
		return pickerReadyMsg{err: picker.Init(ctx)}
	}
}

func listCandidatesCmd(ctx context.Context, fetch controller.Fetch) tea.Cmd {
	return func() tea.Msg {
		cand, err := fetch(ctx)
		return candidatesMsg{candidate: cand, err: err}
	}
}

func generateCmd(ctx context.Context, send controller.Send) tea.Cmd {
	return func() tea.Msg {
		resp, err := send(ctx)
		return generateDoneMsg{resp: resp, err: err}
	}
}

func copyCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(url)}
	}
}

func openCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return browserMsg{err: openBrowser(url)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
