package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/montrey/sift/filter"
	"github.com/montrey/sift/mode"
	"github.com/montrey/sift/store"
	"github.com/montrey/sift/ui"
	"github.com/montrey/sift/view"
)

// Exit codes, dmenu-style: scripts branch on them.
const (
	exitOK          = 0
	exitCancel      = 1
	exitAlternate   = 2
	exitQuickSwitch = 10 // + slot
)

type appConfig struct {
	caseSensitive bool
	sortEnabled   bool
	fuzzyMatching bool
	levenshtein   bool
	autoSelect    bool
	threads       int
}

type model struct {
	db      *sql.DB
	engine  *filter.Engine
	view    *view.View
	list    ui.ListModel
	input   textinput.Model
	modes   []mode.Mode
	current int
	cfg     appConfig

	historySet map[string]bool
	outcome    *view.Outcome
	err        error
	width      int
	height     int
}

func (m *model) activeMode() mode.Mode { return m.modes[m.current] }

// refilter runs one synchronous filter pass and evaluates
// auto-select. Returns a quit command when auto-select commits.
func (m *model) refilter() tea.Cmd {
	m.engine.Refilter(m.activeMode(), m.input.Value())
	if out, fired := m.view.AfterPass(m.engine, m.cfg.autoSelect); fired {
		m.outcome = &out
		return tea.Quit
	}
	return nil
}

// switchMode cycles to the mode delta steps away and refilters from
// scratch.
func (m *model) switchMode(delta int) tea.Cmd {
	if len(m.modes) == 1 {
		return nil
	}
	m.current = (m.current + delta + len(m.modes)) % len(m.modes)
	if err := m.activeMode().Reload(); err != nil {
		m.err = err
	}
	m.engine.MarkReload()
	return m.refilter()
}

// completeSelection copies the selected row's text into the query
// box, the readline-style completion.
func (m *model) completeSelection() tea.Cmd {
	cursor, ok := m.view.Cursor(m.engine)
	if !ok {
		return nil
	}
	m.input.SetValue(m.activeMode().Display(m.engine.At(cursor)))
	m.input.CursorEnd()
	return m.refilter()
}

// trigger feeds one action to the selection state machine and quits
// on terminal outcomes. Mode-switch dispositions are handled in
// place; everything else ends the session.
func (m *model) trigger(a view.Action) tea.Cmd {
	out, terminal, handled := m.view.Trigger(m.engine, a)
	if !handled || !terminal {
		return nil
	}
	switch out.Disposition {
	case view.MenuNext:
		return m.switchMode(1)
	case view.MenuPrevious:
		return m.switchMode(-1)
	}
	m.outcome = &out
	return tea.Quit
}

func (m *model) toggleSort() tea.Cmd {
	m.engine.SetSort(!m.engine.Config().Sort)
	m.cfg.sortEnabled = m.engine.Config().Sort
	_ = store.SetBoolSetting(m.db, "sort", m.cfg.sortEnabled)
	return m.refilter()
}

func (m *model) toggleCase() tea.Cmd {
	m.engine.SetCaseSensitive(!m.engine.Config().CaseSensitive)
	m.cfg.caseSensitive = m.engine.Config().CaseSensitive
	_ = store.SetBoolSetting(m.db, "case_sensitive", m.cfg.caseSensitive)
	return m.refilter()
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if action, ok := keyAction(key); ok {
			cmd = m.trigger(action)
			return m, cmd
		}
		switch key {
		case "ctrl+s":
			cmd = m.toggleSort()
			return m, cmd
		case "ctrl+t":
			cmd = m.toggleCase()
			return m, cmd
		case "ctrl+o":
			cmd = m.completeSelection()
			return m, cmd
		default:
			oldValue := m.input.Value()
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
			if m.input.Value() != oldValue {
				cmds = append(cmds, m.refilter())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width
		listHeight := msg.Height - 3 // input + status + breathing room
		if listHeight > 0 {
			m.list.Width = msg.Width
			m.list.Height = listHeight
			m.view.SetPageSize(m.list.PageSize())
		}
	}

	return m, tea.Batch(cmds...)
}

// keyAction maps a key chord to a state-machine action.
func keyAction(key string) (view.Action, bool) {
	switch key {
	case "ctrl+c", "esc":
		return view.Act(view.Cancel), true
	case "up", "ctrl+p":
		return view.Act(view.RowUp), true
	case "down", "ctrl+n":
		return view.Act(view.RowDown), true
	case "shift+left":
		return view.Act(view.RowLeft), true
	case "shift+right":
		return view.Act(view.RowRight), true
	case "pgup":
		return view.Act(view.PagePrev), true
	case "pgdown":
		return view.Act(view.PageNext), true
	case "home":
		return view.Act(view.RowFirst), true
	case "end":
		return view.Act(view.RowLast), true
	case "tab":
		return view.Act(view.RowTab), true
	case "enter":
		return view.Act(view.Accept), true
	case "alt+enter":
		return view.Act(view.AcceptAlt), true
	case "ctrl+g":
		return view.Act(view.AcceptCustom), true
	case "ctrl+x":
		return view.Act(view.DeleteEntry), true
	case "ctrl+right":
		return view.Act(view.ModeNext), true
	case "ctrl+left":
		return view.Act(view.ModePrev), true
	case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9":
		return view.QuickSwitchTo(int(key[len(key)-1] - '1')), true
	}
	return view.Action{}, false
}

// matchingState is the one-glyph indicator next to the prompt:
// case-sensitivity and sorting combined.
func matchingState(cfg filter.Config) string {
	if cfg.CaseSensitive {
		if cfg.Sort {
			return "±"
		}
		return "-"
	}
	if cfg.Sort {
		return "+"
	}
	return " "
}

func (m model) View() string {
	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	header := fmt.Sprintf("%s%s %s",
		promptStyle.Render(m.activeMode().Prompt()),
		matchingState(m.engine.Config()),
		m.input.View(),
	)

	rows := make([]ui.Row, m.engine.FilteredCount())
	for p := range rows {
		text := m.activeMode().Display(m.engine.At(p))
		rows[p] = ui.Row{Text: text, Recent: m.historySet[text]}
	}
	cursor, hasCursor := m.view.Cursor(m.engine)

	body := m.list.View(rows, cursor, hasCursor, m.input.Value())
	if m.err != nil {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(m.err.Error()) + "\n" + body
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		m.statusView(),
	)
}

func (m model) statusView() string {
	var tabs []string
	for i, md := range m.modes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		if i == m.current {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
		}
		tabs = append(tabs, style.Render("["+md.Name()+"]"))
	}
	count := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("%d/%d", m.engine.FilteredCount(), m.engine.Count()))
	return lipgloss.JoinHorizontal(lipgloss.Left, strings.Join(tabs, " "), "  ", count)
}

func initialModel(db *sql.DB, engine *filter.Engine, modes []mode.Mode, cfg appConfig) model {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40

	historySet := make(map[string]bool)
	if history, err := store.GetHistory(db); err == nil {
		for _, h := range history {
			historySet[h.Entry] = true
		}
	}

	m := model{
		db:         db,
		engine:     engine,
		view:       view.New(),
		input:      ti,
		modes:      modes,
		cfg:        cfg,
		historySet: historySet,
		list:       ui.ListModel{Width: 80, Height: 20},
	}
	m.view.SetPageSize(m.list.PageSize())
	m.engine.Refilter(m.activeMode(), "")
	return m
}

func loadAppConfig(db *sql.DB) appConfig {
	return appConfig{
		caseSensitive: store.GetBoolSetting(db, "case_sensitive", false),
		sortEnabled:   store.GetBoolSetting(db, "sort", false),
		fuzzyMatching: store.GetBoolSetting(db, "fuzzy", false),
		levenshtein:   store.GetBoolSetting(db, "levenshtein_sort", false),
		autoSelect:    store.GetBoolSetting(db, "auto_select", false),
	}
}

func engineConfig(cfg appConfig) filter.Config {
	matchMode := filter.MatchSubstring
	if cfg.fuzzyMatching {
		matchMode = filter.MatchFuzzy
	}
	distanceMode := filter.DistanceFuzzy
	if cfg.levenshtein {
		distanceMode = filter.DistanceLevenshtein
	}
	return filter.Config{
		CaseSensitive: cfg.caseSensitive,
		Sort:          cfg.sortEnabled,
		MatchMode:     matchMode,
		DistanceMode:  distanceMode,
		Threads:       cfg.threads,
	}
}

func stdinIsPiped() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}

func buildModes(db *sql.DB, modeFlag, root, prompt string) ([]mode.Mode, error) {
	switch modeFlag {
	case "lines":
		return linesMode(prompt)
	case "files":
		files, err := mode.NewFiles(root)
		if err != nil {
			return nil, err
		}
		return []mode.Mode{files}, nil
	case "recent":
		recent, err := mode.NewRecent(db)
		if err != nil {
			return nil, err
		}
		return []mode.Mode{recent}, nil
	case "", "auto":
		if stdinIsPiped() {
			return linesMode(prompt)
		}
		recent, err := mode.NewRecent(db)
		if err != nil {
			return nil, err
		}
		files, err := mode.NewFiles(root)
		if err != nil {
			return nil, err
		}
		return []mode.Mode{recent, files}, nil
	}
	return nil, fmt.Errorf("unknown mode %q", modeFlag)
}

func linesMode(prompt string) ([]mode.Mode, error) {
	lines, err := mode.ReadLines(os.Stdin, prompt)
	if err != nil {
		return nil, err
	}
	return []mode.Mode{lines}, nil
}

// runOnce performs a single non-interactive pass and prints the best
// match.
func runOnce(engine *filter.Engine, md mode.Mode, query string) int {
	engine.Refilter(md, query)
	if engine.FilteredCount() == 0 {
		return exitCancel
	}
	fmt.Println(md.Display(engine.At(0)))
	return exitOK
}

// resolveOutcome turns the terminal outcome into output and an exit
// code, recording accepted entries in the history.
func resolveOutcome(db *sql.DB, m model) int {
	if m.outcome == nil {
		return exitCancel
	}
	out := *m.outcome
	md := m.activeMode()

	entry := ""
	if out.Candidate != view.NoCandidate {
		entry = md.Display(out.Candidate)
	}

	switch out.Disposition {
	case view.MenuOK:
		_ = store.RecordUse(db, entry)
		fmt.Println(entry)
		if out.Alternate {
			return exitAlternate
		}
		return exitOK
	case view.MenuCustomInput:
		raw := m.input.Value()
		if raw != "" {
			_ = store.RecordUse(db, raw)
		}
		fmt.Println(raw)
		if out.Alternate {
			return exitAlternate
		}
		return exitOK
	case view.MenuEntryDelete:
		_ = store.DeleteHistory(db, entry)
		return exitOK
	case view.MenuQuickSwitch:
		fmt.Println(entry)
		return exitQuickSwitch + out.Quick
	}
	return exitCancel
}

func main() {
	modeFlag := flag.String("mode", "auto", "candidate source: auto|lines|files|recent")
	rootFlag := flag.String("root", "", "root directory for files mode (default cwd)")
	promptFlag := flag.String("prompt", "pick", "prompt label for lines mode")
	threadsFlag := flag.Int("threads", 0, "filter worker threads (0 = one per CPU)")
	fuzzyFlag := flag.Bool("fuzzy", false, "fuzzy subsequence matching")
	sortFlag := flag.Bool("sort", false, "rank results by match quality")
	levFlag := flag.Bool("levenshtein-sort", false, "rank by edit distance even in fuzzy mode")
	caseFlag := flag.Bool("case-sensitive", false, "match case-sensitively")
	autoFlag := flag.Bool("auto-select", false, "commit automatically when one candidate remains")
	flag.Parse()

	db, err := store.InitDB(store.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	cfg := loadAppConfig(db)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fuzzy":
			cfg.fuzzyMatching = *fuzzyFlag
		case "sort":
			cfg.sortEnabled = *sortFlag
		case "levenshtein-sort":
			cfg.levenshtein = *levFlag
		case "case-sensitive":
			cfg.caseSensitive = *caseFlag
		case "auto-select":
			cfg.autoSelect = *autoFlag
		}
	})
	cfg.threads = *threadsFlag

	root := *rootFlag
	if root == "" {
		root, _ = os.Getwd()
	}

	modes, err := buildModes(db, *modeFlag, root, *promptFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build candidate source: %v\n", err)
		os.Exit(1)
	}

	engine, err := filter.NewEngine(engineConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start filter engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	// Non-interactive: query given as args, print the best match.
	if args := flag.Args(); len(args) > 0 {
		os.Exit(runOnce(engine, modes[0], strings.Join(args, " ")))
	}

	p := tea.NewProgram(initialModel(db, engine, modes, cfg), tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if m, ok := finalModel.(model); ok {
		os.Exit(resolveOutcome(db, m))
	}
	os.Exit(exitCancel)
}
