// Package ui implements the interactive pager over a rendered document.
package ui

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-runewidth"

	"github.com/kerrian/replymd/internal/config"
	"github.com/kerrian/replymd/internal/render"
	"github.com/kerrian/replymd/internal/snippets"
)

// ============================================================================
// String Builder Pool - reduces GC pressure from rendering
// ============================================================================

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 { // Don't pool huge builders
		builderPool.Put(b)
	}
}

// ============================================================================
// Pager Model
// ============================================================================

// ansiRegex matches SGR escape sequences so search never sees styling
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// chrome rows reserved below the document: divider + status/input line
const chromeLines = 2

// pagerModel is the Bubble Tea model for the document pager
type pagerModel struct {
	width  int
	height int

	doc      string   // raw markdown source
	path     string   // source file, empty for stdin documents
	plain    bool     // render without styling or highlighting
	lines    []string // rendered styled lines
	search   []string // style-stripped lowercase copies of lines
	offset   int
	quitting bool

	// Search state
	searchInput textinput.Model
	searching   bool
	query       string
	matches     []int
	matchIdx    int

	// Snippet copying state
	writer  *snippets.Writer
	snips   []snippets.Snippet
	snipIdx int

	// Watch mode
	watcher *fsnotify.Watcher

	notice string // transient status message
	errMsg string
}

// newPagerModel creates a pager over the given document
func newPagerModel(doc, path string, plain bool) pagerModel {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.Prompt = "/"
	ti.CharLimit = 256

	m := pagerModel{
		doc:         doc,
		path:        path,
		plain:       plain,
		searchInput: ti,
		writer:      snippets.NewWriter(),
		snips:       snippets.Extract(doc),
		snipIdx:     -1,
	}
	m.rerender()
	return m
}

// rerender re-renders the document at the current width and rebuilds the
// search index
func (m *pagerModel) rerender() {
	width := config.GetWidth()
	if m.width > 0 && m.width < width {
		width = m.width
	}

	rendered := render.New().WithWidth(width).WithPlain(m.plain).Document(m.doc)
	m.lines = strings.Split(rendered, "\n")

	m.search = make([]string, len(m.lines))
	for i, line := range m.lines {
		m.search[i] = strings.ToLower(ansiRegex.ReplaceAllString(line, ""))
	}

	maxOffset := max(0, len(m.lines)-m.viewHeight())
	m.offset = clamp(m.offset, 0, maxOffset)
	if m.query != "" {
		m.findMatches()
	}
}

// setDocument swaps in new source text, keeping the scroll position where
// possible
func (m *pagerModel) setDocument(doc string) {
	m.doc = doc
	m.snips = snippets.Extract(doc)
	m.snipIdx = -1
	m.rerender()
}

// viewHeight returns the number of document rows currently visible
func (m pagerModel) viewHeight() int {
	return maxInt(m.height-chromeLines, 1)
}

// Init implements tea.Model
func (m pagerModel) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForChange(m.watcher, m.path)
	}
	return nil
}

// Update implements tea.Model
func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = msg.Width - 4
		m.rerender()
		return m, nil

	case fileChangedMsg:
		return m.handleFileChanged(msg)

	case watchErrMsg:
		m.errMsg = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes keyboard input in normal (non-search) mode
func (m pagerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.scroll(-1)
	case "down", "j":
		m.scroll(1)
	case "pgup", "b":
		m.scroll(-m.viewHeight())
	case "pgdown", "f", " ":
		m.scroll(m.viewHeight())
	case "u":
		m.scroll(-m.viewHeight() / 2)
	case "d":
		m.scroll(m.viewHeight() / 2)
	case "g", "home":
		m.offset = 0
	case "G", "end":
		m.offset = max(0, len(m.lines)-m.viewHeight())
	case "/":
		m.searching = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink
	case "n":
		m.nextMatch(1)
	case "N":
		m.nextMatch(-1)
	case "c":
		m.copyNextSnippet()
	case "r":
		return m.reload()
	case "o":
		if m.path != "" {
			openFileInEditor(m.path)
		}
	}

	return m, nil
}

// updateSearch processes input while the search prompt is open
func (m pagerModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.query = strings.ToLower(strings.TrimSpace(m.searchInput.Value()))
		m.findMatches()
		if len(m.matches) > 0 {
			m.jumpToMatch(0)
		} else if m.query != "" {
			m.notice = "no matches"
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// scroll moves the viewport by delta lines, clamping to the document
func (m *pagerModel) scroll(delta int) {
	maxOffset := max(0, len(m.lines)-m.viewHeight())
	m.offset = clamp(m.offset+delta, 0, maxOffset)
}

// findMatches records the indices of lines containing the query
func (m *pagerModel) findMatches() {
	m.matches = nil
	m.matchIdx = 0
	if m.query == "" {
		return
	}
	for i, line := range m.search {
		if strings.Contains(line, m.query) {
			m.matches = append(m.matches, i)
		}
	}
}

// nextMatch advances through matches in the given direction, wrapping
func (m *pagerModel) nextMatch(dir int) {
	if len(m.matches) == 0 {
		if m.query != "" {
			m.notice = "no matches"
		}
		return
	}
	m.matchIdx = (m.matchIdx + dir + len(m.matches)) % len(m.matches)
	m.jumpToMatch(m.matchIdx)
}

// jumpToMatch scrolls so the given match is visible
func (m *pagerModel) jumpToMatch(idx int) {
	m.matchIdx = idx
	line := m.matches[idx]
	maxOffset := max(0, len(m.lines)-m.viewHeight())
	m.offset = clamp(line, 0, maxOffset)
}

// copyNextSnippet cycles through the document's code blocks, copying each
func (m *pagerModel) copyNextSnippet() {
	if len(m.snips) == 0 {
		m.notice = "no code blocks"
		return
	}
	m.snipIdx = (m.snipIdx + 1) % len(m.snips)
	snip := m.snips[m.snipIdx]
	if err := m.writer.Output(snip, snippets.OutputCopy); err != nil {
		m.errMsg = err.Error()
		return
	}
	lang := snip.Lang
	if lang == "" {
		lang = "text"
	}
	m.notice = fmt.Sprintf("copied code block %d/%d (%s)", m.snipIdx+1, len(m.snips), lang)
}

// handleFileChanged reloads the document after a filesystem event and
// re-arms the watcher
func (m pagerModel) handleFileChanged(_ fileChangedMsg) (tea.Model, tea.Cmd) {
	model, _ := m.reload()
	pm := model.(pagerModel)
	if pm.errMsg == "" {
		pm.notice = "file changed • reloaded"
	}
	if pm.watcher != nil {
		return pm, waitForChange(pm.watcher, pm.path)
	}
	return pm, nil
}

// reload re-reads the source file and re-renders
func (m pagerModel) reload() (tea.Model, tea.Cmd) {
	if m.path == "" {
		return m, nil
	}
	data, err := os.ReadFile(m.path)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.errMsg = ""
	m.setDocument(string(data))
	m.notice = "reloaded"
	return m, nil
}

// View implements tea.Model
func (m pagerModel) View() string {
	if m.quitting {
		return ""
	}

	height := m.viewHeight()
	end := min(m.offset+height, len(m.lines))

	b := getBuilder()
	defer putBuilder(b)

	for i := m.offset; i < end; i++ {
		b.WriteString(m.lines[i])
		b.WriteByte('\n')
	}
	// Pad short documents so the chrome stays pinned to the bottom
	for i := end - m.offset; i < height; i++ {
		b.WriteByte('\n')
	}

	width := maxInt(m.width, 1)
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteByte('\n')

	if m.searching {
		b.WriteString(m.searchInput.View())
	} else {
		b.WriteString(m.renderStatus(width))
	}

	return b.String()
}

// renderStatus renders the bottom status line
func (m pagerModel) renderStatus(width int) string {
	name := m.path
	if name == "" {
		name = "(stdin)"
	}
	name = runewidth.Truncate(name, maxInt(width/3, 8), "…")

	position := fmt.Sprintf("%d-%d/%d", m.offset+1, min(m.offset+m.viewHeight(), len(m.lines)), len(m.lines))

	var extra string
	switch {
	case m.errMsg != "":
		extra = styles.Error.Render(m.errMsg)
	case m.notice != "":
		extra = styles.Notice.Render(m.notice)
	case len(m.matches) > 0:
		extra = styles.Status.Render(fmt.Sprintf("match %d/%d", m.matchIdx+1, len(m.matches)))
	default:
		extra = styles.Status.Render("/ search • c copy • r reload • q quit")
	}

	return styles.Path.Render(name) + " " + styles.Status.Render(position) + "  " + extra
}

// ============================================================================
// Run
// ============================================================================

// needsTTY reports whether a stdio handle with the given mode must be
// replaced by /dev/tty for interactive use. True whenever the handle is
// not a character device: a pipe, a regular file, or an exhausted stdin
// after the document was read from it.
func needsTTY(mode os.FileMode) bool {
	return mode&os.ModeCharDevice == 0
}

// getTTY returns file handles for TUI input/output
// Uses /dev/tty to bypass shell pipes and command substitution. Input and
// output are checked independently: `cat reply.md | replymd -p` leaves
// stdout on the terminal while stdin is a drained pipe, and handing that
// pipe to the TUI would make it deaf to every key.
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()
	in, out = os.Stdin, os.Stdout

	if fileInfo, _ := os.Stdout.Stat(); needsTTY(fileInfo.Mode()) {
		// stdout is NOT a terminal - we're being captured
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr // Last resort fallback
		} else {
			out = tty
			closers = append(closers, func() { tty.Close() })
		}

		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))
	}

	if fileInfo, _ := os.Stdin.Stat(); needsTTY(fileInfo.Mode()) {
		// stdin is a pipe (already read to EOF) or a file - key events
		// must come from the terminal
		tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err == nil {
			in = tty
			closers = append(closers, func() { tty.Close() })
		}
	}

	return in, out, func() {
		for _, c := range closers {
			c()
		}
	}
}

// Run launches the pager over doc. path may be empty for stdin documents;
// plain disables styling; when watch is set the source file is watched
// and reloaded on change.
func Run(doc, path string, plain, watch bool) error {
	m := newPagerModel(doc, path, plain)

	if watch && path != "" {
		w, err := newWatcher(path)
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		defer w.Close()
		m.watcher = w
	}

	ttyIn, ttyOut, cleanup := getTTY()
	defer cleanup()
	RefreshStyles() // Refresh after getTTY sets up the renderer
	render.RefreshStyles()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(ttyOut), tea.WithInput(ttyIn))
	_, err := p.Run()
	return err
}

// ============================================================================
// Helpers
// ============================================================================

// clamp restricts v to the range [minV, maxV]
func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// maxInt returns the larger of a and b
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// openFileInEditor opens the source file in the configured editor or the
// system default
func openFileInEditor(filePath string) {
	var cmd *exec.Cmd

	if editor := config.GetEditor(); editor != "" {
		cmd = exec.Command(editor, filePath)
	} else {
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", filePath)
		case "windows":
			cmd = exec.Command("cmd", "/c", "start", "", filePath)
		default: // linux, freebsd, etc.
			cmd = exec.Command("xdg-open", filePath)
		}
	}
	_ = cmd.Start()
}
