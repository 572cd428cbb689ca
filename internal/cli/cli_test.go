package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	pkgio "github.com/matzehuels/squaremap/pkg/io"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/pipeline"
	"github.com/matzehuels/squaremap/pkg/treemap"
)

const portfolioCSV = `id,label,heat
AAPL,Apple,50
MSFT,Microsoft,30
NVDA,Nvidia,20
`

// newTestCLI returns a CLI that collects its output in a buffer, with a
// quiet logger and a config path that does not exist, so the user's own
// config never leaks into tests.
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := New(&out, io.Discard)
	c.ConfigPath = filepath.Join(t.TempDir(), "config.toml")
	return c, &out
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c, _ := newTestCLI(t)
	root := c.RootCommand()
	want := []string{"layout", "visualize", "render", "view", "serve", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty leaves default to config", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and duplicates", " txt , txt,json", []string{"txt", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/items.csv", "data/items"},
		{"", "data/items.layout.json", "data/items"},
		{"out.svg", "items.csv", "out"},
		{"out.layout.json", "items.csv", "out"},
		{"out", "items.csv", "out"},
		{"out.v2", "items.csv", "out.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestResolveOptionsPrecedence(t *testing.T) {
	c, _ := newTestCLI(t)
	cfg := "width = 300\nheight = 150\nstyle = \"heat\"\n"
	if err := os.WriteFile(c.ConfigPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{Width: 500}
	if err := c.resolveOptions(&opts); err != nil {
		t.Fatalf("resolveOptions: %v", err)
	}
	if opts.Width != 500 {
		t.Errorf("Width = %v, flag should win", opts.Width)
	}
	if opts.Height != 150 {
		t.Errorf("Height = %v, want 150 from config", opts.Height)
	}
	if opts.Style != "heat" {
		t.Errorf("Style = %q, want heat from config", opts.Style)
	}
	if opts.Palette != pipeline.DefaultPalette {
		t.Errorf("Palette = %q, want default", opts.Palette)
	}
}

func TestRunLayout(t *testing.T) {
	c, stdout := newTestCLI(t)
	input := writeInput(t, "portfolio.csv", portfolioCSV)

	opts := pipeline.Options{Width: 100, Height: 50}
	if err := c.resolveOptions(&opts); err != nil {
		t.Fatal(err)
	}
	if err := c.runLayout(context.Background(), input, "", opts, ""); err != nil {
		t.Fatalf("runLayout: %v", err)
	}

	out := strings.TrimSuffix(input, ".csv") + ".layout.json"
	l, err := pkgio.ImportLayout(out)
	if err != nil {
		t.Fatalf("ImportLayout: %v", err)
	}
	want := []treemap.Rect{{X: 0, Y: 0, Width: 50, Height: 50}, {X: 50, Y: 0, Width: 30, Height: 50}, {X: 80, Y: 0, Width: 20, Height: 50}}
	if len(l.Cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(l.Cells), len(want))
	}
	for i, cell := range l.Cells {
		if cell.Rect() != want[i] {
			t.Errorf("cell %s = %+v, want %+v", cell.ID, cell.Rect(), want[i])
		}
	}
	if l.Cells[0].Label != "Apple" {
		t.Errorf("label = %q, want Apple", l.Cells[0].Label)
	}

	summary := stdout.String()
	for _, want := range []string{"Layout complete", out, "3 cells", "worst aspect 2.50", "AAPL", "50.0%"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary is missing %q:\n%s", want, summary)
		}
	}
}

func TestRunLayoutWarnsAboutZeroArea(t *testing.T) {
	c, stdout := newTestCLI(t)
	input := writeInput(t, "disk.tiles", "src 40\nidle 0\ndocs 10\n")

	opts := pipeline.Options{}
	if err := c.resolveOptions(&opts); err != nil {
		t.Fatal(err)
	}
	if err := c.runLayout(context.Background(), input, "", opts, ""); err != nil {
		t.Fatalf("runLayout: %v", err)
	}
	if !strings.Contains(stdout.String(), "1 item(s) have no area: idle") {
		t.Errorf("missing zero-area warning:\n%s", stdout.String())
	}
}

func TestRunRenderToStdout(t *testing.T) {
	c, stdout := newTestCLI(t)
	input := writeInput(t, "portfolio.csv", portfolioCSV)

	opts := pipeline.Options{Formats: []string{"svg"}}
	if err := c.resolveOptions(&opts); err != nil {
		t.Fatal(err)
	}
	if err := c.runRender(context.Background(), input, "", opts, "-"); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "<svg") {
		t.Errorf("stdout = %.40q, want only the SVG document", stdout.String())
	}
}

func TestRunLayoutMsgpackOutput(t *testing.T) {
	c, _ := newTestCLI(t)
	input := writeInput(t, "portfolio.csv", portfolioCSV)
	out := filepath.Join(t.TempDir(), "portfolio.msgpack")

	opts := pipeline.Options{}
	if err := c.resolveOptions(&opts); err != nil {
		t.Fatal(err)
	}
	if err := c.runLayout(context.Background(), input, "", opts, out); err != nil {
		t.Fatalf("runLayout: %v", err)
	}
	l, err := pkgio.ImportLayout(out)
	if err != nil {
		t.Fatalf("ImportLayout: %v", err)
	}
	if len(l.Cells) != 3 || l.Width != pipeline.DefaultWidth {
		t.Errorf("layout = %d cells, width %v", len(l.Cells), l.Width)
	}
}

func TestRunLayoutInputFormatOverride(t *testing.T) {
	c, _ := newTestCLI(t)
	input := writeInput(t, "portfolio.data", "a 3\nb 1\n")
	out := filepath.Join(t.TempDir(), "out.layout.json")

	opts := pipeline.Options{}
	if err := c.resolveOptions(&opts); err != nil {
		t.Fatal(err)
	}
	if err := c.runLayout(context.Background(), input, "tiles", opts, out); err != nil {
		t.Fatalf("runLayout: %v", err)
	}
	if err := c.runLayout(context.Background(), input, "", opts, out); err == nil {
		t.Error("unknown extension without --input should fail")
	}
}

func TestRunRenderAndVisualize(t *testing.T) {
	c, _ := newTestCLI(t)
	input := writeInput(t, "portfolio.csv", portfolioCSV)
	base := filepath.Join(t.TempDir(), "chart")

	opts := pipeline.Options{Formats: []string{"svg", "txt", "json"}}
	if err := c.resolveOptions(&opts); err != nil {
		t.Fatal(err)
	}
	if err := c.runRender(context.Background(), input, "", opts, base); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	for _, ext := range []string{".svg", ".txt", ".layout.json"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing output %s: %v", base+ext, err)
		}
	}

	svg := base + "-again.svg"
	vopts := pipeline.Options{Formats: []string{"svg"}}
	if err := c.resolveOptions(&vopts); err != nil {
		t.Fatal(err)
	}
	if err := c.runVisualize(context.Background(), base+".layout.json", vopts, svg); err != nil {
		t.Fatalf("runVisualize: %v", err)
	}
	data, err := os.ReadFile(svg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("visualize output is not SVG")
	}
}

func TestWriteArtifactsRefusesToOverwriteInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "chart.layout.json")
	c, _ := newTestCLI(t)
	err := c.writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"json": []byte("{}")},
		formats:   []string{"json", "svg"},
		input:     input,
	})
	if err == nil || !strings.Contains(err.Error(), "overwrite") {
		t.Errorf("writeArtifacts() = %v, want overwrite refusal", err)
	}
}

func TestConfigInitCommand(t *testing.T) {
	c, _ := newTestCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"config", "init", "--config", c.ConfigPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	data, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !bytes.Contains(data, []byte("[server]")) {
		t.Errorf("config = %s, want a [server] table", data)
	}
}

func testViewModel(t *testing.T) viewModel {
	t.Helper()
	ds := dataset.Dataset{Title: "Portfolio", Items: []dataset.Item{
		{ID: "AAPL", Heat: 50},
		{ID: "MSFT", Heat: 30},
		{ID: "NVDA", Heat: 20},
	}}
	m := newViewModel(ds, treemap.Precise)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	return next.(viewModel)
}

func TestViewModelResize(t *testing.T) {
	m := testViewModel(t)
	if len(m.layout.Cells) != 3 {
		t.Fatalf("got %d cells, want 3", len(m.layout.Cells))
	}
	if m.layout.Width != 40 || m.layout.Height != 10*cellAspect {
		t.Errorf("frame = %vx%v, want 40x%v", m.layout.Width, m.layout.Height, 10*cellAspect)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 22})
	m = next.(viewModel)
	if m.layout.Width != 80 {
		t.Errorf("width after resize = %v, want 80", m.layout.Width)
	}

	view := m.View()
	if !strings.Contains(view, "AAPL") || !strings.Contains(view, "[1/3]") {
		t.Errorf("view missing selection status:\n%s", view)
	}
}

func TestViewModelSelection(t *testing.T) {
	m := testViewModel(t)

	press := func(m viewModel, k tea.KeyMsg) viewModel {
		next, _ := m.Update(k)
		return next.(viewModel)
	}
	tab := tea.KeyMsg{Type: tea.KeyTab}
	shiftTab := tea.KeyMsg{Type: tea.KeyShiftTab}

	m = press(m, tab)
	if m.selected != 1 {
		t.Errorf("after tab selected = %d, want 1", m.selected)
	}
	m = press(m, shiftTab)
	m = press(m, shiftTab)
	if m.selected != 2 {
		t.Errorf("shift+tab should wrap to 2, got %d", m.selected)
	}
	m = press(m, tab)
	if m.selected != 0 {
		t.Errorf("tab should wrap to 0, got %d", m.selected)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestViewModelTinyTerminal(t *testing.T) {
	m := testViewModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 10, Height: 1})
	m = next.(viewModel)
	if m.err != nil {
		t.Fatalf("tiny terminal should not fail: %v", m.err)
	}
	if got := m.View(); got != "loading…" {
		t.Errorf("View() = %q, want placeholder", got)
	}
}
