package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/squaremap/pkg/dataset"
	"github.com/matzehuels/squaremap/pkg/errors"
	"github.com/matzehuels/squaremap/pkg/observability"
)

func sampleDataset() dataset.Dataset {
	return dataset.Dataset{
		Title: "Portfolio",
		Items: []dataset.Item{
			{ID: "AAPL", Heat: 50},
			{ID: "MSFT", Heat: 30},
			{ID: "NVDA", Heat: 20},
			{ID: "ZERO", Heat: 0},
		},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"msgpack", false},
		{"txt", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"heat", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateAlignment(t *testing.T) {
	for _, a := range []string{"precise", "half", "coarse"} {
		if err := ValidateAlignment(a); err != nil {
			t.Errorf("ValidateAlignment(%q) = %v", a, err)
		}
	}
	err := ValidateAlignment("sideways")
	if !errors.Is(err, errors.ErrCodeInvalidAlignment) {
		t.Errorf("ValidateAlignment(sideways) = %v, want INVALID_ALIGNMENT", err)
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" svg, png,,svg ,txt")
	want := []string{"svg", "png", "txt"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ParseFormats() = %v, want %v", got, want)
	}
	if got := ParseFormats(""); len(got) != 0 {
		t.Errorf("ParseFormats(\"\") = %v, want empty", got)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	var opts Options
	opts.SetLayoutDefaults()

	if opts.Width != DefaultWidth {
		t.Errorf("Width = %v, want %v", opts.Width, DefaultWidth)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height = %v, want %v", opts.Height, DefaultHeight)
	}
	if opts.Alignment != DefaultAlignment {
		t.Errorf("Alignment = %q, want %q", opts.Alignment, DefaultAlignment)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	var opts Options
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", opts.Style, DefaultStyle)
	}
	if opts.Palette != DefaultPalette {
		t.Errorf("Palette = %q, want %q", opts.Palette, DefaultPalette)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.TextCols != DefaultTextCols || opts.TextRows != DefaultTextRows {
		t.Errorf("text size = %dx%d, want %dx%d", opts.TextCols, opts.TextRows, DefaultTextCols, DefaultTextRows)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Width: 300, Palette: "heat"}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("first ValidateForRender: %v", err)
	}
	first := opts
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("second ValidateForRender: %v", err)
	}
	if first.Style != opts.Style || first.Palette != opts.Palette || first.Scale != opts.Scale {
		t.Error("ValidateForRender should be idempotent")
	}
	if opts.Width != 300 {
		t.Errorf("Width = %v, want 300", opts.Width)
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative width", Options{Width: -1, Height: 10}, errors.ErrCodeInvalidContainer},
		{"bad alignment", Options{Alignment: "diagonal"}, errors.ErrCodeInvalidAlignment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForLayout() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad style", Options{Style: "neon"}, errors.ErrCodeInvalidStyle},
		{"bad palette", Options{Palette: "rainbow"}, errors.ErrCodeInvalidPalette},
		{"bad scale", Options{Scale: -2}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForRender() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRunnerLayout(t *testing.T) {
	r := NewRunner(nil)
	l, err := r.Layout(context.Background(), sampleDataset(), Options{Width: 200, Height: 100, Title: "Override"})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if l.Title != "Override" {
		t.Errorf("Title = %q, want Override", l.Title)
	}
	if len(l.Cells) != 4 {
		t.Fatalf("got %d cells, want 4", len(l.Cells))
	}
	aapl, _ := l.Cell("AAPL")
	if aapl.X != 0 || aapl.Y != 0 || aapl.Width != 100 || aapl.Height != 100 {
		t.Errorf("AAPL = %+v, want (0,0,100,100)", aapl)
	}
	zero, _ := l.Cell("ZERO")
	if zero.Width != 0 {
		t.Errorf("ZERO width = %v, want 0", zero.Width)
	}
}

func TestRunnerLayoutMaxItems(t *testing.T) {
	r := NewRunner(nil)
	_, err := r.Layout(context.Background(), sampleDataset(), Options{MaxItems: 3})
	if !errors.Is(err, errors.ErrCodePayloadTooLarge) {
		t.Errorf("Layout() = %v, want PAYLOAD_TOO_LARGE", err)
	}
}

func TestRunnerLayoutInvalidDataset(t *testing.T) {
	r := NewRunner(nil)
	_, err := r.Layout(context.Background(), dataset.Dataset{}, Options{})
	if !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("Layout(empty) = %v, want EMPTY_INPUT", err)
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil)
	result, err := r.Execute(context.Background(), sampleDataset(), Options{
		Width:   400,
		Height:  200,
		Formats: []string{FormatSVG, FormatJSON, FormatMsgpack, FormatText},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.Items != 4 {
		t.Errorf("Stats.Items = %d, want 4", result.Stats.Items)
	}
	for _, f := range []string{FormatSVG, FormatJSON, FormatMsgpack, FormatText} {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if !bytes.HasPrefix(result.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact does not start with <svg")
	}
	if !bytes.Contains(result.Artifacts[FormatJSON], []byte(`"AAPL"`)) {
		t.Errorf("json artifact missing AAPL")
	}
}

func TestRunnerRenderCancelled(t *testing.T) {
	r := NewRunner(nil)
	l, err := r.Layout(context.Background(), sampleDataset(), Options{})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, l, Options{Formats: []string{FormatSVG, FormatJSON}}); err == nil {
		t.Error("Render with cancelled context should fail")
	}
}

func TestRunnerHooks(t *testing.T) {
	counters := observability.NewCounters()
	observability.SetPipelineHooks(counters)
	defer observability.Reset()

	r := NewRunner(nil)
	if _, err := r.Execute(context.Background(), sampleDataset(), Options{Formats: []string{FormatJSON, FormatSVG}}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := r.Layout(context.Background(), dataset.Dataset{}, Options{}); err == nil {
		t.Fatal("Layout of an empty dataset should fail")
	}

	s := counters.Snapshot()
	if s.Layouts != 1 || s.LayoutErrors != 1 {
		t.Errorf("layouts = %d, errors = %d, want 1 and 1", s.Layouts, s.LayoutErrors)
	}
	if s.Items != int64(len(sampleDataset().Items)) {
		t.Errorf("items = %d, want %d", s.Items, len(sampleDataset().Items))
	}
	if s.Renders[FormatJSON] != 1 || s.Renders[FormatSVG] != 1 || s.RenderBytes == 0 {
		t.Errorf("renders = %v (%d bytes), want one json and one svg", s.Renders, s.RenderBytes)
	}
}
