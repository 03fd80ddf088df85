package client

import (
	"strings"
	"testing"

	"github.com/kestreledit/kestrel/internal/buffer"
	"github.com/kestreledit/kestrel/internal/diag"
	"github.com/kestreledit/kestrel/internal/hook"
	"github.com/kestreledit/kestrel/internal/option"
	"github.com/kestreledit/kestrel/internal/ui"
	"github.com/kestreledit/kestrel/internal/window"
)

func modeLineText(f *fixture) string {
	f.c.RedrawIfNeeded()
	return f.ui.LastStatus().Mode.Content()
}

func TestModeLineDefaultFormat(t *testing.T) {
	f := newFixture(t, buffer.NewScratch("*scratch*"))

	got := modeLineText(f)

	if !strings.HasPrefix(got, "*scratch*") {
		t.Errorf("modeline = %q, want bufname first", got)
	}
	trailer := " - client0@[" + f.registry.Session() + "]"
	if !strings.HasSuffix(got, trailer) {
		t.Errorf("modeline = %q, want trailer %q", got, trailer)
	}
	if !strings.Contains(got, " normal") {
		t.Errorf("modeline = %q, want the engine mode indicator", got)
	}
}

func TestModeLinePlaceholders(t *testing.T) {
	f := newFixture(t, buffer.NewScratch("*s*"))
	f.c.SetEnvVar("USER", "jane")
	f.options.SetModelineFmt("{client}/{env:USER}/{env:ABSENT}.")

	got := modeLineText(f)

	if !strings.HasPrefix(got, "client0/jane/.") {
		t.Errorf("modeline = %q, want expanded placeholders", got)
	}
}

func TestModeLineFormatError(t *testing.T) {
	var log strings.Builder

	f := &fixture{
		ui:       ui.NewNull(80, 24),
		engine:   &fakeEngine{modeLine: ui.NewDisplayLine("normal", ui.Face{})},
		registry: NewRegistry(),
		options:  option.NewStore(),
		hooks:    hook.NewRegistry(),
	}
	c, err := New(Config{
		Name:     "client0",
		UI:       f.ui,
		Engine:   f.engine,
		Window:   window.New(buffer.NewScratch("*s*"), 80, 24),
		Registry: f.registry,
		Options:  f.options,
		Log:      diag.New(diag.LevelError, &log, ""),
		OnInput:  func(ui.EventMode) {},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	f.c = c

	tests := []struct{ name, format string }{
		{"unknown placeholder", "{nonsense}"},
		{"unclosed placeholder", "{bufname"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.options.SetModelineFmt(tt.format)

			got := modeLineText(f)
			if !strings.Contains(got, "modelinefmt error, see diagnostics") {
				t.Errorf("modeline = %q, want the error placeholder", got)
			}
			if !strings.Contains(log.String(), tt.format) {
				t.Errorf("diagnostics = %q, want the failing format logged", log.String())
			}
		})
	}
}

func TestModeLineIndicators(t *testing.T) {
	buf := buffer.NewScratch("*s*")
	f := newFixture(t, buf)

	buf.InsertText(0, "edit")
	f.engine.recording = true
	f.engine.recordingReg = 'w'
	f.c.SetHooksDisabled(true)

	got := modeLineText(f)

	for _, indicator := range []string{"[+]", "[recording (w)]", "[no-hooks]"} {
		if !strings.Contains(got, indicator) {
			t.Errorf("modeline = %q, want %s", got, indicator)
		}
	}

	// Fixed order: modified before recording before no-hooks.
	if strings.Index(got, "[+]") > strings.Index(got, "[recording (w)]") {
		t.Errorf("modeline = %q, indicators out of order", got)
	}
}

func TestModeLineNewFileIndicator(t *testing.T) {
	buf, err := buffer.OpenFile(t.TempDir() + "/absent.txt")
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	f := newFixture(t, buf)

	if got := modeLineText(f); !strings.Contains(got, "[new file]") {
		t.Errorf("modeline = %q, want [new file]", got)
	}
}

func TestModeLineFifoIndicator(t *testing.T) {
	f := newFixture(t, buffer.NewFifo("*fifo*"))

	if got := modeLineText(f); !strings.Contains(got, "[fifo]") {
		t.Errorf("modeline = %q, want [fifo]", got)
	}
}

func TestHooksDisabledSuppressesHooks(t *testing.T) {
	f := newFixture(t, buffer.NewScratch("*s*"))

	fired := 0
	f.hooks.AddCatchAll(hook.Func(func(string, string, hook.Context) { fired++ }))

	f.c.SetHooksDisabled(true)
	f.c.ChangeBuffer(buffer.NewScratch("*other*"))

	if fired != 0 {
		t.Errorf("hooks fired %d times while disabled", fired)
	}
}
