package log

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{" warn ", LevelWarn},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{" text\n", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFormat(tt.in); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevels_RoundTrip(t *testing.T) {
	names := slices.Collect(Levels())
	if want := []string{"trace", "debug", "info", "warn", "error"}; !slices.Equal(names, want) {
		t.Fatalf("Levels() = %v, want %v", names, want)
	}

	for _, name := range names {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("ParseLevel(%q).String() = %q", name, got)
		}
	}
}

func TestFormats_RoundTrip(t *testing.T) {
	for name := range Formats() {
		if got := ParseFormat(name).String(); got != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, got)
		}
	}
}

func TestConfig_Options(t *testing.T) {
	c := makeConfig(nil,
		WithLevel(LevelDebug),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
	)

	if c.level != LevelDebug {
		t.Errorf("level = %v, want %v", c.level, LevelDebug)
	}

	if c.format != FormatJSON {
		t.Errorf("format = %v, want %v", c.format, FormatJSON)
	}

	if !c.caller {
		t.Error("caller = false, want true")
	}

	if c.pretty {
		t.Error("pretty = true, want false")
	}

	if c.output == nil {
		t.Error("nil writer was not replaced")
	}
}

func TestConfig_Defaults(t *testing.T) {
	c := makeConfig(nil)

	if c.level != DefaultLevel || c.format != DefaultFormat ||
		c.caller != DefaultCaller || c.pretty != DefaultPretty {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestConfig_formatTime(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"rfc3339", "RFC3339", "2023-10-15T14:30:45Z"},
		{"rfc3339 nano", "RFC3339Nano", "2023-10-15T14:30:45.123456789Z"},
		{"kitchen", "kitchen", "2:30PM"},
		{"custom", "2006-01-02", "2023-10-15"},
		{"unknown is verbatim", "UNKNOWN_FORMAT", "UNKNOWN_FORMAT"},
		{"none", "none", ""},
		{"empty", "", ""},
		{"blank", "   \t  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := WithTimeLayout(tt.layout)(config{})
			if got := c.formatTime(now); got != tt.want {
				t.Errorf("formatTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_replaceAttr_TraceLevel(t *testing.T) {
	var buf strings.Builder

	l := Make(&buf,
		WithLevel(LevelTrace),
		WithPretty(false),
		WithTimeLayout("none"),
	)
	l.Trace("deep")

	if got := buf.String(); !strings.Contains(got, "level=TRACE") {
		t.Errorf("output %q does not name the trace level", got)
	}

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("output %q has a timestamp", buf.String())
	}
}

func BenchmarkConfig_formatTime(b *testing.B) {
	c := WithTimeLayout("RFC3339")(config{})
	now := time.Now()

	for b.Loop() {
		_ = c.formatTime(now)
	}
}
