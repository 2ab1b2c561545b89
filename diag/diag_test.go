package diag

import (
	"strings"
	"testing"
)

func TestRedactorMasksSerials(t *testing.T) {
	r := NewRedactor([]string{"emulator-5554", "R58M123ABCD"})

	out := r.Apply("device emulator-5554 and R58M123ABCD are attached")
	if strings.Contains(out, "emulator-5554") {
		t.Errorf("serial not masked: %q", out)
	}
	if strings.Contains(out, "R58M123ABCD") {
		t.Errorf("serial not masked: %q", out)
	}
	if !strings.Contains(out, "em*********54") {
		t.Errorf("masked serial should keep first and last two characters: %q", out)
	}
}

func TestRedactorMasksAddresses(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		gone   []string
		intact []string
	}{
		{
			name:   "mac address",
			in:     "wlan0 link/ether 02:00:4C:4F:4F:50 brd ff:ff:ff:ff:ff:ff",
			gone:   []string{"02:00:4C:4F:4F:50"},
			intact: nil,
		},
		{
			name:   "ipv4 address",
			in:     "inet 192.168.1.42/24 scope global wlan0",
			gone:   []string{"192.168.1.42"},
			intact: nil,
		},
		{
			name:   "loopback preserved",
			in:     "inet 127.0.0.1/8 scope host lo",
			gone:   nil,
			intact: []string{"127.0.0.1"},
		},
	}

	r := NewRedactor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.Apply(tt.in)
			for _, s := range tt.gone {
				if strings.Contains(out, s) {
					t.Errorf("Apply(%q) still contains %q", tt.in, s)
				}
			}
			for _, s := range tt.intact {
				if !strings.Contains(out, s) {
					t.Errorf("Apply(%q) lost %q: %q", tt.in, s, out)
				}
			}
		})
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"emulator-5554", "em*********54"},
		{"abcd", "****"},
		{"ab", "**"},
		{"192.168.1.7", "19*******.7"},
	}
	for _, tt := range tests {
		if got := mask(tt.in); got != tt.want {
			t.Errorf("mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseGetprop(t *testing.T) {
	out := `[ro.product.model]: [Pixel 8]
[ro.build.version.sdk]: [34]
[ro.empty]: []
not a prop line`

	props := parseGetprop(out)
	if len(props) != 3 {
		t.Fatalf("parsed %d props, want 3: %v", len(props), props)
	}
	if props["ro.product.model"] != "Pixel 8" {
		t.Errorf("model = %q", props["ro.product.model"])
	}
	if props["ro.build.version.sdk"] != "34" {
		t.Errorf("sdk = %q", props["ro.build.version.sdk"])
	}
	if props["ro.empty"] != "" {
		t.Errorf("empty prop = %q", props["ro.empty"])
	}
}

func TestParseSettingsList(t *testing.T) {
	out := `adb_enabled=1
bluetooth_name=Pixel 8
multi=part=value

no_equals_line`

	settings := parseSettingsList(out)
	if len(settings) != 3 {
		t.Fatalf("parsed %d settings, want 3: %v", len(settings), settings)
	}
	if settings["adb_enabled"] != "1" {
		t.Errorf("adb_enabled = %q", settings["adb_enabled"])
	}
	if settings["multi"] != "part=value" {
		t.Errorf("value with equals sign = %q, want part=value", settings["multi"])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 4000); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 5000)
	got := truncate(long, 4000)
	if len(got) >= 5000 {
		t.Error("long text was not truncated")
	}
	if !strings.HasSuffix(got, "(truncated)") {
		t.Errorf("truncated text should be marked: %q", got[len(got)-30:])
	}
}
