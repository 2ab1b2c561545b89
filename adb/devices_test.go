package adb

import (
	"testing"
)

func TestParseDevicesOutput(t *testing.T) {
	output := `List of devices attached
R5CR1234567            device usb:1-1 product:r8quew model:SM_S901B device:r8q transport_id:2
emulator-5554          device product:sdk_gphone64_arm64 model:sdk_gphone64_arm64 device:emu64a transport_id:1
0A081JEC210987         unauthorized usb:1-2 transport_id:3
192.168.1.23:5555      offline product:lynx model:Pixel_7a device:lynx transport_id:4

`

	devices := parseDevicesOutput(output)
	if len(devices) != 4 {
		t.Fatalf("expected 4 devices, got %d", len(devices))
	}

	first := devices[0]
	if first.Serial != "R5CR1234567" {
		t.Errorf("Serial = %q, want %q", first.Serial, "R5CR1234567")
	}
	if first.State != "device" {
		t.Errorf("State = %q, want %q", first.State, "device")
	}
	if first.Model != "SM_S901B" {
		t.Errorf("Model = %q, want %q", first.Model, "SM_S901B")
	}
	if first.Product != "r8quew" {
		t.Errorf("Product = %q, want %q", first.Product, "r8quew")
	}
	if first.TransportID != "2" {
		t.Errorf("TransportID = %q, want %q", first.TransportID, "2")
	}
	if first.IsEmulator {
		t.Error("physical device flagged as emulator")
	}

	if !devices[1].IsEmulator {
		t.Error("emulator-5554 not flagged as emulator")
	}
	if devices[2].State != "unauthorized" {
		t.Errorf("State = %q, want %q", devices[2].State, "unauthorized")
	}
	if devices[3].State != "offline" {
		t.Errorf("State = %q, want %q", devices[3].State, "offline")
	}
}

func TestParseDevicesOutput_Empty(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"header only", "List of devices attached\n"},
		{"header and blank lines", "List of devices attached\n\n\n"},
		{"empty string", ""},
		{"daemon banner", "* daemon not running; starting now at tcp:5037\n* daemon started successfully\nList of devices attached\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if devices := parseDevicesOutput(tt.output); len(devices) != 0 {
				t.Errorf("expected no devices, got %d", len(devices))
			}
		})
	}
}

func TestDeviceOnline(t *testing.T) {
	tests := []struct {
		state string
		want  bool
	}{
		{"device", true},
		{"offline", false},
		{"unauthorized", false},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			d := Device{State: tt.state}
			if got := d.Online(); got != tt.want {
				t.Errorf("Online() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeviceLabel(t *testing.T) {
	tests := []struct {
		name   string
		device Device
		want   string
	}{
		{"with model", Device{Serial: "abc123", Model: "Pixel_7a"}, "abc123 (Pixel 7a)"},
		{"without model", Device{Serial: "abc123"}, "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRouteSrc(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			"wlan route",
			"192.168.1.0/24 dev wlan0 proto kernel scope link src 192.168.1.23",
			"192.168.1.23",
		},
		{
			"multiple routes",
			"default via 10.0.0.1 dev rmnet0\n192.168.1.0/24 dev wlan0 proto kernel scope link src 192.168.1.23",
			"192.168.1.23",
		},
		{"no src", "default via 10.0.0.1 dev rmnet0", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRouteSrc(tt.output); got != tt.want {
				t.Errorf("parseRouteSrc() = %q, want %q", got, tt.want)
			}
		})
	}
}
