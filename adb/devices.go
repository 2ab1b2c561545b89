package adb

import (
	"context"
	"fmt"
	"strings"
)

// Device is one row of `adb devices -l`.
type Device struct {
	Serial      string `json:"serial"`
	State       string `json:"state"`
	Model       string `json:"model,omitempty"`
	Product     string `json:"product,omitempty"`
	DeviceName  string `json:"device,omitempty"`
	TransportID string `json:"transportId,omitempty"`
	IsEmulator  bool   `json:"isEmulator"`
}

// Online reports whether the device is in state "device" and usable.
func (d Device) Online() bool {
	return d.State == "device"
}

// Label returns a short human-readable name for menus and error messages.
func (d Device) Label() string {
	if d.Model != "" {
		return fmt.Sprintf("%s (%s)", d.Serial, strings.ReplaceAll(d.Model, "_", " "))
	}
	return d.Serial
}

// Devices lists connected devices via `adb devices -l`.
func (e *Executor) Devices(ctx context.Context) ([]Device, error) {
	out, err := e.RunHost(ctx, "devices", "-l")
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %v", err)
	}
	return parseDevicesOutput(out), nil
}

// parseDevicesOutput parses `adb devices -l` output. The first line is the
// "List of devices attached" header; each following line is
// "<serial> <state> [model:X product:Y device:Z transport_id:N]".
func parseDevicesOutput(output string) []Device {
	var devices []Device

	lines := strings.Split(output, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if i == 0 && strings.HasPrefix(line, "List of devices") {
			continue
		}
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		d := Device{
			Serial:     parts[0],
			State:      parts[1],
			IsEmulator: strings.HasPrefix(parts[0], "emulator-"),
		}

		for _, part := range parts[2:] {
			switch {
			case strings.HasPrefix(part, "model:"):
				d.Model = strings.TrimPrefix(part, "model:")
			case strings.HasPrefix(part, "product:"):
				d.Product = strings.TrimPrefix(part, "product:")
			case strings.HasPrefix(part, "device:"):
				d.DeviceName = strings.TrimPrefix(part, "device:")
			case strings.HasPrefix(part, "transport_id:"):
				d.TransportID = strings.TrimPrefix(part, "transport_id:")
			}
		}

		devices = append(devices, d)
	}

	return devices
}

// DeviceProp returns a system property via getprop, cached per serial.
func (e *Executor) DeviceProp(ctx context.Context, serial, prop string) (string, error) {
	key := serial + "/" + prop
	if val, ok := e.props.Get(key); ok {
		return val, nil
	}

	out, err := e.Shell(ctx, serial, "getprop", prop)
	if err != nil {
		return "", err
	}

	val := strings.TrimSpace(out)
	e.props.Add(key, val)
	return val, nil
}

// FindDevice looks up a device by serial. Selecting an unauthorized device
// is an error telling the user to accept the debugging prompt on-device.
func (e *Executor) FindDevice(ctx context.Context, serial string) (*Device, error) {
	if serial == "" {
		return nil, fmt.Errorf("device serial is required")
	}

	devices, err := e.Devices(ctx)
	if err != nil {
		return nil, err
	}

	for i := range devices {
		if devices[i].Serial != serial {
			continue
		}
		if devices[i].State == "unauthorized" {
			return nil, fmt.Errorf("device %s is unauthorized: accept the USB debugging prompt on the device", serial)
		}
		return &devices[i], nil
	}

	return nil, fmt.Errorf("device not found: %s", serial)
}

// FindDeviceOrAutoSelect finds a device by serial, or auto-selects when
// serial is empty and exactly one device is online.
func (e *Executor) FindDeviceOrAutoSelect(ctx context.Context, serial string) (*Device, error) {
	if serial != "" {
		return e.FindDevice(ctx, serial)
	}

	devices, err := e.Devices(ctx)
	if err != nil {
		return nil, err
	}

	var online []Device
	for _, d := range devices {
		if d.Online() {
			online = append(online, d)
		}
	}

	if len(online) == 0 {
		return nil, fmt.Errorf("no online devices found")
	}
	if len(online) > 1 {
		return nil, fmt.Errorf("multiple devices found (%d), please specify --device with one of: %s",
			len(online), serialList(online))
	}

	return &online[0], nil
}

func serialList(devices []Device) string {
	var serials []string
	for _, d := range devices {
		serials = append(serials, d.Serial)
	}
	return fmt.Sprintf("[%s]", strings.Join(serials, ", "))
}

// Reboot reboots the device. Mode may be empty (normal), "recovery" or
// "bootloader".
func (e *Executor) Reboot(ctx context.Context, serial, mode string) error {
	args := []string{"reboot"}
	if mode != "" {
		args = append(args, mode)
	}
	_, err := e.Run(ctx, serial, args...)
	return err
}

// Summary collects the common identification properties of a device.
func (e *Executor) Summary(ctx context.Context, serial string) (map[string]string, error) {
	props := map[string]string{
		"model":           "ro.product.model",
		"brand":           "ro.product.brand",
		"manufacturer":    "ro.product.manufacturer",
		"android_version": "ro.build.version.release",
		"api_level":       "ro.build.version.sdk",
		"build_id":        "ro.build.id",
	}

	summary := map[string]string{"serial": serial}
	for name, prop := range props {
		val, err := e.DeviceProp(ctx, serial, prop)
		if err != nil {
			return summary, fmt.Errorf("failed to read %s: %v", prop, err)
		}
		summary[name] = val
	}
	return summary, nil
}
