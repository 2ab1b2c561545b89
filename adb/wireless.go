package adb

import (
	"context"
	"fmt"
	"strings"
)

// DefaultTCPIPPort is the port `adb tcpip` listens on by convention.
const DefaultTCPIPPort = 5555

// ConnectTCP connects to a device over the network. adb exits 0 even when
// the connection fails, so the output text decides.
func (e *Executor) ConnectTCP(ctx context.Context, hostport string) (string, error) {
	if !strings.Contains(hostport, ":") {
		hostport = fmt.Sprintf("%s:%d", hostport, DefaultTCPIPPort)
	}

	out, err := e.RunHost(ctx, "connect", hostport)
	if err != nil {
		return out, err
	}
	lower := strings.ToLower(out)
	if strings.Contains(lower, "failed to connect") || strings.Contains(lower, "cannot connect") {
		return out, fmt.Errorf("failed to connect to %s: %s", hostport, out)
	}
	return out, nil
}

// Disconnect drops a network device connection.
func (e *Executor) Disconnect(ctx context.Context, hostport string) (string, error) {
	args := []string{"disconnect"}
	if hostport != "" {
		args = append(args, hostport)
	}
	return e.RunHost(ctx, args...)
}

// Pair pairs with a device in wireless debugging pairing mode.
func (e *Executor) Pair(ctx context.Context, hostport, code string) (string, error) {
	if hostport == "" || code == "" {
		return "", fmt.Errorf("pairing host:port and code are required")
	}
	out, err := e.RunHost(ctx, "pair", hostport, code)
	if err != nil {
		return out, err
	}
	if strings.Contains(strings.ToLower(out), "failed") {
		return out, fmt.Errorf("pairing with %s failed: %s", hostport, out)
	}
	return out, nil
}

// TCPIPMode switches a USB-connected device to TCP/IP debugging on the given
// port (default 5555).
func (e *Executor) TCPIPMode(ctx context.Context, serial string, port int) (string, error) {
	if port <= 0 {
		port = DefaultTCPIPPort
	}
	return e.Run(ctx, serial, "tcpip", fmt.Sprintf("%d", port))
}

// DeviceIP extracts the device's Wi-Fi address from `ip route` output, used
// after enabling tcpip mode to tell the user what to connect to.
func (e *Executor) DeviceIP(ctx context.Context, serial string) (string, error) {
	out, err := e.Shell(ctx, serial, "ip", "route")
	if err != nil {
		return "", err
	}

	ip := parseRouteSrc(out)
	if ip == "" {
		return "", fmt.Errorf("no device IP found in ip route output")
	}
	return ip, nil
}

// parseRouteSrc finds the first "src <addr>" pair in ip route output, e.g.
// "192.168.1.0/24 dev wlan0 proto kernel scope link src 192.168.1.23".
func parseRouteSrc(out string) string {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		for i, f := range fields {
			if f == "src" && i+1 < len(fields) {
				return fields[i+1]
			}
		}
	}
	return ""
}
