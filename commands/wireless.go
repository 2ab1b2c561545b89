package commands

import (
	"context"
	"fmt"

	"github.com/rpnesseling/adbw/adb"
)

// WifiConnectCommand connects to a device over TCP/IP. A bare IP gets the
// default port appended.
func WifiConnectCommand(ctx context.Context, hostport string) *CommandResponse {
	if hostport == "" {
		return NewErrorResponse(fmt.Errorf("a device address is required, e.g. 192.168.1.42:5555"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}

	out, err := exec.ConnectTCP(ctx, hostport)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": out,
	})
}

// WifiDisconnectCommand drops a TCP/IP connection; with an empty hostport
// all wireless connections are dropped.
func WifiDisconnectCommand(ctx context.Context, hostport string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}

	out, err := exec.Disconnect(ctx, hostport)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": out,
	})
}

// WifiPairCommand pairs with a device showing a Wi-Fi pairing code.
func WifiPairCommand(ctx context.Context, hostport, code string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}

	out, err := exec.Pair(ctx, hostport, code)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": out,
	})
}

// WifiEnableCommand switches the USB-attached device to TCP/IP mode and
// reports the address to connect to.
func WifiEnableCommand(ctx context.Context, device string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	if _, err := exec.TCPIPMode(ctx, dev.Serial, adb.DefaultTCPIPPort); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to enable tcpip mode: %v", err))
	}

	ip, err := exec.DeviceIP(ctx, dev.Serial)
	if err != nil {
		return NewSuccessResponse(map[string]interface{}{
			"message": fmt.Sprintf("TCP/IP mode enabled on %s, could not determine the device IP: %v", dev.Serial, err),
		})
	}
	return NewSuccessResponse(map[string]interface{}{
		"address": fmt.Sprintf("%s:%d", ip, adb.DefaultTCPIPPort),
		"message": fmt.Sprintf("TCP/IP mode enabled, connect with: adbw wifi connect %s:%d", ip, adb.DefaultTCPIPPort),
	})
}
