// Package commands implements the operations behind the CLI, the menu and
// the JSON-RPC server. Every command returns a CommandResponse so callers
// can render text or JSON uniformly.
package commands

import (
	"context"
	"fmt"

	"github.com/rpnesseling/adbw/adb"
	"github.com/rpnesseling/adbw/config"
	"github.com/rpnesseling/adbw/diag"
	"github.com/rpnesseling/adbw/store"
)

// CommandResponse is the standardized response format for all commands.
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response.
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

// package state, set once at startup via Configure
var (
	conf    *config.Config
	stores  *store.Store
	adbExec *adb.Executor
	adbErr  error
)

// Configure wires the command layer to the loaded configuration. The adb
// binary is resolved here; commands that need it surface the resolution
// error so adb-independent commands (doctor, stores) keep working.
func Configure(c *config.Config) {
	conf = c
	stores = store.New(c.StoreDir)
	adbExec, adbErr = adb.New(c.ADBPath)
}

// Config returns the active configuration.
func Config() *config.Config {
	return conf
}

// Stores returns the persisted store handle.
func Stores() *store.Store {
	return stores
}

// Exec returns the adb executor, or the resolution error when the binary
// could not be found.
func Exec() (*adb.Executor, error) {
	if adbExec == nil {
		if adbErr != nil {
			return nil, adbErr
		}
		return nil, fmt.Errorf("command layer is not configured")
	}
	return adbExec, nil
}

// ResolveDevice turns a --device value (serial or alias, possibly empty)
// into a connected device. Aliases are resolved first; an empty value
// auto-selects the single online device.
func ResolveDevice(ctx context.Context, serialOrAlias string) (*adb.Device, error) {
	exec, err := Exec()
	if err != nil {
		return nil, err
	}
	serial := stores.Resolve(serialOrAlias)
	return exec.FindDeviceOrAutoSelect(ctx, serial)
}

// redactHook returns the text masker for report output, or nil when
// redaction is disabled. The masker knows the serials of all currently
// attached devices.
func redactHook(ctx context.Context) func(string) string {
	if conf == nil || !conf.RedactEnabled {
		return nil
	}
	exec, err := Exec()
	if err != nil {
		return nil
	}
	devs, err := exec.Devices(ctx)
	if err != nil {
		return nil
	}
	serials := make([]string, 0, len(devs))
	for _, d := range devs {
		serials = append(serials, d.Serial)
	}
	return diag.NewRedactor(serials).Apply
}
