package server

import (
	"context"
	"encoding/json"
)

// HandlerFunc is the signature for JSON-RPC method handlers.
type HandlerFunc func(ctx context.Context, params json.RawMessage) (interface{}, error)

// methodRegistry maps method names to handler functions. Built per call so
// server.shutdown can close over the server instance.
func (s *Server) methodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"devices":         handleDevices,
		"device_info":     handleDeviceInfo,
		"apps_list":       handleAppsList,
		"apps_install":    handleAppsInstall,
		"apps_uninstall":  handleAppsUninstall,
		"apps_launch":     handleAppsLaunch,
		"apps_terminate":  handleAppsTerminate,
		"apps_cleardata":  handleAppsClearData,
		"logcat_snapshot": handleLogcatSnapshot,
		"screenshot":      handleScreenshot,
		"shell":           handleShell,
		"push":            handlePush,
		"pull":            handlePull,
		"forward_list":    handleForwardList,
		"workflows":       handleWorkflows,
		"workflow_run":    handleWorkflowRun,
		"health_report":   handleHealthReport,
		"server.shutdown": s.handleShutdown,
	}
}
