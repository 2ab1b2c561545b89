package diag

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/rpnesseling/adbw/adb"
	"github.com/rpnesseling/adbw/apk"
	"github.com/rpnesseling/adbw/config"
	"github.com/rpnesseling/adbw/utils"
)

// DoctorCheck is one prerequisite probe. Critical failures should make the
// process exit non-zero.
type DoctorCheck struct {
	Name     string `json:"name"`
	OK       bool   `json:"ok"`
	Critical bool   `json:"critical"`
	Detail   string `json:"detail"`
}

// RunDoctor verifies the tool's prerequisites: the adb binary, aapt, the
// working directory, the store directory and the active configuration.
func RunDoctor(ctx context.Context, cfg *config.Config) []DoctorCheck {
	var checks []DoctorCheck

	adbCheck := DoctorCheck{Name: "adb binary", Critical: true}
	if path, err := adb.Resolve(cfg.ADBPath); err != nil {
		adbCheck.Detail = err.Error()
	} else {
		exec := adb.NewWithPath(path)
		if version, err := exec.Version(ctx); err != nil {
			adbCheck.Detail = fmt.Sprintf("%s (version check failed: %v)", path, err)
		} else {
			adbCheck.OK = true
			adbCheck.Detail = fmt.Sprintf("%s (%s)", path, version)
		}
	}
	checks = append(checks, adbCheck)

	aaptCheck := DoctorCheck{Name: "aapt binary"}
	if path, err := apk.ResolveAapt(cfg.AaptPath); err != nil {
		aaptCheck.Detail = "not found, apk inspection is unavailable"
	} else {
		aaptCheck.OK = true
		aaptCheck.Detail = path
	}
	checks = append(checks, aaptCheck)

	cwdCheck := DoctorCheck{Name: "working directory writable"}
	if cwd, err := os.Getwd(); err != nil {
		cwdCheck.Detail = err.Error()
	} else if !utils.IsWritableDir(cwd) {
		cwdCheck.Detail = fmt.Sprintf("%s is not writable, reports and screenshots cannot be saved here", cwd)
	} else {
		cwdCheck.OK = true
		cwdCheck.Detail = cwd
	}
	checks = append(checks, cwdCheck)

	storeCheck := DoctorCheck{Name: "store directory writable", Critical: true}
	if err := utils.EnsureDir(cfg.StoreDir); err != nil {
		storeCheck.Detail = err.Error()
	} else if !utils.IsWritableDir(cfg.StoreDir) {
		storeCheck.Detail = fmt.Sprintf("%s is not writable", cfg.StoreDir)
	} else {
		storeCheck.OK = true
		storeCheck.Detail = cfg.StoreDir
	}
	checks = append(checks, storeCheck)

	checks = append(checks,
		DoctorCheck{Name: "config", OK: true, Detail: cfg.Source()},
		DoctorCheck{Name: "host", OK: true, Detail: runtime.GOOS + "/" + runtime.GOARCH},
	)

	return checks
}

// CriticalFailure reports whether any critical check failed.
func CriticalFailure(checks []DoctorCheck) bool {
	for _, c := range checks {
		if c.Critical && !c.OK {
			return true
		}
	}
	return false
}
