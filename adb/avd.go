package adb

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/rpnesseling/adbw/utils"
)

// AVDInfo describes an Android Virtual Device found on the host.
type AVDInfo struct {
	Name     string `json:"name"`
	AvdId    string `json:"avdId"`
	APILevel string `json:"apiLevel"`
	Version  string `json:"version"`
}

// apiLevelToVersion maps Android API levels to version strings
var apiLevelToVersion = map[string]string{
	"36": "16.0",
	"35": "15.0",
	"34": "14.0",
	"33": "13.0",
	"32": "12.1", // Android 12L
	"31": "12.0",
	"30": "11.0",
	"29": "10.0",
	"28": "9.0",
	"27": "8.1",
	"26": "8.0",
	"25": "7.1",
	"24": "7.0",
	"23": "6.0",
	"22": "5.1",
	"21": "5.0",
}

func convertAPILevelToVersion(apiLevel string) string {
	if version, ok := apiLevelToVersion[apiLevel]; ok {
		return version
	}
	// if no mapping found, return the API level as-is
	return apiLevel
}

// ListAVDs reads the AVD inventory from ~/.android/avd. Each top-level .ini
// carries a path= pointer to the .avd directory whose config.ini holds the
// display name and target.
func ListAVDs() ([]AVDInfo, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	pattern := filepath.Join(homeDir, ".android", "avd", "*.ini")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var avds []AVDInfo
	for _, iniFile := range matches {
		avdName := strings.TrimSuffix(filepath.Base(iniFile), ".ini")

		iniConfig, err := ini.Load(iniFile)
		if err != nil {
			utils.Verbose("Failed to read %s: %v", iniFile, err)
			continue
		}

		avdPath := iniConfig.Section("").Key("path").String()
		if avdPath == "" {
			continue
		}

		configPath := filepath.Join(avdPath, "config.ini")
		configData, err := ini.Load(configPath)
		if err != nil {
			utils.Verbose("Failed to read %s: %v", configPath, err)
			continue
		}

		displayName := configData.Section("").Key("avd.ini.displayname").String()
		if displayName == "" {
			displayName = strings.ReplaceAll(avdName, "_", " ")
		}

		// extract API level from target (e.g., "android-31" -> "31")
		target := configData.Section("").Key("target").String()
		apiLevel := strings.TrimPrefix(target, "android-")

		avdId := configData.Section("").Key("AvdId").String()
		if avdId == "" {
			avdId = avdName
		}

		avds = append(avds, AVDInfo{
			Name:     displayName,
			AvdId:    avdId,
			APILevel: apiLevel,
			Version:  convertAPILevelToVersion(apiLevel),
		})
	}

	return avds, nil
}

// OfflineAVDDevices returns AVDs that are not currently running as offline
// emulator entries, so they can be listed next to physical devices.
func OfflineAVDDevices(online []Device) []Device {
	avds, err := ListAVDs()
	if err != nil {
		utils.Verbose("Failed to read AVD inventory: %v", err)
		return nil
	}

	// running emulators report their AvdId via the emu console; match on the
	// model field which adb fills with the AVD name for emulator serials
	running := make(map[string]bool)
	for _, d := range online {
		if d.IsEmulator {
			running[d.Model] = true
			running[d.DeviceName] = true
		}
	}

	var offline []Device
	for _, avd := range avds {
		if running[avd.AvdId] || running[strings.ReplaceAll(avd.Name, " ", "_")] {
			continue
		}
		offline = append(offline, Device{
			Serial:     avd.AvdId,
			State:      "offline",
			Model:      avd.Name,
			IsEmulator: true,
		})
	}

	return offline
}
