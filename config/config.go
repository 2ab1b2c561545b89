// Package config loads tool configuration from an ini file with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"

	"github.com/rpnesseling/adbw/utils"
	"gopkg.in/ini.v1"
)

const (
	// SignatureModeConservative only warns on explicit signature mismatch output
	SignatureModeConservative = "conservative"
	// SignatureModeStrict additionally treats update-incompatible and any
	// certificate mention as a signature problem
	SignatureModeStrict = "strict"
)

// Config holds the resolved tool configuration
type Config struct {
	ADBPath            string
	AaptPath           string
	StoreDir           string
	DefaultLogTag      string
	RedactEnabled      bool
	SignatureCheckMode string
	ServerListen       string
	ServerCORS         bool

	source string
}

func defaults() *Config {
	return &Config{
		DefaultLogTag:      "*",
		SignatureCheckMode: SignatureModeConservative,
		ServerListen:       "localhost:12000",
		StoreDir:           defaultStoreDir(),
	}
}

func defaultStoreDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		// last resort, keeps stores usable on odd environments
		return ".adbw"
	}
	return filepath.Join(base, "adbw")
}

// Load reads configuration from explicitPath if given, otherwise from
// ./adbw.ini, otherwise from the user config dir. A missing file is not
// an error; the defaults apply. Environment variables override file values.
func Load(explicitPath string) (*Config, error) {
	cfg := defaults()

	path := findConfigFile(explicitPath)
	if path != "" {
		file, err := ini.Load(path)
		if err != nil {
			return nil, err
		}
		cfg.applyFile(file)
		cfg.source = path
		utils.Verbose("Loaded config from %s", path)
	}

	cfg.applyEnv()

	if cfg.SignatureCheckMode != SignatureModeConservative && cfg.SignatureCheckMode != SignatureModeStrict {
		utils.Warn("Unknown signature_check_mode %q, falling back to %s", cfg.SignatureCheckMode, SignatureModeConservative)
		cfg.SignatureCheckMode = SignatureModeConservative
	}

	cfg.StoreDir = utils.ExpandUser(cfg.StoreDir)
	cfg.ADBPath = utils.ExpandUser(cfg.ADBPath)
	cfg.AaptPath = utils.ExpandUser(cfg.AaptPath)

	return cfg, nil
}

func findConfigFile(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if _, err := os.Stat("adbw.ini"); err == nil {
		return "adbw.ini"
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(base, "adbw", "config.ini")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return ""
}

func (c *Config) applyFile(file *ini.File) {
	adb := file.Section("adb")
	if v := adb.Key("path").String(); v != "" {
		c.ADBPath = v
	}

	storeSec := file.Section("store")
	if v := storeSec.Key("dir").String(); v != "" {
		c.StoreDir = v
	}

	logsSec := file.Section("logs")
	if v := logsSec.Key("default_tag").String(); v != "" {
		c.DefaultLogTag = v
	}

	redact := file.Section("redact")
	c.RedactEnabled = redact.Key("enabled").MustBool(c.RedactEnabled)

	apkSec := file.Section("apk")
	if v := apkSec.Key("signature_check_mode").String(); v != "" {
		c.SignatureCheckMode = v
	}
	if v := apkSec.Key("aapt_path").String(); v != "" {
		c.AaptPath = v
	}

	srv := file.Section("server")
	if v := srv.Key("listen").String(); v != "" {
		c.ServerListen = v
	}
	c.ServerCORS = srv.Key("cors").MustBool(c.ServerCORS)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ADBW_ADB_PATH"); v != "" {
		c.ADBPath = v
	}
	if v := os.Getenv("ADBW_AAPT_PATH"); v != "" {
		c.AaptPath = v
	}
	if v := os.Getenv("ADBW_STORE_DIR"); v != "" {
		c.StoreDir = v
	}
	if v := os.Getenv("ADBW_REDACT"); v != "" {
		c.RedactEnabled = v == "1" || v == "true"
	}
	if v := os.Getenv("ADBW_SIGNATURE_CHECK_MODE"); v != "" {
		c.SignatureCheckMode = v
	}
}

// Source returns the config file in use, or a placeholder when running
// on built-in defaults
func (c *Config) Source() string {
	if c.source == "" {
		return "(built-in defaults)"
	}
	return c.source
}
