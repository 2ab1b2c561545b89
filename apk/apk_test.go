package apk

import (
	"strings"
	"testing"

	"github.com/rpnesseling/adbw/config"
)

const sampleBadging = `package: name='com.example.app' versionCode='42' versionName='1.2.3' platformBuildVersionName='14' platformBuildVersionCode='34' compileSdkVersion='34'
sdkVersion:'24'
targetSdkVersion:'34'
uses-permission: name='android.permission.INTERNET'
application-label:'Example App'
application: label='Example App' icon='res/mipmap-anydpi-v26/ic_launcher.xml'
launchable-activity: name='com.example.app.MainActivity'  label='Example App' icon=''
`

func TestParseBadging(t *testing.T) {
	info, err := ParseBadging(sampleBadging)
	if err != nil {
		t.Fatalf("ParseBadging failed: %v", err)
	}

	if info.Package != "com.example.app" {
		t.Errorf("Package = %q, want com.example.app", info.Package)
	}
	if info.VersionCode != 42 {
		t.Errorf("VersionCode = %d, want 42", info.VersionCode)
	}
	if info.VersionName != "1.2.3" {
		t.Errorf("VersionName = %q, want 1.2.3", info.VersionName)
	}
	if info.Label != "Example App" {
		t.Errorf("Label = %q, want Example App", info.Label)
	}
	if info.MinSDK != 24 {
		t.Errorf("MinSDK = %d, want 24", info.MinSDK)
	}
	if info.TargetSDK != 34 {
		t.Errorf("TargetSDK = %d, want 34", info.TargetSDK)
	}
}

func TestParseBadgingMissingPackageLine(t *testing.T) {
	_, err := ParseBadging("sdkVersion:'24'\ntargetSdkVersion:'34'\n")
	if err == nil {
		t.Fatal("expected error for output without a package line")
	}
	if !strings.Contains(err.Error(), "package line") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseBadgingPartialFields(t *testing.T) {
	out := "package: name='com.minimal' versionCode='' versionName=''\n"
	info, err := ParseBadging(out)
	if err != nil {
		t.Fatalf("ParseBadging failed: %v", err)
	}
	if info.Package != "com.minimal" {
		t.Errorf("Package = %q, want com.minimal", info.Package)
	}
	if info.VersionCode != 0 {
		t.Errorf("VersionCode = %d, want 0", info.VersionCode)
	}
	if info.MinSDK != 0 || info.TargetSDK != 0 {
		t.Errorf("SDK levels = %d/%d, want 0/0", info.MinSDK, info.TargetSDK)
	}
}

func TestSignatureVerdict(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		errText string
		want    bool
	}{
		{"conservative flags signature mismatch", config.SignatureModeConservative, "INSTALL_FAILED_UPDATE_INCOMPATIBLE: signature mismatch", true},
		{"conservative flags inconsistent certificates", config.SignatureModeConservative, "Package has inconsistent certificates", true},
		{"conservative flags does not match", config.SignatureModeConservative, "signatures does not match previously installed version", true},
		{"conservative ignores bare update incompatible", config.SignatureModeConservative, "INSTALL_FAILED_UPDATE_INCOMPATIBLE", false},
		{"conservative ignores certificate mention", config.SignatureModeConservative, "failed to collect certificates", false},
		{"strict flags update incompatible", config.SignatureModeStrict, "INSTALL_FAILED_UPDATE_INCOMPATIBLE", true},
		{"strict flags certificate mention", config.SignatureModeStrict, "failed to collect certificates from base.apk", true},
		{"strict ignores unrelated errors", config.SignatureModeStrict, "INSTALL_FAILED_INSUFFICIENT_STORAGE", false},
		{"empty error text", config.SignatureModeStrict, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SignatureVerdict(tt.mode, tt.errText)
			if tt.want && got == "" {
				t.Errorf("SignatureVerdict(%q, %q) = empty, want a verdict", tt.mode, tt.errText)
			}
			if !tt.want && got != "" {
				t.Errorf("SignatureVerdict(%q, %q) = %q, want empty", tt.mode, tt.errText, got)
			}
		})
	}
}
