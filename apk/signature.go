package apk

import (
	"strings"

	"github.com/rpnesseling/adbw/config"
)

// phrases adb prints when an install fails over signing differences
var conservativeSignaturePhrases = []string{
	"signature mismatch",
	"inconsistent certificates",
	"does not match",
}

// SignatureVerdict classifies install error text as a signing problem.
// Conservative mode only reacts to explicit mismatch wording; strict mode
// additionally treats INSTALL_FAILED_UPDATE_INCOMPATIBLE and any mention of
// certificates as signing trouble. Returns an empty string when the error
// does not look signature-related. Verdicts are warnings, never blockers.
func SignatureVerdict(mode, errText string) string {
	if errText == "" {
		return ""
	}
	lower := strings.ToLower(errText)

	for _, phrase := range conservativeSignaturePhrases {
		if strings.Contains(lower, phrase) {
			return "the APK is signed with a different key than the installed app, uninstall it first or install a matching build"
		}
	}

	if mode == config.SignatureModeStrict {
		if strings.Contains(errText, "INSTALL_FAILED_UPDATE_INCOMPATIBLE") || strings.Contains(lower, "certificate") {
			return "the install failure looks signature-related, the APK signing key may not match the installed app"
		}
	}

	return ""
}
