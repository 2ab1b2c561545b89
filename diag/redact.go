package diag

import (
	"regexp"
	"strings"
)

var (
	macRe  = regexp.MustCompile(`\b(?:[0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}\b`)
	ipv4Re = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
)

// Redactor masks identifying values in report text before it leaves the
// machine: known device serials, MAC addresses and IPv4 addresses. Loopback
// addresses stay readable.
type Redactor struct {
	serials []string
}

// NewRedactor returns a Redactor that also masks the given device serials.
func NewRedactor(serials []string) *Redactor {
	var known []string
	for _, s := range serials {
		if len(s) > 4 {
			known = append(known, s)
		}
	}
	return &Redactor{serials: known}
}

// mask keeps the first and last two characters and stars the middle.
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

// Apply masks serials, MACs and IPv4 addresses in text.
func (r *Redactor) Apply(text string) string {
	for _, serial := range r.serials {
		text = strings.ReplaceAll(text, serial, mask(serial))
	}
	text = macRe.ReplaceAllStringFunc(text, mask)
	text = ipv4Re.ReplaceAllStringFunc(text, func(ip string) string {
		if strings.HasPrefix(ip, "127.") {
			return ip
		}
		return mask(ip)
	})
	return text
}
