package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "adbw"
	keyringUser    = "api-token"
)

// GenerateToken creates a new random API token and stores it in the OS
// keyring, replacing any previous one.
func GenerateToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %v", err)
	}
	token := hex.EncodeToString(buf)

	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return "", fmt.Errorf("failed to store token in the keyring: %v", err)
	}
	return token, nil
}

// LoadToken returns the stored API token, or an empty string when none is
// stored (the server then runs unauthenticated).
func LoadToken() string {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return ""
	}
	return token
}

// ShowToken returns the stored API token or an error when none exists.
func ShowToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return "", fmt.Errorf("no API token stored, run: adbw server token generate")
	}
	return token, nil
}

// ClearToken removes the stored API token.
func ClearToken() error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil {
		return fmt.Errorf("no API token stored")
	}
	return nil
}
