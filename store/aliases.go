package store

import (
	"fmt"
)

// Aliases returns the alias-to-serial map.
func (s *Store) Aliases() map[string]string {
	aliases := make(map[string]string)
	readJSON(s.path(aliasesFile), &aliases)
	return aliases
}

// SetAlias maps an alias to a device serial.
func (s *Store) SetAlias(alias, serial string) error {
	if alias == "" || serial == "" {
		return fmt.Errorf("alias and serial are required")
	}
	aliases := s.Aliases()
	aliases[alias] = serial
	return writeJSON(s.path(aliasesFile), aliases)
}

// RemoveAlias deletes an alias.
func (s *Store) RemoveAlias(alias string) error {
	aliases := s.Aliases()
	if _, ok := aliases[alias]; !ok {
		return fmt.Errorf("alias not found: %s", alias)
	}
	delete(aliases, alias)
	return writeJSON(s.path(aliasesFile), aliases)
}

// Resolve maps an alias to its serial. Unknown names pass through unchanged
// so plain serials can be used anywhere an alias is accepted.
func (s *Store) Resolve(nameOrSerial string) string {
	if serial, ok := s.Aliases()[nameOrSerial]; ok {
		return serial
	}
	return nameOrSerial
}
