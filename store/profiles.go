package store

import (
	"fmt"
	"sort"
)

// Profile bundles the package, activity, log tag and APK path of one app
// under development. The dev loop and workflows read from it.
type Profile struct {
	Package  string `json:"package_name"`
	Activity string `json:"activity,omitempty"`
	LogTag   string `json:"log_tag,omitempty"`
	APKPath  string `json:"apk_path,omitempty"`
}

// Profiles returns all saved profiles keyed by name.
func (s *Store) Profiles() map[string]Profile {
	profiles := make(map[string]Profile)
	readJSON(s.path(profilesFile), &profiles)
	return profiles
}

// ProfileNames returns the profile names sorted.
func (s *Store) ProfileNames() []string {
	profiles := s.Profiles()
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile returns the named profile.
func (s *Store) Profile(name string) (*Profile, error) {
	profiles := s.Profiles()
	p, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile not found: %s", name)
	}
	return &p, nil
}

// SaveProfile creates or replaces a profile.
func (s *Store) SaveProfile(name string, p Profile) error {
	if name == "" {
		return fmt.Errorf("profile name is required")
	}
	profiles := s.Profiles()
	profiles[name] = p
	return writeJSON(s.path(profilesFile), profiles)
}

// DeleteProfile removes a profile by name.
func (s *Store) DeleteProfile(name string) error {
	profiles := s.Profiles()
	if _, ok := profiles[name]; !ok {
		return fmt.Errorf("profile not found: %s", name)
	}
	delete(profiles, name)
	return writeJSON(s.path(profilesFile), profiles)
}
