package store

import (
	"fmt"
)

// Step is one workflow action with its parameters. Which fields matter
// depends on the action; validation lives in the workflow package.
type Step struct {
	Action   string `json:"action"`
	APKPath  string `json:"apk_path,omitempty"`
	Package  string `json:"package,omitempty"`
	Activity string `json:"activity,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// Workflow is a named sequence of steps played back against one device.
type Workflow struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Workflows returns all saved workflows in file order.
func (s *Store) Workflows() []Workflow {
	var workflows []Workflow
	readJSON(s.path(workflowsFile), &workflows)
	return workflows
}

// Workflow returns the workflow with the given name.
func (s *Store) Workflow(name string) (*Workflow, error) {
	for _, w := range s.Workflows() {
		if w.Name == name {
			return &w, nil
		}
	}
	return nil, fmt.Errorf("workflow not found: %s", name)
}

// SaveWorkflow adds a workflow, replacing any existing one with the same name.
func (s *Store) SaveWorkflow(w Workflow) error {
	if w.Name == "" {
		return fmt.Errorf("workflow name is required")
	}
	if len(w.Steps) == 0 {
		return fmt.Errorf("workflow needs at least one step")
	}

	workflows := s.Workflows()
	kept := workflows[:0]
	for _, existing := range workflows {
		if existing.Name != w.Name {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, w)

	return writeJSON(s.path(workflowsFile), kept)
}

// DeleteWorkflow removes a workflow by name.
func (s *Store) DeleteWorkflow(name string) error {
	workflows := s.Workflows()
	kept := workflows[:0]
	found := false
	for _, w := range workflows {
		if w.Name == name {
			found = true
			continue
		}
		kept = append(kept, w)
	}
	if !found {
		return fmt.Errorf("workflow not found: %s", name)
	}
	return writeJSON(s.path(workflowsFile), kept)
}
