package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// StateFileName is written into every run directory
const StateFileName = "run.state.yaml"

// AddEvent adds an event to the run history in a thread-safe manner
func (s *RunState) AddEvent(item int, status ItemStatus, message string) {
	s.Lock()
	defer s.Unlock()
	s.History = append(s.History, RunEvent{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Item:      item,
		Status:    status,
		Message:   message,
	})
}

// Advance moves an item to status and records the transition
func (s *RunState) Advance(item *Item, status ItemStatus, message string) {
	s.Lock()
	item.Status = status
	s.Unlock()
	s.AddEvent(item.Index, status, message)
}

// Fail moves an item to the failed state and keeps the error
func (s *RunState) Fail(item *Item, kind string, err error) {
	s.Lock()
	item.Status = ItemStatusFailed
	item.Error = err.Error()
	item.FailureKind = kind
	s.Unlock()
	s.AddEvent(item.Index, ItemStatusFailed, err.Error())
}

// Succeeded counts the items that reached their terminal success state
func (s *RunState) Succeeded() int {
	s.RLock()
	defer s.RUnlock()
	n := 0
	for _, item := range s.Items {
		if item.Done(s.DryRun) {
			n++
		}
	}
	return n
}

// Save writes the run state summary as YAML
func (s *RunState) Save(path string) error {
	s.RLock()
	data, err := yaml.Marshal(s)
	s.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal run state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run state: %w", err)
	}
	return nil
}

// LoadRunState reads a run state summary written by Save
func LoadRunState(path string) (*RunState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run state: %w", err)
	}
	var state RunState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse run state: %w", err)
	}
	return &state, nil
}
