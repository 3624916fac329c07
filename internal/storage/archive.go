// Package storage keeps a JSON audit trail of delivered digests. It is never
// consulted for duplicate suppression: dedupe is local to a single run.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// RunRecord summarizes one delivered digest.
type RunRecord struct {
	Date          string         `json:"date"`
	Subject       string         `json:"subject"`
	SectionCounts map[string]int `json:"section_counts"`
	Recipients    int            `json:"recipients"`
	DeliveredAt   time.Time      `json:"delivered_at"`
}

// Archive appends run records to a JSON file.
type Archive struct {
	mu       sync.Mutex
	filePath string
}

func NewArchive(filePath string) *Archive {
	return &Archive{filePath: filePath}
}

// Append loads the existing records, adds one, and writes the file back.
// Runs are minutes apart at worst, so read-modify-write is fine here.
func (a *Archive) Append(rec RunRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	records, err := a.load()
	if err != nil {
		return err
	}
	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal archive: %w", err)
	}
	if err := os.WriteFile(a.filePath, data, 0644); err != nil {
		return fmt.Errorf("write archive file: %w", err)
	}
	return nil
}

// Records returns all archived run records.
func (a *Archive) Records() ([]RunRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.load()
}

func (a *Archive) load() ([]RunRecord, error) {
	data, err := os.ReadFile(a.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read archive file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []RunRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal archive: %w", err)
	}
	return records, nil
}
