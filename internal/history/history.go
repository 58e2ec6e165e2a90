package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"hunch/internal/answer"
)

// Entry captures a single ask.
type Entry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Question  string        `json:"question"`
	Draw      float64       `json:"draw"`
	Answer    answer.Answer `json:"answer"`
	Profile   string        `json:"profile"`
	Seed      int64         `json:"seed,omitempty"`
}

// Log appends ask records to disk.
type Log struct {
	path string
}

// New creates a log rooted at the repo or user home.
func New(repoRoot string) (*Log, error) {
	path := ""
	if repoRoot != "" {
		path = filepath.Join(repoRoot, ".hunch", "history.log")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".hunch", "history.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &Log{path: path}, nil
}

// Record appends an entry as JSONL.
func (l *Log) Record(entry Entry) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	return enc.Encode(entry)
}

// Find returns the first entry matching the ID.
func (l *Log) Find(id string) (Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		if e.ID == id {
			return e, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return Entry{}, err
	}
	return Entry{}, errors.New("history id not found")
}

// Tail returns up to n of the most recent entries, oldest first.
func (l *Log) Tail(n int) ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Path returns the path to the log file.
func (l *Log) Path() string {
	return l.path
}
