// Package persist saves interrupted sessions and maintains wrong-deck files.
package persist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verte-zerg/vocadrill/internal/model"
)

// ErrNoState is returned by Load when there is nothing to resume.
var ErrNoState = errors.New("persist: no saved session")

// StateSuffix is appended to a collection's base identity to name its
// session-state file.
const StateSuffix = ".session"

const (
	sectionMain  = "MAIN"
	sectionRetry = "RETRY"
	runPrefix    = "# run "
)

// Snapshot is the persisted form of an interrupted session.
type Snapshot struct {
	RunID  string
	Queues model.Queues
}

// StatePath returns the session-state path for a collection base identity
// such as "decks/day1" or "decks/day1~3".
func StatePath(base string) string {
	return base + StateSuffix
}

// StateFile reads and writes one session-state file.
type StateFile struct {
	path string
}

// NewStateFile returns a StateFile stored at path.
func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

// Path returns the file location.
func (s *StateFile) Path() string {
	return s.path
}

// Save writes the snapshot, replacing any previous one.
func (s *StateFile) Save(snap Snapshot) error {
	return writeAtomic(s.path, func(w io.Writer) error {
		return Encode(w, snap)
	})
}

// Load reads the saved snapshot. It returns ErrNoState when the file is
// missing or holds no queued items.
func (s *StateFile) Load() (Snapshot, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, ErrNoState
		}
		return Snapshot{}, fmt.Errorf("failed to open session state: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only state file.
			_ = cerr
		}
	}()

	snap, err := Decode(file)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read session state: %w", err)
	}
	if snap.Queues.Empty() {
		return Snapshot{}, ErrNoState
	}
	return snap, nil
}

// Clear removes the file. A missing file is not an error.
func (s *StateFile) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session state: %w", err)
	}
	return nil
}

// Encode writes snap in the two-section MAIN/RETRY format.
func Encode(w io.Writer, snap Snapshot) error {
	bw := bufio.NewWriter(w)
	if snap.RunID != "" {
		if _, err := fmt.Fprintf(bw, "%s%s\n", runPrefix, snap.RunID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, sectionMain); err != nil {
		return err
	}
	for _, idx := range snap.Queues.Primary {
		if _, err := fmt.Fprintln(bw, idx); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, sectionRetry); err != nil {
		return err
	}
	for _, item := range snap.Queues.Retry {
		if _, err := fmt.Fprintf(bw, "%s,%s\n", item.Word, item.Expected); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses the MAIN/RETRY format. Lines that do not parse are skipped.
func Decode(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	section := ""
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		switch line {
		case sectionMain, sectionRetry:
			section = line
			continue
		}
		switch section {
		case sectionMain:
			idx, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				continue
			}
			snap.Queues.Primary = append(snap.Queues.Primary, idx)
		case sectionRetry:
			word, expected, ok := strings.Cut(line, ",")
			if !ok {
				continue
			}
			snap.Queues.Retry = append(snap.Queues.Retry, model.MissedEntry{Word: word, Expected: expected})
		default:
			if id, ok := strings.CutPrefix(line, runPrefix); ok {
				snap.RunID = strings.TrimSpace(id)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := write(tmpFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
