package persist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/vocadrill/internal/model"
)

// Wrong-deck file suffixes.
const (
	WrongSuffix = "_wrong.csv"
	TestSuffix  = "_test.csv"
)

const wrongMarker = "_wrong"

// DeckInfo describes a wrong deck on disk.
type DeckInfo struct {
	Name     string
	Display  string
	Path     string
	Modified time.Time
}

// WrongDeckPath returns the file that collects misses of a run in mode.
func WrongDeckPath(base, mode string) string {
	if mode == model.ModeTest {
		return base + TestSuffix
	}
	return base + WrongSuffix
}

// AppendWrong appends missed items to the deck at path, creating it if needed.
func AppendWrong(path string, entries []model.MissedEntry) error {
	if len(entries) == 0 {
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open wrong deck: %w", err)
	}
	w := bufio.NewWriter(file)
	for _, item := range entries {
		if _, err := fmt.Fprintf(w, "%s,%s\n", item.Word, item.Expected); err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to write wrong deck: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to flush wrong deck: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close wrong deck: %w", err)
	}
	return nil
}

// UpdateDeck rewrites the deck with remaining items, or deletes it when
// nothing remains.
func UpdateDeck(path string, remaining []model.WordPair) error {
	if len(remaining) == 0 {
		return DeleteDeck(path)
	}
	return writeAtomic(path, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		for _, item := range remaining {
			if _, err := fmt.Fprintf(bw, "%s,%s\n", item.Word, item.Expected); err != nil {
				return err
			}
		}
		return bw.Flush()
	})
}

// DeleteDeck removes the deck file.
func DeleteDeck(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	return nil
}

// ListWrongDecks returns the wrong decks in dir, most recently modified first.
// A missing directory yields no decks.
func ListWrongDecks(dir string) ([]DeckInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read deck directory: %w", err)
	}
	decks := make([]DeckInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !strings.Contains(name, wrongMarker) || !strings.HasSuffix(name, ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		decks = append(decks, DeckInfo{
			Name:     name,
			Display:  strings.TrimSuffix(name, ".csv"),
			Path:     filepath.Join(dir, name),
			Modified: info.ModTime(),
		})
	}
	sort.SliceStable(decks, func(i, j int) bool {
		if decks[i].Modified.Equal(decks[j].Modified) {
			return decks[i].Name < decks[j].Name
		}
		return decks[i].Modified.After(decks[j].Modified)
	})
	return decks, nil
}
