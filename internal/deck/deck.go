// Package deck loads word/meaning collections from CSV files.
package deck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/verte-zerg/vocadrill/internal/model"
)

// Ext is the collection file extension.
const Ext = ".csv"

// ErrEmpty is returned when a collection holds no usable lines.
var ErrEmpty = errors.New("deck is empty")

// Parse reads word,expected lines. Everything after the first comma is the
// expected value. Lines rejected by the filters are skipped.
func Parse(r io.Reader, filters ...FilterFunc) ([]model.WordPair, error) {
	if len(filters) == 0 {
		filters = []FilterFunc{Complete}
	}
	var pairs []model.WordPair
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word, expected, ok := strings.Cut(scanner.Text(), ",")
		if !ok {
			continue
		}
		pair := model.WordPair{
			Word:     strings.TrimSpace(word),
			Expected: strings.TrimSpace(expected),
		}
		if !keep(pair, filters) {
			continue
		}
		pairs = append(pairs, pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// LoadPairs reads one collection file.
func LoadPairs(path string) ([]model.WordPair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only deck.
			_ = cerr
		}
	}()

	pairs, err := Parse(file)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, ErrEmpty
	}
	return pairs, nil
}

// LoadCollection reads <dir>/<name>.csv for each name in order. Loading stops
// at the first file that cannot be read; the pairs read so far are returned
// together with the error.
func LoadCollection(dir string, names []string) ([]model.WordPair, error) {
	var pairs []model.WordPair
	for _, name := range names {
		path := Path(dir, name)
		loaded, err := LoadPairs(path)
		if err != nil && !errors.Is(err, ErrEmpty) {
			return pairs, fmt.Errorf("failed to load %s: %w", path, err)
		}
		pairs = append(pairs, loaded...)
	}
	return pairs, nil
}

// Path returns the file of a named collection.
func Path(dir, name string) string {
	return filepath.Join(dir, name+Ext)
}

// BaseName identifies a collection for derived files. A multi-file
// collection is named after its first file plus the last character of its
// last file, e.g. "1~5".
func BaseName(dir string, names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return filepath.Join(dir, names[0])
	}
	last := names[len(names)-1]
	r, _ := utf8.DecodeLastRuneInString(last)
	if r == utf8.RuneError {
		return filepath.Join(dir, names[0])
	}
	return filepath.Join(dir, names[0]) + "~" + string(r)
}

// ListCollections returns the collection names in dir, skipping wrong and
// test decks.
func ListCollections(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := lo.Filter(entries, func(entry os.DirEntry, _ int) bool {
		return !entry.IsDir() && IsCollection(entry.Name())
	})
	names := lo.Map(files, func(entry os.DirEntry, _ int) string {
		return strings.TrimSuffix(entry.Name(), Ext)
	})
	sort.Strings(names)
	return names, nil
}

// IsCollection reports whether a file name is a source collection rather
// than a derived deck.
func IsCollection(name string) bool {
	if !strings.HasSuffix(name, Ext) {
		return false
	}
	stem := strings.TrimSuffix(name, Ext)
	return !strings.HasSuffix(stem, "_wrong") && !strings.HasSuffix(stem, "_test")
}
