// Package artifact manages timestamped run directories and candidate
// persistence.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"questify/internal/jsonutil"
)

const runDirLayout = "20060102_150405"

// RunDir creates base/artifacts_<timestamp> and returns its path.
func RunDir(base string, now time.Time) (string, error) {
	dir := filepath.Join(base, "artifacts", "artifacts_"+now.Format(runDirLayout))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("artifact: create run dir: %w", err)
	}
	return dir, nil
}

// MinUniquePrefixLength finds the smallest n >= 5 such that the first n
// characters of every name are distinct. Names shorter than n count as
// distinct already.
func MinUniquePrefixLength(names []string) int {
	length := 5
	for {
		seen := make(map[string]bool, len(names))
		collision := false
		for _, s := range names {
			if len(s) < length {
				continue
			}
			prefix := s[:length]
			if seen[prefix] {
				collision = true
				break
			}
			seen[prefix] = true
		}
		if !collision {
			return length
		}
		length++
	}
}

// SubdirNames returns one run subdirectory per input name, in input
// order. Names share the shortest prefix that keeps them distinct, and
// repeated names get a numeric suffix so their outputs never collide.
func SubdirNames(names []string) []string {
	length := MinUniquePrefixLength(names)
	out := make([]string, len(names))
	used := make(map[string]int, len(names))
	for i, s := range names {
		n := length
		if len(s) < n {
			n = len(s)
		}
		dir := s[:n]
		used[dir]++
		if c := used[dir]; c > 1 {
			dir = fmt.Sprintf("%s_%d", dir, c)
		}
		out[i] = dir
	}
	return out
}

// Store persists run outputs under one run directory. All writes are
// confined to the root; names resolving outside it are rejected.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string { return s.root }

// SaveCandidate writes v as pretty-printed JSON under subdir. A missing
// .json suffix is appended.
func (s *Store) SaveCandidate(subdir, name string, v any) (string, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	b, err := jsonutil.MarshalNoEscapeIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("artifact: encode %s: %w", name, err)
	}
	return s.write(subdir, name, append(b, '\n'))
}

// SaveRaw writes raw bytes, used for keeping a copy of the source
// template next to its candidates.
func (s *Store) SaveRaw(subdir, name string, data []byte) (string, error) {
	return s.write(subdir, name, data)
}

func (s *Store) write(subdir, name string, data []byte) (string, error) {
	path := filepath.Join(s.root, subdir, name)
	if !confined(path, s.root) {
		return "", errors.New("artifact: path escapes the run directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("artifact: create %s: %w", subdir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("artifact: write %s: %w", name, err)
	}
	return path, nil
}

func confined(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
