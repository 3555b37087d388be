// Package search provides line-oriented full-text search over a decompiled
// source listing with grep-style context windows. The listing is only ever
// searched, never parsed structurally.
package search

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Searcher returns the raw text of every region matching a fixed-string
// pattern, with before leading and after trailing context lines, or empty
// text when nothing matches.
type Searcher interface {
	Search(pattern string, before, after int) (string, error)
}

// Open returns a Searcher over the listing at path. It prefers ripgrep when
// available and falls back to an in-memory scan of the file otherwise.
func Open(path string) (Searcher, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if _, err := exec.LookPath("rg"); err == nil {
		return Ripgrep{Path: path}, nil
	}
	return LoadListing(path)
}

// Ripgrep shells out to rg for each query, the way the listing was searched
// originally. Patterns are passed as fixed strings, not regexes.
type Ripgrep struct {
	Path string
}

func (r Ripgrep) Search(pattern string, before, after int) (string, error) {
	cmd := exec.Command("rg",
		"-A"+strconv.Itoa(after),
		"-B"+strconv.Itoa(before),
		"-F", pattern, r.Path)
	out, err := cmd.Output()
	if err != nil {
		// Exit status 1 means no match, which is an answer, not a failure.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && len(out) == 0 {
			return "", nil
		}
		return "", fmt.Errorf("search: rg %q: %w", pattern, err)
	}
	return string(out), nil
}

// Listing is an in-memory Searcher over a loaded listing. It mirrors rg's
// context-window output closely enough for the resolver: matching regions are
// merged when they overlap and separated by "--" lines when they do not.
type Listing struct {
	lines []string
}

// LoadListing reads the whole listing at path into memory.
func LoadListing(path string) (*Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return NewListing(string(data)), nil
}

// NewListing builds a Listing from raw text.
func NewListing(text string) *Listing {
	lines := strings.Split(text, "\n")
	// A trailing newline produces one empty phantom line; drop it.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return &Listing{lines: lines}
}

func (l *Listing) Search(pattern string, before, after int) (string, error) {
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}

	type region struct{ lo, hi int } // inclusive line range
	var regions []region
	for i, line := range l.lines {
		if !strings.Contains(line, pattern) {
			continue
		}
		lo := i - before
		if lo < 0 {
			lo = 0
		}
		hi := i + after
		if hi > len(l.lines)-1 {
			hi = len(l.lines) - 1
		}
		if n := len(regions); n > 0 && lo <= regions[n-1].hi+1 {
			if hi > regions[n-1].hi {
				regions[n-1].hi = hi
			}
			continue
		}
		regions = append(regions, region{lo, hi})
	}

	if len(regions) == 0 {
		return "", nil
	}

	var b strings.Builder
	for i, reg := range regions {
		if i > 0 {
			b.WriteString("--\n")
		}
		for j := reg.lo; j <= reg.hi; j++ {
			b.WriteString(l.lines[j])
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
