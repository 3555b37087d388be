// Package patch aggregates normalized instruction records into an ordered
// patch descriptor list and serializes it as a patch configuration.
package patch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrFormat marks a record line that does not split into the expected three
// tab-separated fields. Missing fields are never guessed.
var ErrFormat = errors.New("malformed record")

// Descriptor describes a single instruction-level modification, keyed by
// offset. All three fields are carried verbatim from the record line.
type Descriptor struct {
	Offset      string
	Label       string
	Instruction string
}

// Block renders the descriptor as one configuration block.
func (d Descriptor) Block() string {
	return fmt.Sprintf("[[patches]]\n# %s\noffset = %s\ninstruction = \"%s\"\n",
		d.Label, d.Offset, d.Instruction)
}

// ParseRecords reads normalized records from r, skipping blank lines and
// comment lines prefixed with '#'. Line order is preserved. A line with
// fewer than three tab-separated fields fails the whole parse.
func ParseRecords(r io.Reader) ([]Descriptor, error) {
	var out []Descriptor

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: %w: need 3 tab-separated fields, got %d",
				lineNo, ErrFormat, len(fields))
		}
		out = append(out, Descriptor{
			Offset:      fields[0],
			Label:       fields[1],
			Instruction: fields[2],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return out, nil
}

// ReadFiles parses every record file and concatenates the descriptors in
// argument order, then in-file line order.
func ReadFiles(paths ...string) ([]Descriptor, error) {
	var out []Descriptor
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("records: %w", err)
		}
		ds, err := ParseRecords(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("records: %s: %w", path, err)
		}
		out = append(out, ds...)
	}
	return out, nil
}

// Serialize writes the full descriptor list, one block per descriptor,
// blocks separated by a blank line, trailing newline after the last block.
func Serialize(w io.Writer, ds []Descriptor) error {
	for i, d := range ds {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return fmt.Errorf("patch config: %w", err)
			}
		}
		if _, err := io.WriteString(w, d.Block()); err != nil {
			return fmt.Errorf("patch config: %w", err)
		}
	}
	return nil
}

// WriteFile serializes the descriptor list to path in one shot.
func WriteFile(path string, ds []Descriptor) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("patch config: %w", err)
	}
	if err := Serialize(f, ds); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("patch config: %w", err)
	}
	return nil
}
