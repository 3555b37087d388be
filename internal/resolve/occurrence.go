package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat marks input that does not conform to the expected tab-delimited
// shape, or an address token missing the base marker. Format errors are
// fatal; no partial record is ever fabricated.
var ErrFormat = errors.New("malformed input")

// RawOccurrence is one surviving line of the disassembler export, split into
// its three tab-separated fields. Consumed immediately by the resolver.
type RawOccurrence struct {
	Addr        string
	Func        string
	Instruction string
}

// ResolvedInstruction is the normalized form of one occurrence: a rebased
// offset, a resolved (or fallback) function label, and the instruction text
// carried verbatim.
type ResolvedInstruction struct {
	Addr        string
	Label       string
	Instruction string
}

// Record renders the instruction as one normalized-record line.
func (ri ResolvedInstruction) Record() string {
	return fmt.Sprintf("0x%s\t%s\t%s", ri.Addr, ri.Label, ri.Instruction)
}

// Keep reports whether an export line is worth resolving: on the designated
// code section and a comparison or move instruction.
func (c Config) Keep(line string) bool {
	if !strings.Contains(line, c.SectionMarker) {
		return false
	}
	for _, m := range c.Mnemonics {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// SplitOccurrence splits a surviving export line into its three fields.
func SplitOccurrence(line string) (RawOccurrence, error) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) < 3 {
		return RawOccurrence{}, fmt.Errorf("%w: occurrence line needs 3 tab-separated fields, got %d: %q",
			ErrFormat, len(fields), line)
	}
	return RawOccurrence{
		Addr:        fields[0],
		Func:        fields[1],
		Instruction: strings.TrimRight(fields[2], "\r\n"),
	}, nil
}

// NormalizeAddr rebases a raw address token by cutting at the first
// occurrence of the base marker and keeping the suffix. A token whose
// significant digits happen to contain the marker before the intended split
// point is silently mis-normalized; that ambiguity is inherited from the
// address-space convention of the export and is not independently validated.
func (c Config) NormalizeAddr(token string) (string, error) {
	_, after, found := strings.Cut(token, c.BaseMarker)
	if !found {
		return "", fmt.Errorf("%w: address %q lacks base marker %q", ErrFormat, token, c.BaseMarker)
	}
	return after, nil
}
