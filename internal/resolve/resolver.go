package resolve

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"patchgen/internal/logging"
	"patchgen/internal/search"
)

// Resolver recovers function labels for anonymous symbols by searching the
// decompiled source listing for the matching RVA comment.
type Resolver struct {
	cfg    Config
	search search.Searcher
}

// NewResolver builds a resolver over a listing searcher.
func NewResolver(cfg Config, s search.Searcher) *Resolver {
	return &Resolver{cfg: cfg, search: s}
}

// ResolveLabel resolves a function token to a "Class::Method" label.
//
// Tokens without the anonymous prefix already carry a recovered name and pass
// through unchanged. Anonymous tokens are looked up in the listing by RVA
// comment with an expanding backward window: the first search requests one
// trailing and InitialWindow leading context lines, and the leading window
// doubles until the enclosing class declaration comes into view. A pattern
// with no match anywhere, or a window that reaches WindowCap without a class
// line, leaves the symbol unresolved and returns the reconstructed raw label
// instead.
func (r *Resolver) ResolveLabel(token string) (string, error) {
	if !strings.HasPrefix(token, r.cfg.AnonymousPrefix) {
		return token, nil
	}

	fragment := strings.TrimPrefix(token, r.cfg.CompoundPrefix)
	pattern := fmt.Sprintf(r.cfg.RVAPattern, fragment)
	fallback := r.cfg.CompoundPrefix + fragment

	before := r.cfg.InitialWindow
	for {
		out, err := r.search.Search(pattern, before, 1)
		if err != nil {
			return "", err
		}

		if out == "" {
			if logging.IsDebug() {
				lg := logging.NewLogger()
				lg.Debug("no listing match, keeping raw symbol",
					"pattern", pattern,
					"fallback", fallback)
			}
			return fallback, nil
		}

		if strings.Contains(out, "class") {
			return extractLabel(out)
		}

		if before >= r.cfg.WindowCap {
			lg := logging.NewLogger()
			lg.Warn("symbol not resolved: no class declaration within window cap",
				"pattern", pattern,
				"window", before,
				"fallback", fallback)
			return fallback, nil
		}
		before *= 2

		if logging.IsDebug() {
			lg := logging.NewLogger()
			lg.Debug("class declaration outside window, widening",
				"pattern", pattern,
				"window", before)
		}
	}
}

// Resolve turns one raw occurrence into a normalized instruction.
func (r *Resolver) Resolve(occ RawOccurrence) (ResolvedInstruction, error) {
	addr, err := r.cfg.NormalizeAddr(occ.Addr)
	if err != nil {
		return ResolvedInstruction{}, err
	}
	label, err := r.ResolveLabel(occ.Func)
	if err != nil {
		return ResolvedInstruction{}, err
	}
	return ResolvedInstruction{
		Addr:        addr,
		Label:       label,
		Instruction: occ.Instruction,
	}, nil
}

// Run consumes a full occurrence export: it filters lines by section and
// mnemonic, resolves each survivor, and drops blacklisted labels. Order is
// preserved. Any format error or search failure aborts the run.
func (r *Resolver) Run(in io.Reader) ([]ResolvedInstruction, error) {
	var out []ResolvedInstruction

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if !r.cfg.Keep(line) {
			continue
		}

		occ, err := SplitOccurrence(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		ri, err := r.Resolve(occ)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if r.cfg.Blacklisted(ri.Label) {
			continue
		}
		out = append(out, ri)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading occurrence export: %w", err)
	}
	return out, nil
}
