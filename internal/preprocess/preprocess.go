// Package preprocess implements spec.md §4.1: it resolves #include
// directives transitively, expands object-style #define macros, and
// annotates every resulting line with its origin, producing a
// source.CharStream.
package preprocess

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/solalang/solc/internal/config"
	"github.com/solalang/solc/internal/diag"
	"github.com/solalang/solc/internal/source"
)

// DefaultMaxIncludeDepth is the include-nesting limit imposed in the
// absence of an overriding config value (spec.md §4.1 "Cycle policy",
// SPEC_FULL.md §4.10 / Open Question (d)).
const DefaultMaxIncludeDepth = 64

var (
	includeDirectiveRe = regexp.MustCompile(`^\s*#include\s+"([^"]*)"\s*$`)
	defineDirectiveRe  = regexp.MustCompile(`^\s*#define\s+(\S+)(?:\s+(.*?))?\s*$`)
)

// Preprocessor resolves includes and expands macros for one compilation
// run. A Preprocessor is not reused across runs.
type Preprocessor struct {
	sink              *diag.Sink
	maxIncludeDepth   int
	extraIncludePaths []string

	defines       map[string]string
	defineRe      *regexp.Regexp // combined substitution regex, rebuilt lazily
	defineReStale bool
}

// New builds a Preprocessor from the given config (SPEC_FULL.md §10).
// Predefined macros in cfg.Defines are registered before the root file is
// read, exactly as if by #define lines preceding it.
func New(sink *diag.Sink, cfg config.Config) *Preprocessor {
	maxDepth := cfg.MaxIncludeDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxIncludeDepth
	}
	p := &Preprocessor{
		sink:              sink,
		maxIncludeDepth:   maxDepth,
		extraIncludePaths: cfg.IncludePaths,
		defines:           make(map[string]string),
	}
	for k, v := range cfg.Defines {
		p.defines[k] = v
	}
	p.defineReStale = len(p.defines) > 0
	return p
}

// Run preprocesses the file at rootPath and returns the resulting
// CharStream, in file order with each include's contents spliced inline
// at the point of the directive.
func (p *Preprocessor) Run(rootPath string) (*source.CharStream, error) {
	lines, err := p.processFile(rootPath, nil, 0)
	if err != nil {
		return nil, err
	}
	return &source.CharStream{Lines: lines}, nil
}

func (p *Preprocessor) processFile(path string, includedFrom *source.Line, depth int) ([]*source.Line, error) {
	if depth > p.maxIncludeDepth {
		return nil, fmt.Errorf("preprocess: include depth exceeded %d while including %s (cycle?)", p.maxIncludeDepth, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preprocess: cannot open root file %s: %w", path, err)
	}
	defer f.Close()

	var result []*source.Line
	r := bufio.NewReader(f)
	lineNo := 0
	for {
		raw, readErr := r.ReadString('\n')
		if len(raw) == 0 && readErr != nil {
			break
		}
		lineNo++
		if !strings.HasSuffix(raw, "\n") {
			raw += "\n" // Line.Text always includes its trailing newline.
		}

		directiveLine := &source.Line{Text: raw, File: source.FileRef(path), LineNumber: lineNo, IncludedFrom: includedFrom}

		if m := includeDirectiveRe.FindStringSubmatch(raw); m != nil {
			includedLines, err := p.resolveInclude(m[1], path, directiveLine, depth)
			if err != nil {
				return nil, err
			}
			result = append(result, includedLines...)
		} else if m := defineDirectiveRe.FindStringSubmatch(raw); m != nil {
			key, value := m[1], m[2]
			if value == "" {
				p.sink.Warnf(source.Span{Line: directiveLine, StartColumn: 0, EndColumn: len(raw)},
					"incomplete #define", "#define %s has no replacement value", key)
			}
			p.defines[key] = value
			p.defineReStale = true
			// emits nothing
		} else {
			result = append(result, &source.Line{
				Text:         p.substitute(raw),
				File:         source.FileRef(path),
				LineNumber:   lineNo,
				IncludedFrom: includedFrom,
			})
		}

		if readErr != nil {
			break
		}
	}
	return result, nil
}

// resolveInclude splices the fully preprocessed content of the included
// file inline. Per spec.md §4.1, the included lines' IncludedFrom points
// at the #include line itself, not at its parent.
func (p *Preprocessor) resolveInclude(includePath, fromPath string, directiveLine *source.Line, depth int) ([]*source.Line, error) {
	candidates := []string{filepath.Join(filepath.Dir(fromPath), includePath)}
	for _, extra := range p.extraIncludePaths {
		candidates = append(candidates, filepath.Join(extra, includePath))
	}

	var resolved string
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			resolved = c
			break
		}
	}
	if resolved == "" {
		p.sink.Warnf(source.Span{Line: directiveLine, StartColumn: 0, EndColumn: len(directiveLine.Text)},
			"missing include", "cannot find included file %q", includePath)
		return nil, nil // soft failure: yields no lines
	}

	return p.processFile(resolved, directiveLine, depth+1)
}

// substitute performs the single-pass, non-recursive macro expansion
// described in spec.md §4.1: every occurrence of every registered key is
// textually replaced by its value, left to right, in one pass over the
// line. A replacement value that itself contains another key is emitted
// verbatim, because the regex match positions are computed once against
// the original line.
func (p *Preprocessor) substitute(line string) string {
	if len(p.defines) == 0 {
		return line
	}
	re := p.substitutionRegex()
	return re.ReplaceAllStringFunc(line, func(match string) string {
		return p.defines[match]
	})
}

func (p *Preprocessor) substitutionRegex() *regexp.Regexp {
	if p.defineRe != nil && !p.defineReStale {
		return p.defineRe
	}
	keys := make([]string, 0, len(p.defines))
	for k := range p.defines {
		keys = append(keys, k)
	}
	// Longest-first so a key that is a prefix of another (e.g. FOO vs
	// FOO_BAR) doesn't shadow the longer one.
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	for i, k := range keys {
		keys[i] = regexp.QuoteMeta(k)
	}
	pattern := `\b(?:` + strings.Join(keys, "|") + `)\b`
	p.defineRe = regexp.MustCompile(pattern)
	p.defineReStale = false
	return p.defineRe
}

// Defines returns a snapshot of the current macro table, mainly for tests
// and diagnostics.
func (p *Preprocessor) Defines() map[string]string {
	out := make(map[string]string, len(p.defines))
	for k, v := range p.defines {
		out[k] = v
	}
	return out
}
