// Package token defines the lexical currency of a Metamath database: source
// positions and the interned symbol strings that make up statements.
package token

import (
	"strings"
	"sync"
)

// Position identifies a 1-based line number in the source file a token was
// read from. Metamath's grammar does not require column-accurate diagnostics
// the way a programming-language compiler does, so only the line is tracked.
type Position struct {
	Line int
}

// Token is a single whitespace-delimited piece of surface syntax, tagged
// with the line it was read from.
type Token struct {
	Text string
	Pos  Position
}

// Interner deduplicates token text so that repeated occurrences of the same
// symbol share one backing string. Metamath databases reuse a small
// vocabulary (constants like `wff`, `|-`, variable names) many thousands of
// times; interning trades a one-time map lookup for both faster equality
// checks downstream and a smaller live heap.
//
// An Interner is safe for concurrent use (a mutex guards its table). Only
// the scoper calls it, while parsing; verification of independent theorems
// on a worker pool reads the already-interned strings and never calls it.
type Interner struct {
	mu    sync.Mutex
	table map[string]string
}

// NewInterner returns an empty Interner ready for use.
func NewInterner() *Interner {
	return &Interner{table: make(map[string]string)}
}

// Intern returns the canonical string equal to s, storing s the first time
// it is seen. The interner's lifetime must dominate the database built from
// its tokens.
func (in *Interner) Intern(s string) string {
	in.mu.Lock()
	defer in.mu.Unlock()
	if canon, ok := in.table[s]; ok {
		return canon
	}
	in.table[s] = s
	return s
}

// JoinSymbols renders a symbol-string (ordered token sequence) as
// space-separated text, for diagnostics.
func JoinSymbols(tokens []string) string {
	return strings.Join(tokens, " ")
}
