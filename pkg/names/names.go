// Package names compares shell item names the way the namespace does:
// case-insensitively, with Unicode case folding rather than ASCII lowering.
package names

import (
	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Equal reports whether a and b are the same name ignoring case.
func Equal(a, b string) bool {
	if a == b {
		return true
	}
	return Fold(a) == Fold(b)
}

// EqualAny reports whether name equals any of the candidates ignoring case.
// Empty candidates never match.
func EqualAny(name string, candidates ...string) bool {
	folded := Fold(name)
	for _, c := range candidates {
		if c != "" && Fold(c) == folded {
			return true
		}
	}
	return false
}

// Match reports whether name matches the shell wildcard pattern ignoring case.
// '*' matches any run of characters (including none) and '?' matches exactly one.
// An empty pattern matches everything.
func Match(pattern, name string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	p := []rune(Fold(pattern))
	s := []rune(Fold(name))

	var pi, si int
	star, mark := -1, 0
	for si < len(s) {
		switch {
		case pi < len(p) && (p[pi] == '?' || p[pi] == s[si]):
			pi++
			si++
		case pi < len(p) && p[pi] == '*':
			star = pi
			mark = si
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}
	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
