// Package deps detects which modules a piece of source text imports and which
// of them are absent from an environment's package directory.
//
// The scan is lexical, not a parse. It splits the source on whitespace and
// recognises two shapes:
//
//	import <module>
//	from <module> import <name>
//
// Only the top-level module name is kept. Imports inside strings or comments
// are reported too, and multi-module import lists only yield their first
// entry; both are accepted tradeoffs of not parsing the language.
package deps

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// trimSet is stripped from both ends of a module token.
const trimSet = ";'\",."

// Scan returns the top-level module names imported by source, de-duplicated
// and in order of first appearance.
func Scan(source string) []string {
	tokens := strings.Fields(source)

	var names []string
	seen := make(map[string]bool)
	add := func(token string) {
		name := topLevel(token)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "import":
			if i+1 < len(tokens) {
				add(tokens[i+1])
				i++
			}
		case "from":
			// from <module> import <name>: all three tokens are consumed even
			// when the shape does not match.
			if i+3 < len(tokens) && tokens[i+2] == "import" {
				add(tokens[i+1])
			}
			i += 3
		}
	}
	return names
}

// topLevel trims punctuation from token and returns the text before the first
// character that cannot appear in an identifier (a dot, comma, semicolon,
// paren), or "" if that is not a plausible module identifier.
func topLevel(token string) string {
	name := strings.Trim(token, trimSet)
	if i := strings.IndexFunc(name, func(r rune) bool {
		return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}); i >= 0 {
		name = name[:i]
	}
	if !isIdentifier(name) {
		return ""
	}
	return name
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}

// Missing returns the names, in input order, that have neither a directory
// nor a single-file module (<name>.py) under packageDir. It checks presence
// only; a partially installed package counts as present.
func Missing(names []string, packageDir string) []string {
	var missing []string
	for _, name := range names {
		if !Installed(name, packageDir) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Installed reports whether module name is present under packageDir.
func Installed(name, packageDir string) bool {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return false
	}
	if info, err := os.Stat(filepath.Join(packageDir, name)); err == nil && info.IsDir() {
		return true
	}
	if info, err := os.Stat(filepath.Join(packageDir, name+".py")); err == nil && info.Mode().IsRegular() {
		return true
	}
	return false
}

// Filter returns names without the entries in ignore, preserving order.
func Filter(names []string, ignore map[string]bool) []string {
	if len(ignore) == 0 {
		return names
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !ignore[n] {
			out = append(out, n)
		}
	}
	return out
}

// IgnoreSet builds a lookup set from a list of module names.
func IgnoreSet(names ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, list := range names {
		for _, n := range list {
			if n = strings.TrimSpace(n); n != "" {
				set[n] = true
			}
		}
	}
	return set
}
