package rules

import "strings"

// NamingRule maps a normalized path to a sprite display name.
type NamingRule func(path string) string

var defaultNameReplacer = strings.NewReplacer("/", "-", "_", "-")

// DefaultName replaces "/" and "_" with "-".
func DefaultName(path string) string {
	return defaultNameReplacer.Replace(path)
}

// DedupName applies DefaultName and then drops every repeated "-" token,
// keeping the first occurrence and the original order.
func DedupName(path string) string {
	tokens := strings.Split(DefaultName(path), "-")
	seen := make(map[string]struct{}, len(tokens))
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		kept = append(kept, tok)
	}
	return strings.Join(kept, "-")
}

// StripName returns a rule that applies DefaultName and then removes every
// occurrence of marker.
func StripName(marker string) NamingRule {
	if marker == "" {
		return DefaultName
	}
	return func(path string) string {
		return strings.ReplaceAll(DefaultName(path), marker, "")
	}
}
