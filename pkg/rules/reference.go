package rules

// ReferenceRule derives the tag a renderer uses to look up a sprite. A nil
// ReferenceRule means no reference is written.
type ReferenceRule func(path string) string

// PrefixReference returns prefix followed by the last path segment,
// e.g. "ma_" + "account_box".
func PrefixReference(prefix string) ReferenceRule {
	return func(path string) string {
		return prefix + LastSegment(path)
	}
}
