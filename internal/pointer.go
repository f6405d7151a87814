package internal

import "strings"

// ParseAssetPointer decodes a pointer of the form <scheme>://<file-|file_><id>.
// It returns nil only when raw is not a string. A string without a scheme is
// kept as a bare, lowercased prefix under the "unknown" scheme.
func ParseAssetPointer(raw any) *ParsedPointer {
	s, ok := raw.(string)
	if !ok {
		return nil
	}

	i := strings.Index(s, "://")
	if i < 0 {
		lower := strings.ToLower(s)
		return &ParsedPointer{Scheme: "unknown", ID: lower, RawPrefix: lower}
	}

	// The remainder keeps its original case; matching is case-insensitive anyway.
	rest := s[i+3:]
	return &ParsedPointer{
		Scheme:    strings.ToLower(s[:i]),
		ID:        stripFilePrefix(rest),
		RawPrefix: rest,
	}
}

// String renders the pointer back in <scheme>://<prefix> form
func (p ParsedPointer) String() string {
	if p.Scheme == "unknown" {
		return p.RawPrefix
	}
	return p.Scheme + "://" + p.RawPrefix
}

func stripFilePrefix(s string) string {
	if len(s) < 5 {
		return s
	}
	head := strings.ToLower(s[:5])
	if head == "file-" || head == "file_" {
		return s[5:]
	}
	return s
}
