// Package pattern parses human-readable byte signatures and replacement
// templates into typed token sequences.
//
// A signature is a whitespace-separated list of tokens. Every token is either
// a two-digit hex byte (case-insensitive) or one of the wildcard spellings
// "?", "??", "*" and "**":
//
//	75 09 8B FB E8 ?? ?? ??
//
// In a search pattern a wildcard matches any byte. In a replacement template
// the same spellings mean "keep the original byte".
//
// Example:
//
//	s, err := pattern.ParseSearch("75 09 ?? FB")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(s), s) // 4 75 09 ?? FB
package pattern

import "strings"

// Token is one position of a search pattern.
//
// A fixed token must equal the haystack byte at the same position.
// A wildcard token matches any byte and is never compared.
type Token struct {
	Value byte
	Wild  bool
}

// Fixed returns a token that matches exactly b.
func Fixed(b byte) Token {
	return Token{Value: b}
}

// Wildcard returns a token that matches any byte.
func Wildcard() Token {
	return Token{Wild: true}
}

// Matches reports whether the token accepts b.
func (t Token) Matches(b byte) bool {
	return t.Wild || t.Value == b
}

// String renders the token as it would appear in a signature.
func (t Token) String() string {
	if t.Wild {
		return "??"
	}
	return hexByte(t.Value)
}

// ReplToken is one position of a replacement template.
type ReplToken struct {
	Value byte
	Keep  bool
}

// Set returns a replacement token that writes b.
func Set(b byte) ReplToken {
	return ReplToken{Value: b}
}

// Keep returns a replacement token that leaves the original byte in place.
func Keep() ReplToken {
	return ReplToken{Keep: true}
}

// String renders the token as it would appear in a template.
func (t ReplToken) String() string {
	if t.Keep {
		return "??"
	}
	return hexByte(t.Value)
}

// Search is a parsed search pattern. Position i of the pattern is aligned with
// position i of a candidate window.
type Search []Token

// String returns the canonical form of the pattern: uppercase hex bytes and
// "??" for wildcards, separated by single spaces.
func (s Search) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// HasWildcard reports whether any position of the pattern is a wildcard.
func (s Search) HasWildcard() bool {
	for _, t := range s {
		if t.Wild {
			return true
		}
	}
	return false
}

// MatchAt reports whether the pattern matches haystack at offset.
// Windows that run past either end of haystack never match.
func (s Search) MatchAt(haystack []byte, offset int) bool {
	if offset < 0 || offset+len(s) > len(haystack) {
		return false
	}
	for i, t := range s {
		if !t.Matches(haystack[offset+i]) {
			return false
		}
	}
	return true
}

// Replace is a parsed replacement template.
type Replace []ReplToken

// String returns the canonical form of the template.
func (r Replace) String() string {
	parts := make([]string, len(r))
	for i, t := range r {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// ParseSearch parses a search pattern.
//
// Returns a *ParseError for the first token that is neither a wildcard nor a
// two-digit hex byte. Empty or all-whitespace text yields an empty pattern.
func ParseSearch(text string) (Search, error) {
	fields := strings.Fields(text)
	out := make(Search, 0, len(fields))
	for i, tok := range fields {
		if isWildcard(tok) {
			out = append(out, Wildcard())
			continue
		}
		b, ok := parseHexByte(tok)
		if !ok {
			return nil, &ParseError{Text: text, Index: i, Token: tok}
		}
		out = append(out, Fixed(b))
	}
	return out, nil
}

// ParseReplace parses a replacement template. Wildcard spellings become Keep
// tokens.
func ParseReplace(text string) (Replace, error) {
	fields := strings.Fields(text)
	out := make(Replace, 0, len(fields))
	for i, tok := range fields {
		if isWildcard(tok) {
			out = append(out, Keep())
			continue
		}
		b, ok := parseHexByte(tok)
		if !ok {
			return nil, &ParseError{Text: text, Index: i, Token: tok}
		}
		out = append(out, Set(b))
	}
	return out, nil
}

// MustParseSearch is like ParseSearch but panics on error.
// It is intended for signatures known to be valid at compile time.
func MustParseSearch(text string) Search {
	s, err := ParseSearch(text)
	if err != nil {
		panic("pattern: ParseSearch(`" + text + "`): " + err.Error())
	}
	return s
}

// MustParseReplace is like ParseReplace but panics on error.
func MustParseReplace(text string) Replace {
	r, err := ParseReplace(text)
	if err != nil {
		panic("pattern: ParseReplace(`" + text + "`): " + err.Error())
	}
	return r
}

func isWildcard(tok string) bool {
	switch tok {
	case "?", "??", "*", "**":
		return true
	}
	return false
}

// parseHexByte accepts exactly two hex digits of either case.
func parseHexByte(tok string) (byte, bool) {
	if len(tok) != 2 {
		return 0, false
	}
	hi, ok1 := hexNibble(tok[0])
	lo, ok2 := hexNibble(tok[1])
	if !ok1 || !ok2 {
		return 0, false
	}
	return hi<<4 | lo, true
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

const hexDigits = "0123456789ABCDEF"

func hexByte(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0x0F]})
}
