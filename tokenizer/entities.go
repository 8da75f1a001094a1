package tokenizer

import (
	"strconv"
	"unicode"

	"github.com/go-html5-parser/html5parser/internal/constants"
)

// entityDiag is one character-reference error found while decoding a text
// run or attribute value: the WHATWG error code plus the reference's
// literal source text (e.g. "&not" or "&#xD801;"), which the tokenizer maps
// back to an exact input offset.
type entityDiag struct {
	Code    string
	Literal string
}

// decodeNumericEntity resolves the digits of a numeric character reference
// to the rune it produces, plus the parse-error code the value triggers
// ("" when the value is fine). Values in the Windows-1252 replacement table
// substitute per that table; surrogates and out-of-range values become
// U+FFFD; controls and noncharacters are reported but returned as-is.
func decodeNumericEntity(text string, isHex bool) (rune, string) {
	base := 10
	if isHex {
		base = 16
	}
	codepoint, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		// Overflow past int64 is still "outside unicode range".
		return unicode.ReplacementChar, "character-reference-outside-unicode-range"
	}

	cp := int(codepoint)
	if replacement, ok := constants.NumericReplacements[cp]; ok {
		code := "control-character-reference"
		if cp == 0x00 {
			code = "null-character-reference"
		}
		return replacement, code
	}

	switch {
	case cp > 0x10FFFF:
		return unicode.ReplacementChar, "character-reference-outside-unicode-range"
	case cp >= 0xD800 && cp <= 0xDFFF:
		return unicode.ReplacementChar, "surrogate-character-reference"
	case (cp >= 0xFDD0 && cp <= 0xFDEF) || cp&0xFFFE == 0xFFFE:
		return rune(cp), "noncharacter-character-reference"
	case cp < 0x20 && cp != 0x09 && cp != 0x0A && cp != 0x0C:
		return rune(cp), "control-character-reference"
	case cp == 0x7F:
		return rune(cp), "control-character-reference"
	}
	return rune(cp), ""
}

// decodeEntities decodes HTML character references in a string, returning
// the decoded text and the reference errors encountered.
//
// This follows the behavior of the Python reference implementation and is
// used when flushing text runs and attribute values.
func decodeEntities(text string, inAttribute bool) (string, []entityDiag) {
	var out []rune
	var diags []entityDiag
	out = make([]rune, 0, len(text))

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		// Find next '&'
		nextAmp := -1
		for j := i; j < len(runes); j++ {
			if runes[j] == '&' {
				nextAmp = j
				break
			}
		}
		if nextAmp == -1 {
			out = append(out, runes[i:]...)
			break
		}
		if nextAmp > i {
			out = append(out, runes[i:nextAmp]...)
		}

		i = nextAmp
		j := i + 1
		if j < len(runes) && runes[j] == '#' {
			j++
			isHex := false
			if j < len(runes) && (runes[j] == 'x' || runes[j] == 'X') {
				isHex = true
				j++
			}

			digitStart := j
			if isHex {
				for j < len(runes) && ((runes[j] >= '0' && runes[j] <= '9') || (runes[j] >= 'a' && runes[j] <= 'f') || (runes[j] >= 'A' && runes[j] <= 'F')) {
					j++
				}
			} else {
				for j < len(runes) && (runes[j] >= '0' && runes[j] <= '9') {
					j++
				}
			}

			hasSemicolon := j < len(runes) && runes[j] == ';'
			digitText := string(runes[digitStart:j])
			if digitText != "" {
				end := j
				if hasSemicolon {
					end = j + 1
				}
				literal := string(runes[i:end])
				r, code := decodeNumericEntity(digitText, isHex)
				if !hasSemicolon {
					diags = append(diags, entityDiag{Code: "missing-semicolon-after-character-reference", Literal: literal})
				}
				if code != "" {
					diags = append(diags, entityDiag{Code: code, Literal: literal})
				}
				out = append(out, r)
				i = end
				continue
			}

			// No digits after the numeric-reference prefix.
			if hasSemicolon && j < len(runes) {
				diags = append(diags, entityDiag{Code: "absence-of-digits-in-numeric-character-reference", Literal: string(runes[i : j+1])})
				out = append(out, runes[i:j+1]...)
				i = j + 1
			} else {
				diags = append(diags, entityDiag{Code: "absence-of-digits-in-numeric-character-reference", Literal: string(runes[i:j])})
				out = append(out, runes[i:j]...)
				i = j
			}
			continue
		}

		// Named entity: collect alphanumeric.
		for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j])) {
			j++
		}
		entityName := string(runes[i+1 : j])
		hasSemicolon := j < len(runes) && runes[j] == ';'

		if entityName == "" {
			out = append(out, '&')
			i++
			continue
		}

		// Exact match with semicolon.
		if hasSemicolon {
			if value, ok := constants.NamedEntities[entityName]; ok {
				out = append(out, []rune(value)...)
				i = j + 1
				continue
			}

			// Legacy prefix match in text.
			if !inAttribute {
				bestLen := 0
				best := ""
				for k := len(entityName); k > 0; k-- {
					prefix := entityName[:k]
					if constants.LegacyEntities[prefix] {
						if v, ok := constants.NamedEntities[prefix]; ok {
							best = v
							bestLen = k
							break
						}
					}
				}
				if bestLen > 0 {
					diags = append(diags, entityDiag{Code: "missing-semicolon-after-character-reference", Literal: "&" + entityName[:bestLen]})
					out = append(out, []rune(best)...)
					i = i + 1 + bestLen
					continue
				}
			}
		}

		// Without semicolon for legacy.
		if constants.LegacyEntities[entityName] {
			if value, ok := constants.NamedEntities[entityName]; ok {
				nextChar := rune(0)
				if j < len(runes) {
					nextChar = runes[j]
				}
				if inAttribute && nextChar != 0 && (unicode.IsLetter(nextChar) || unicode.IsDigit(nextChar) || nextChar == '=') {
					out = append(out, '&')
					i++
					continue
				}
				diags = append(diags, entityDiag{Code: "missing-semicolon-after-character-reference", Literal: "&" + entityName})
				out = append(out, []rune(value)...)
				i = j
				continue
			}
		}

		// Longest legacy prefix match.
		bestLen := 0
		best := ""
		for k := len(entityName); k > 0; k-- {
			prefix := entityName[:k]
			if constants.LegacyEntities[prefix] {
				if v, ok := constants.NamedEntities[prefix]; ok {
					best = v
					bestLen = k
					break
				}
			}
		}
		if bestLen > 0 {
			if inAttribute {
				out = append(out, '&')
				i++
				continue
			}
			diags = append(diags, entityDiag{Code: "missing-semicolon-after-character-reference", Literal: "&" + entityName[:bestLen]})
			out = append(out, []rune(best)...)
			i = i + 1 + bestLen
			continue
		}

		// No match.
		if hasSemicolon {
			diags = append(diags, entityDiag{Code: "unknown-named-character-reference", Literal: string(runes[i : j+1])})
			out = append(out, runes[i:j+1]...)
			i = j + 1
		} else {
			out = append(out, '&')
			i++
		}
	}

	return string(out), diags
}
