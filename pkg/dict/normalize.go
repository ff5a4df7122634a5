// CLAUDE:SUMMARY Diacritic removal for Romanian/Central-European text and the normalizer modes used by term catalogs.
package dict

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Normalizer transforms a string into its comparison form.
type Normalizer func(string) string

// diacritics maps every accented rune to its base letter. Upper and lower
// case variants carry their own entries so the substitution keeps the case
// of the source rune.
var diacritics = map[rune]rune{
	'ă': 'a', 'â': 'a', 'á': 'a', 'à': 'a',
	'î': 'i', 'í': 'i', 'ì': 'i',
	'ș': 's', 'ş': 's', 'ś': 's',
	'ț': 't', 'ţ': 't', 'ť': 't',
	'ó': 'o', 'ò': 'o', 'ô': 'o',
	'é': 'e', 'è': 'e', 'ê': 'e',
	'ú': 'u', 'ù': 'u', 'û': 'u',
	'ń': 'n', 'ň': 'n',
	'ć': 'c', 'č': 'c',
	'ř': 'r',
	'ď': 'd',
	'ľ': 'l',
	'ž': 'z',

	'Ă': 'A', 'Â': 'A', 'Á': 'A', 'À': 'A',
	'Î': 'I', 'Í': 'I', 'Ì': 'I',
	'Ș': 'S', 'Ş': 'S', 'Ś': 'S',
	'Ț': 'T', 'Ţ': 'T', 'Ť': 'T',
	'Ó': 'O', 'Ò': 'O', 'Ô': 'O',
	'É': 'E', 'È': 'E', 'Ê': 'E',
	'Ú': 'U', 'Ù': 'U', 'Û': 'U',
	'Ń': 'N', 'Ň': 'N',
	'Ć': 'C', 'Č': 'C',
	'Ř': 'R',
	'Ď': 'D',
	'Ľ': 'L',
	'Ž': 'Z',
}

// diacriticStripper replaces table runes with their base letter and copies
// everything else through byte for byte, invalid UTF-8 included. The output has
// the same number of runes as the input.
type diacriticStripper struct{ transform.NopResetter }

func (diacriticStripper) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if base, ok := diacritics[r]; ok {
			n := utf8.RuneLen(base)
			if nDst+n > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			utf8.EncodeRune(dst[nDst:], base)
			nDst += n
		} else {
			if nDst+size > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			copy(dst[nDst:], src[nSrc:nSrc+size])
			nDst += size
		}
		nSrc += size
	}
	return nDst, nSrc, nil
}

// RemoveDiacritics replaces Romanian and common Latin accented letters with
// their unaccented base letter (Ședința -> Sedinta). Other runes, and bytes
// that are not valid UTF-8, are kept as they are.
func RemoveDiacritics(s string) string {
	result, _, err := transform.String(diacriticStripper{}, s)
	if err != nil {
		return s
	}
	return result
}

// FoldRomanian lowercases and strips diacritics. It is the comparison key used
// for accent-insensitive search.
func FoldRomanian(s string) string {
	return RemoveDiacritics(strings.ToLower(s))
}

// NormalizeLowercase lowercases but preserves accents.
func NormalizeLowercase(s string) string {
	return strings.ToLower(s)
}

// NormalizeNone returns the string unchanged.
func NormalizeNone(s string) string {
	return s
}

// GetNormalizer returns the normalizer for the given mode.
// Default is fold_ro.
func GetNormalizer(mode string) Normalizer {
	switch mode {
	case "fold_ro":
		return FoldRomanian
	case "strip_ro":
		return RemoveDiacritics
	case "lowercase":
		return NormalizeLowercase
	case "none":
		return NormalizeNone
	default:
		return FoldRomanian
	}
}
