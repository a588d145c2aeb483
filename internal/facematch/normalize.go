package facematch

import (
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics removes diacritical marks from a string (e.g., "Jiří" -> "Jiri").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// NormalizePersonName normalizes a name for comparison (lowercase, no diacritics, spaces for dashes).
func NormalizePersonName(name string) string {
	name = RemoveDiacritics(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", " ")
	return strings.Join(strings.Fields(name), " ")
}

// ObfuscateName replaces every letter of name with a pseudo-random one,
// keeping case, length and word breaks so the layout stays representative.
// The same normalized name always yields the same result.
func ObfuscateName(name string) string {
	h := fnv.New64a()
	h.Write([]byte(NormalizePersonName(name)))
	rng := rand.New(rand.NewPCG(h.Sum64(), 0x5eed))

	var b strings.Builder
	for _, r := range RemoveDiacritics(name) {
		switch {
		case unicode.IsUpper(r):
			b.WriteRune(rune('A' + rng.IntN(26)))
		case unicode.IsLetter(r):
			b.WriteRune(rune('a' + rng.IntN(26)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
