package utils

import (
	"math/rand"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// UsernameFromFullName derives a login name from a display name. Latin
// letters are lower-cased, Han characters are transliterated to pinyin,
// everything else is dropped. A short numeric suffix keeps collisions
// unlikely when two people share a name.
func UsernameFromFullName(fullName string) string {
	var b strings.Builder
	for _, r := range fullName {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		case unicode.Is(unicode.Han, r):
			if py := pinyin.LazyConvert(string(r), nil); len(py) > 0 {
				b.WriteString(py[0])
			}
		}
	}

	username := b.String()
	if username == "" {
		username = "employee"
	}

	suffixLength := rand.Intn(3) + 2
	for i := 0; i < suffixLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}
