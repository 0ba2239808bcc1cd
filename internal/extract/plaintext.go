package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodePlainText turns arbitrary bytes into a string. It tries UTF-8 first,
// then Latin-1, then UTF-8 with replacement runes as a last resort, so it
// never fails on decoding.
func decodePlainText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	if decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
		return string(decoded)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
