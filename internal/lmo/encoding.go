package lmo

import (
	"golang.org/x/text/encoding/charmap"
)

// LMO files predate Unicode: the on-disk bytes are ISO-8859-1. Every read
// transcodes to UTF-8 and every write transcodes back, so the rest of the
// system only ever sees UTF-8.

// DecodeLatin1 converts ISO-8859-1 bytes to a UTF-8 string.
func DecodeLatin1(raw []byte) string {
	// ISO-8859-1 maps every byte to a rune, so this cannot fail.
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	return string(out)
}

// EncodeLatin1 converts a UTF-8 string to ISO-8859-1 bytes. Runes outside
// the Latin-1 set are substituted rather than failing the whole write.
func EncodeLatin1(text string) []byte {
	enc := charmap.ISO8859_1.NewEncoder()
	out, err := enc.Bytes([]byte(text))
	if err != nil {
		// Fall back to byte-wise substitution for unmappable runes.
		buf := make([]byte, 0, len(text))
		for _, r := range text {
			if b, ok := charmap.ISO8859_1.EncodeRune(r); ok {
				buf = append(buf, b)
			} else {
				buf = append(buf, '?')
			}
		}
		return buf
	}
	return out
}

// DecodeWindows1252 converts Windows-1252 bytes to a UTF-8 string. The
// legacy news corpus uses this codepage (smart quotes and all).
func DecodeWindows1252(raw []byte) string {
	out, _ := charmap.Windows1252.NewDecoder().Bytes(raw)
	return string(out)
}
