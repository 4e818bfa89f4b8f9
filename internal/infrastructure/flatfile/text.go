package flatfile

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText devuelve el contenido como UTF-8. Los archivos escritos por versiones anteriores
// pueden venir en Windows-1252; en ese caso se transcodifican y legacy=true.
func decodeText(data []byte) (text string, legacy bool) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), false
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "�"), true
	}
	return string(out), true
}

// splitLines separa por líneas aceptando LF y CRLF.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
