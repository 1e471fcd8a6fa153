// Package encoding normalizes uploaded spreadsheet exports to UTF-8. Files
// saved by older desktop spreadsheet apps in Indonesia are usually
// Windows-1252, sometimes UTF-16 with a BOM.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names as reported by Detect.
const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
	ISO88591    = "ISO-8859-1"
)

const sniffLen = 4096

var boms = []struct {
	prefix  []byte
	charset string
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

// decoders maps the charsets we accept to their x/text decoders. UTF-8 has
// no entry because it needs no transform.
var decoders = map[string]xenc.Encoding{
	UTF16LE:     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	UTF16BE:     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	Windows1252: charmap.Windows1252,
	ISO88591:    charmap.ISO8859_1,
}

// Detect guesses the charset of buf: BOM first, then UTF-8 validity, then
// chardet. Anything chardet cannot place is treated as Windows-1252.
func Detect(buf []byte) string {
	for _, b := range boms {
		if bytes.HasPrefix(buf, b.prefix) {
			return b.charset
		}
	}

	if utf8.Valid(buf) {
		return UTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return Windows1252
	}

	switch result.Charset {
	case UTF8, UTF16LE, UTF16BE, ISO88591:
		return result.Charset
	default:
		return Windows1252
	}
}

// NewUTF8Reader wraps r so that it yields UTF-8, with any UTF-8 BOM removed.
// It also reports the detected charset.
func NewUTF8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	charset := Detect(buf)

	if charset == UTF8 {
		if bytes.HasPrefix(buf, boms[0].prefix) {
			_, _ = br.Discard(len(boms[0].prefix))
		}

		return br, charset, nil
	}

	return transform.NewReader(br, decoders[charset].NewDecoder()), charset, nil
}
