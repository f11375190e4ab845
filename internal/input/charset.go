package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// ErrUnknownCharset is returned when text is not UTF-8 and its encoding
// cannot be identified or decoded.
var ErrUnknownCharset = errors.New("unknown charset")

const byteOrderMark = "\ufeff"

// ToUTF8 returns data as UTF-8 text. Valid UTF-8 is returned as is (minus a
// leading byte order mark); anything else is run through charset detection
// and decoded.
func ToUTF8(data []byte) (string, error) {
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), byteOrderMark), nil
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnknownCharset, err)
	}

	return Decode(data, result.Charset)
}

// Decode converts data from the named encoding (any WHATWG label, e.g.
// "latin1" or "Shift_JIS") to UTF-8.
func Decode(data []byte, label string) (string, error) {
	enc, _ := charset.Lookup(label)
	if enc == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownCharset, label)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", label, err)
	}

	return string(decoded), nil
}
