// Package profile parses and serializes the game's text-format profile
// file: newline-separated key=value lines with byte-exact round trips.
package profile

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tstetson/fieldtuner/internal/apperr"
	"github.com/tstetson/fieldtuner/internal/checksum"
)

// binarySniffLen bounds how much of the header the binary check reads.
const binarySniffLen = 512

var binaryMagic = []byte("PROFSAVE")

// IsBinary reports whether data looks like the game's binary PROFSAVE
// layout rather than the editable text dialect: the PROFSAVE magic
// prefix or any NUL byte near the start of the file.
func IsBinary(data []byte) bool {
	head := data
	if len(head) > binarySniffLen {
		head = head[:binarySniffLen]
	}
	if bytes.HasPrefix(head, binaryMagic) {
		return true
	}
	return bytes.IndexByte(head, 0) >= 0
}

// Parse builds a Document from raw file bytes. Binary input fails fast
// with apperr.ErrBinaryFormat; a text file always parses, with
// unrecognized lines preserved verbatim.
func Parse(data []byte) (*Document, error) {
	if IsBinary(data) {
		return nil, fmt.Errorf("profile: %w", apperr.ErrBinaryFormat)
	}

	doc := &Document{
		byKey: make(map[string]int),
		eol:   detectEOL(data),
	}

	rest := string(data)
	for len(rest) > 0 {
		var raw, eol string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			raw, eol = rest[:i], "\n"
			if strings.HasSuffix(raw, "\r") {
				raw, eol = raw[:len(raw)-1], "\r\n"
			}
			rest = rest[i+1:]
		} else {
			raw, eol = rest, ""
			rest = ""
		}

		ln := line{raw: raw, eol: eol}
		if key, value, ok := splitEntry(raw); ok {
			ln.key, ln.value = key, value
			if _, dup := doc.byKey[key]; !dup {
				doc.byKey[key] = len(doc.lines)
			}
		}
		doc.lines = append(doc.lines, ln)
	}

	return doc, nil
}

// ParseFile reads and parses the profile at path, recording provenance
// (source path, read time, content checksum) on the document.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	doc.ReadAt = time.Now()
	doc.Checksum = checksum.Sum(data)
	return doc, nil
}

// splitEntry recognizes a key=value line. The first '=' is the
// delimiter; the value is the remainder, further '=' included. Blank
// lines, comments, and lines with an empty key are not entries.
func splitEntry(raw string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
		return "", "", false
	}
	i := strings.IndexByte(raw, '=')
	if i <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(raw[:i])
	if key == "" {
		return "", "", false
	}
	return key, raw[i+1:], true
}

// detectEOL returns the terminator style of the first line, used when
// appending new keys. Defaults to "\n" for empty or single-line input.
func detectEOL(data []byte) string {
	if i := bytes.IndexByte(data, '\n'); i > 0 && data[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
