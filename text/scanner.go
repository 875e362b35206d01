// Package text implements pathfinder.ContentScanner for plain files,
// decoding UTF-8 and falling back to Latin-1.
package text

import (
	"bytes"
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/fwojciec/pathfinder"
)

// sniffLen is how many leading bytes are checked for NUL.
const sniffLen = 8000

// Ensure Scanner implements pathfinder.ContentScanner at compile time.
var _ pathfinder.ContentScanner = (*Scanner)(nil)

// BinaryExtensions lists extensions never scanned for text.
var BinaryExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true,
	".tif": true, ".tiff": true, ".webp": true, ".heic": true, ".ico": true,
	".mp3": true, ".wav": true, ".flac": true, ".aac": true, ".ogg": true, ".m4a": true,
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true, ".wmv": true,
	".zip": true, ".gz": true, ".tgz": true, ".bz2": true, ".xz": true, ".7z": true, ".rar": true, ".tar": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true, ".o": true, ".a": true,
	".class": true, ".jar": true, ".pyc": true, ".wasm": true,
	".iso": true, ".dmg": true, ".img": true,
	".sqlite": true, ".db": true,
	".ttf": true, ".otf": true, ".woff": true, ".woff2": true,
}

// Scanner counts case-insensitive occurrences of a query term in a file.
type Scanner struct {
	maxSize int64
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxSize sets the size ceiling above which files are not scanned;
// 0 removes the ceiling. Defaults to pathfinder.DefaultMaxContentSize.
func WithMaxSize(n int64) Option {
	return func(s *Scanner) {
		s.maxSize = n
	}
}

// NewScanner creates a new Scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		maxSize: pathfinder.DefaultMaxContentSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan implements pathfinder.ContentScanner.
//
// Returns nil when content search is disabled or the term is empty. Binary
// files yield a match with EncodingBinary and no occurrences. Files larger
// than the size ceiling return an ETOOLARGE error; I/O failures return
// EUNREADABLE.
func (s *Scanner) Scan(ctx context.Context, c *pathfinder.FileCandidate, q *pathfinder.Query) (*pathfinder.ContentMatch, error) {
	if !q.SearchContent || q.Term == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if BinaryExtensions[pathfinder.Fold(c.Ext)] {
		return &pathfinder.ContentMatch{Encoding: pathfinder.EncodingBinary}, nil
	}
	if s.maxSize > 0 && c.Size > s.maxSize {
		return nil, pathfinder.Errorf(pathfinder.ETOOLARGE, "%s is %d bytes, content search limit is %d", c.Path, c.Size, s.maxSize)
	}

	data, err := s.read(c.Path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if bytes.IndexByte(data[:min(len(data), sniffLen)], 0) >= 0 {
		return &pathfinder.ContentMatch{Encoding: pathfinder.EncodingBinary}, nil
	}

	content, enc, err := Decode(data)
	if err != nil {
		// Undecodable content is treated like binary.
		return &pathfinder.ContentMatch{Encoding: pathfinder.EncodingBinary}, nil
	}

	return &pathfinder.ContentMatch{
		Occurrences: Count(content, q.Term),
		Encoding:    enc,
	}, nil
}

// read loads at most maxSize+1 bytes so a file that grew after the walk
// is still caught by the ceiling.
func (s *Scanner) read(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, unreadable(path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if s.maxSize > 0 {
		r = io.LimitReader(f, s.maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, unreadable(path, err)
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, pathfinder.Errorf(pathfinder.ETOOLARGE, "%s exceeds content search limit of %d bytes", path, s.maxSize)
	}
	return data, nil
}

func unreadable(path string, err error) error {
	if errors.Is(err, iofs.ErrPermission) {
		return pathfinder.Errorf(pathfinder.EUNREADABLE, "permission denied reading %s", path)
	}
	return pathfinder.Errorf(pathfinder.EUNREADABLE, "reading %s: %v", path, err)
}

// Decode returns data as a string, strictly as UTF-8 when valid and as
// Latin-1 otherwise.
func Decode(data []byte) (string, pathfinder.Encoding, error) {
	if utf8.Valid(data) {
		return string(data), pathfinder.EncodingUTF8, nil
	}
	s, err := decodeWith(data, charmap.ISO8859_1)
	if err != nil {
		return "", pathfinder.EncodingBinary, err
	}
	return s, pathfinder.EncodingLatin1, nil
}

func decodeWith(data []byte, enc encoding.Encoding) (string, error) {
	r := transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// Count returns the number of non-overlapping case-insensitive
// occurrences of term in content.
func Count(content, term string) uint {
	needle := pathfinder.Fold(term)
	if needle == "" {
		return 0
	}
	return uint(strings.Count(pathfinder.Fold(content), needle))
}
