package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// AccessError reports a path that could not be stat'ed, listed, read or written.
type AccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// EncodingError reports a file whose content is not valid UTF-8.
type EncodingError struct {
	Path string
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s is not valid UTF-8 (invalid byte at offset %d)", e.Path, e.Offset)
}

// VisitFunc is called for every eligible file. A non-nil err is an
// *AccessError for a path the walk could not enter; the file or directory is
// skipped either way. Returning an error stops the walk.
type VisitFunc func(path string, err error) error

// Walk visits every file under root whose name ends with one of extensions,
// in lexical order. Directories named in excludeDirs are never entered. The
// root itself is entered even if its name is excluded.
func Walk(root string, excludeDirs, extensions []string, visit VisitFunc) error {
	info, err := os.Stat(root)
	if err != nil {
		return &AccessError{Path: root, Op: "stat", Err: err}
	}
	if !info.IsDir() {
		return &AccessError{Path: root, Op: "walk", Err: errors.New("not a directory")}
	}

	excluded := make(map[string]struct{}, len(excludeDirs))
	for _, name := range excludeDirs {
		excluded[name] = struct{}{}
	}

	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			// Either a listing failure on a directory (reported a second time
			// with the error) or an entry that vanished mid-walk.
			return visit(path, &AccessError{Path: path, Op: "read directory", Err: err})
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := excluded[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if !HasExtension(path, extensions) {
			return nil
		}
		return visit(path, nil)
	})
}

// HasExtension reports whether path ends with one of the given suffixes.
func HasExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ReadText reads the whole file and checks that it decodes as UTF-8.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &AccessError{Path: path, Op: "read", Err: err}
	}
	if !utf8.Valid(data) {
		return "", &EncodingError{Path: path, Offset: invalidOffset(data)}
	}
	return string(data), nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// WriteText overwrites an existing file, keeping its permission bits.
func WriteText(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &AccessError{Path: path, Op: "stat", Err: err}
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return &AccessError{Path: path, Op: "write", Err: err}
	}
	return nil
}
