package cmd

import (
	"bufio"
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable name, or def if ctx carries no kong
// context or the variable is undefined.
func kongVar(ctx context.Context, name, def string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if v, ok := ktx.Model.Vars()[name]; ok {
			return v
		}
	}

	return def
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// exitLine ends the input of a script.
const exitLine = "exit"

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// sources reads expression scripts in order. Duplicate files are read once,
// and stdin, if named, is read after all regular files.
type sources struct {
	files []*os.File
	stdin io.Reader

	// exited is set once a script reaches an exit line.
	exited bool
}

// openSources opens the files named by paths. All occurrences of "-" (and
// any path resolving to the same file as stdin) are replaced with a single
// read of stdin.
func openSources(paths []string, stdin *os.File) (*sources, error) {
	var src sources

	seen := make(map[fileKey]struct{})

	var stdinKey fileKey

	hasStdinKey := false
	if info, err := stdin.Stat(); err == nil {
		stdinKey, hasStdinKey = makeFileKey(info)
	}

	for _, path := range paths {
		if path == stdinSource {
			src.stdin = stdin

			continue
		}

		file, key, err := openUnique(path, seen)
		if err != nil {
			src.Close()

			return nil, err
		}

		if file == nil {
			continue
		}

		if hasStdinKey && key == stdinKey {
			file.Close()

			src.stdin = stdin

			continue
		}

		src.files = append(src.files, file)
	}

	return &src, nil
}

// openUnique opens the file at path unless a file with the same device and
// inode was already seen, in which case it returns a nil file.
func openUnique(path string, seen map[fileKey]struct{}) (*os.File, fileKey, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, fileKey{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, fileKey{}, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()

		return nil, fileKey{}, err
	}

	key, ok := makeFileKey(info)
	if !ok {
		return file, key, nil
	}

	if _, dup := seen[key]; dup {
		file.Close()

		return nil, key, nil
	}

	seen[key] = struct{}{}

	return file, key, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// IsZero reports whether there are no sources.
func (s *sources) IsZero() bool { return s == nil || len(s.files) == 0 && s.stdin == nil }

// Close closes every opened file.
func (s *sources) Close() error {
	if s == nil {
		return nil
	}

	var errs []error

	for _, f := range s.files {
		errs = append(errs, f.Close())
	}

	return errors.Join(errs...)
}

// Exited reports whether [sources.Lines] stopped at an exit line.
func (s *sources) Exited() bool { return s.exited }

func (s *sources) readers() []io.Reader {
	rs := make([]io.Reader, 0, len(s.files)+1)

	for _, f := range s.files {
		rs = append(rs, f)
	}

	if s.stdin != nil {
		rs = append(rs, s.stdin)
	}

	return rs
}

// Lines yields the expressions of every source in order. Lines are trimmed,
// blank lines and lines starting with '#' are skipped, and a line reading
// exactly "exit" ends the sequence and sets Exited.
func (s *sources) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, r := range s.readers() {
			for line, err := range scriptLines(r) {
				if err != nil {
					yield("", err)

					return
				}

				if line == exitLine {
					s.exited = true

					return
				}

				if !yield(line, nil) {
					return
				}
			}
		}
	}
}

// scriptLines yields the non-blank, non-comment lines of r, trimmed.
func scriptLines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(r)

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			if !yield(line, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield("", err)
		}
	}
}
