package definitions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

const definitionExt = ".json"

// FSSource reads definitions stored as one "<countryCode>.json" document per
// file inside a directory of an fs.FS.
type FSSource struct {
	fsys  fs.FS
	dir   string
	codec []CodecOption
}

var _ Source = (*FSSource)(nil)

// NewFSSource returns a source rooted at dir inside fsys.
func NewFSSource(fsys fs.FS, dir string, opts ...CodecOption) *FSSource {
	dir = strings.Trim(strings.TrimSpace(dir), "/")
	if dir == "" {
		dir = "."
	}
	return &FSSource{fsys: fsys, dir: dir, codec: opts}
}

// NewDirectorySource returns a source reading definition files from a
// directory on disk.
func NewDirectorySource(root string, opts ...CodecOption) *FSSource {
	return NewFSSource(os.DirFS(root), ".", opts...)
}

// ListCountryCodes returns the country codes of every visible definition
// file, sorted. Hidden entries and sub-directories are skipped; the code is
// the file name up to its first dot.
func (s *FSSource) ListCountryCodes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, fmt.Errorf("definitions: list %q: %w", s.dir, err)
	}

	codes := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, definitionExt) {
			continue
		}
		code, _, _ := strings.Cut(name, ".")
		if code == "" || slices.Contains(codes, code) {
			continue
		}
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes, nil
}

// Fetch reads and decodes the definition file for countryCode. Missing,
// empty or unaddressable files report ErrNotFound; decode problems report
// ErrMalformedDefinition.
func (s *FSSource) Fetch(ctx context.Context, countryCode string) (*RawDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validFileCode(countryCode) {
		return nil, &NotFoundError{CountryCode: countryCode}
	}

	data, err := fs.ReadFile(s.fsys, path.Join(s.dir, countryCode+definitionExt))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{CountryCode: countryCode}
		}
		return nil, fmt.Errorf("definitions: read %q: %w", countryCode, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &NotFoundError{CountryCode: countryCode}
	}

	definition, err := Decode(data, s.codec...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", countryCode, err)
	}
	definition.CountryCode = countryCode
	return definition, nil
}

// validFileCode rejects codes that would escape the definition directory or
// point at hidden files.
func validFileCode(code string) bool {
	if code == "" || strings.HasPrefix(code, ".") {
		return false
	}
	if strings.ContainsAny(code, `/\.`) {
		return false
	}
	return fs.ValidPath(code)
}
