package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrNotAFile    = errors.New("not a regular file")
	ErrUnsupported = errors.New("unsupported audio format")
	ErrPermission  = errors.New("permission denied")
)

// Resolver converts user-supplied paths into media references.
type Resolver struct {
	home string
}

// NewResolver creates a resolver. The home directory is used to expand "~".
func NewResolver() *Resolver {
	home, _ := os.UserHomeDir()
	return &Resolver{home: home}
}

// Resolve validates path and returns a reference to it.
// The file must exist, be readable, and have a supported extension.
func (r *Resolver) Resolve(path string) (*Ref, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrNotFound
	}
	path = r.expand(path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%s: %w", abs, ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return nil, fmt.Errorf("%s: %w", abs, ErrPermission)
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", abs, ErrNotAFile)
	}

	format, ok := supportedExts[strings.ToLower(filepath.Ext(abs))]
	if !ok {
		return nil, fmt.Errorf("%s: %w", abs, ErrUnsupported)
	}

	f, err := os.Open(abs)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%s: %w", abs, ErrPermission)
		}
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	defer f.Close()

	ref := &Ref{
		Path:   abs,
		Title:  strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)),
		Format: format,
		Size:   info.Size(),
	}

	// Missing or broken tags are common; fall back to the file name.
	if m, err := tag.ReadFrom(f); err == nil {
		applyTags(ref, m)
	}

	return ref, nil
}

func applyTags(ref *Ref, m tag.Metadata) {
	if t := strings.TrimSpace(m.Title()); t != "" {
		ref.Title = t
	}
	author := strings.TrimSpace(m.AlbumArtist())
	if author == "" {
		author = strings.TrimSpace(m.Artist())
	}
	ref.Author = author
	ref.Book = strings.TrimSpace(m.Album())
}

func (r *Resolver) expand(path string) string {
	if r.home == "" || path[0] != '~' {
		return path
	}
	return filepath.Join(r.home, path[1:])
}
