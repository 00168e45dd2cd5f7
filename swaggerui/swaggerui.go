package swaggerui

import (
	"archive/zip"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"path"
	"strings"
)

//go:embed dist
var dist embed.FS

// IndexFile is the viewer entry page.
const IndexFile = "index.html"

var (
	// ErrNotFound is returned when no viewer file matches a name.
	ErrNotFound = errors.New("swaggerui: file not found")

	// ErrArchiveTooLarge is returned when a custom archive exceeds the
	// configured size limit, compressed or uncompressed.
	ErrArchiveTooLarge = errors.New("swaggerui: archive exceeds size limit")

	// ErrNoIndex is returned when a custom archive has no index.html at its
	// root or inside its single top-level directory.
	ErrNoIndex = errors.New("swaggerui: archive has no index.html")
)

// File is an opened viewer asset. The caller closes Content.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.ReadCloser
}

// GetFileFunc looks up a viewer file by its slash separated name. It
// returns ErrNotFound to defer to the viewer archive.
type GetFileFunc func(name string) (*File, error)

// Assets resolves viewer files. Files come from the custom lookup when
// one is set, then from the archive: the embedded viewer unless replaced
// by SetArchive or SetFS.
//
// Assets is not safe for concurrent modification; configure it before
// serving.
type Assets struct {
	fsys    fs.FS
	getFile GetFileFunc
}

// New returns assets backed by the embedded viewer.
func New() *Assets {
	return &Assets{fsys: Embedded()}
}

// Embedded returns the embedded viewer file system.
func Embedded() fs.FS {
	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		panic(fmt.Sprintf("swaggerui: embedded viewer: %v", err))
	}
	return sub
}

// SetFS replaces the viewer archive with fsys.
func (a *Assets) SetFS(fsys fs.FS) {
	a.fsys = fsys
}

// SetArchive replaces the viewer archive with the zip archive read from r.
// A non-positive maxSize disables the size limit.
func (a *Assets) SetArchive(r io.ReaderAt, size, maxSize int64) error {
	fsys, err := OpenArchive(r, size, maxSize)
	if err != nil {
		return err
	}
	a.fsys = fsys
	return nil
}

// SetGetFile sets the custom lookup consulted before the archive.
func (a *Assets) SetGetFile(fn GetFileFunc) {
	a.getFile = fn
}

// Open resolves a viewer file. Any query string is dropped from name.
func (a *Assets) Open(name string) (*File, error) {
	name, ok := cleanName(name)
	if !ok {
		return nil, ErrNotFound
	}

	if a.getFile != nil {
		f, err := a.getFile(name)
		switch {
		case err == nil && f != nil:
			if f.ContentType == "" {
				f.ContentType = ContentType(name)
			}
			return f, nil
		case err != nil && !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("custom lookup %s: %w", name, err)
		}
	}

	if a.fsys == nil {
		return nil, ErrNotFound
	}

	f, err := a.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if stat.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}

	return &File{
		Name:        name,
		ContentType: ContentType(name),
		Size:        stat.Size(),
		Content:     f,
	}, nil
}

// ContentType returns the MIME type of a file name by extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// OpenArchive reads a zip archive as a file system. When the archive
// wraps the viewer in a single top-level directory, that directory
// becomes the root.
func OpenArchive(r io.ReaderAt, size, maxSize int64) (fs.FS, error) {
	if maxSize > 0 && size > maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrArchiveTooLarge, size)
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read viewer archive: %w", err)
	}

	if maxSize > 0 {
		var total uint64
		for _, f := range zr.File {
			total += f.UncompressedSize64
			if total > uint64(maxSize) {
				return nil, fmt.Errorf("%w: uncompressed content over %d bytes", ErrArchiveTooLarge, maxSize)
			}
		}
	}

	return archiveRoot(zr)
}

func archiveRoot(fsys fs.FS) (fs.FS, error) {
	if _, err := fs.Stat(fsys, IndexFile); err == nil {
		return fsys, nil
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read viewer archive: %w", err)
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return nil, ErrNoIndex
	}

	sub, err := fs.Sub(fsys, entries[0].Name())
	if err != nil {
		return nil, err
	}
	if _, err := fs.Stat(sub, IndexFile); err != nil {
		return nil, ErrNoIndex
	}
	return sub, nil
}

// cleanName strips the query string and leading slashes from name and
// rejects names escaping the viewer root.
func cleanName(name string) (string, bool) {
	if idx := strings.IndexByte(name, '?'); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return "", false
	}
	name = path.Clean(name)
	if !fs.ValidPath(name) || name == "." {
		return "", false
	}
	return name, true
}
