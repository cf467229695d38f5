package resource

import (
	"archive/zip"
	"fmt"
	"io"
)

// maxZipEntrySize bounds a single extracted part, mirroring the teacher's
// readFileFromZip zip-bomb guard.
const maxZipEntrySize = 256 << 20 // 256 MB

// Archive is the read-only ZIP access surface the resolution pipeline
// needs. It is an interface (rather than a concrete *zip.Reader) so tests
// can supply an in-memory fixture without round-tripping through the zip
// format.
type Archive interface {
	// Read returns the uncompressed bytes of path, or an error if path is
	// absent (package-malformed/part-unreadable per spec §7).
	Read(path string) ([]byte, error)
	// Has reports whether path exists in the archive.
	Has(path string) bool
}

// ZipArchive adapts archive/zip to the Archive interface.
type ZipArchive struct {
	zr    *zip.Reader
	index map[string]*zip.File
	// MaxEntrySize bounds a single extracted part; zero means the package
	// default. Process wires this from Options.MaxZipEntrySize so callers
	// can tighten or loosen the zip-bomb guard per call.
	MaxEntrySize int64
}

// OpenZip opens r (size bytes long) as a PPTX ZIP container.
func OpenZip(r io.ReaderAt, size int64) (*ZipArchive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("resource: open zip: %w", err)
	}
	idx := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		idx[f.Name] = f
	}
	return &ZipArchive{zr: zr, index: idx, MaxEntrySize: maxZipEntrySize}, nil
}

func (z *ZipArchive) Has(path string) bool {
	_, ok := z.index[path]
	return ok
}

func (z *ZipArchive) Read(path string) ([]byte, error) {
	f, ok := z.index[path]
	if !ok {
		return nil, fmt.Errorf("resource: part not found: %s", path)
	}
	limit := z.MaxEntrySize
	if limit <= 0 {
		limit = maxZipEntrySize
	}
	if int64(f.UncompressedSize64) > limit {
		return nil, fmt.Errorf("resource: part %s exceeds maximum allowed size", path)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("resource: open part %s: %w", path, err)
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, limit))
}

// MemArchive is an in-memory Archive used by tests and by anything that
// has already unpacked parts into a map.
type MemArchive map[string][]byte

func (m MemArchive) Has(path string) bool { _, ok := m[path]; return ok }

func (m MemArchive) Read(path string) ([]byte, error) {
	b, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("resource: part not found: %s", path)
	}
	return b, nil
}
