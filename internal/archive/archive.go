// Package archive implements the top-level archive directory: a format
// marker plus a sequence of bands.
package archive

import (
	"os"
	"path/filepath"

	"golang.org/x/exp/slices"

	"github.com/Priyanshu23/duraarchive/internal/band"
	"github.com/Priyanshu23/duraarchive/internal/derrors"
	"github.com/Priyanshu23/duraarchive/internal/ioutil"
	"github.com/Priyanshu23/duraarchive/internal/numbering"
	"github.com/Priyanshu23/duraarchive/internal/record"
)

const headerName = "DURA-ARCHIVE"

// Archive is a handle on an on-disk archive root.
type Archive struct {
	root   string
	header *record.ArchiveHeader
}

func headerPath(root string) string { return filepath.Join(root, headerName) }

// Create makes a new archive at path: the directory must not already
// exist. It is created and its header is written.
func Create(path string) (*Archive, error) {
	if err := os.Mkdir(path, 0o755); err != nil {
		if os.IsExist(err) {
			return nil, derrors.E(derrors.ArchiveExists, path, err)
		}
		return nil, derrors.E(derrors.Other, path, err)
	}

	header := &record.ArchiveHeader{Magic: record.ArchiveMagic}
	if err := ioutil.WriteRecord(header, headerPath(path)); err != nil {
		return nil, err
	}

	return &Archive{root: path, header: header}, nil
}

// Open opens an existing archive at path, verifying its header's magic.
func Open(path string) (*Archive, error) {
	header, err := ioutil.ReadRecord(headerPath(path), derrors.NoSuchArchive, record.UnmarshalArchiveHeader)
	if err != nil {
		if derrors.Is(err, derrors.NoSuchArchive) {
			return nil, err
		}
		// Any read/decode failure past "file doesn't exist" means the
		// header is present but unreadable or malformed.
		return nil, derrors.E(derrors.BadArchiveHeader, headerPath(path), err)
	}
	if header.Magic != record.ArchiveMagic {
		return nil, derrors.E(derrors.BadArchiveHeader, headerPath(path), nil)
	}

	return &Archive{root: path, header: header}, nil
}

// Root returns the archive's root directory.
func (a *Archive) Root() string { return a.root }

// Header returns the archive's format-marker record.
func (a *Archive) Header() *record.ArchiveHeader { return a.header }

// ListBands returns the canonical band numbers present in the archive,
// sorted per spec.md's hyphen-split integer-list ordering.
func (a *Archive) ListBands() ([]string, error) {
	entries, err := os.ReadDir(a.root)
	if err != nil {
		return nil, derrors.E(derrors.Other, a.root, err)
	}

	var bands []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if canonical, ok := numbering.ParseBandDirName(e.Name()); ok {
			bands = append(bands, canonical)
		}
	}

	slices.SortFunc(bands, numbering.CompareBandNumbers)
	return bands, nil
}

// LastBand returns the greatest band number under CompareBandNumbers, or
// ok=false if the archive has no bands.
func (a *Archive) LastBand() (canonical string, ok bool, err error) {
	bands, err := a.ListBands()
	if err != nil {
		return "", false, err
	}
	if len(bands) == 0 {
		return "", false, nil
	}
	return bands[len(bands)-1], true, nil
}

// CreateBand allocates the next band number (max existing + 1, or 0) and
// returns a band.Writer in Preparing state. The caller must call
// StartBand to materialize it on disk.
func (a *Archive) CreateBand() (*band.Writer, error) {
	bands, err := a.ListBands()
	if err != nil {
		return nil, err
	}

	next := 0
	if len(bands) > 0 {
		last := numbering.SplitBandNumber(bands[len(bands)-1])
		next = last[0] + 1
	}

	return band.NewWriter(a.root, numbering.FormatBand(next)), nil
}

// OpenBandReader returns a band.Reader bound to the given canonical band
// number. Per spec.md's resolution of open question 1, this always
// succeeds (even if the band's head record is missing or unreadable);
// callers that want the head failure surfaced just call ReadHead.
func (a *Archive) OpenBandReader(canonical string) *band.Reader {
	return band.OpenReader(a.root, canonical)
}
