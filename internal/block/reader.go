package block

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Priyanshu23/duraarchive/internal/derrors"
	"github.com/Priyanshu23/duraarchive/internal/ioutil"
	"github.com/Priyanshu23/duraarchive/internal/numbering"
	"github.com/Priyanshu23/duraarchive/internal/record"
)

// Reader is a read-only view of a finalized block: it opens the index
// eagerly and the data file lazily, on first read.
type Reader struct {
	dir    string
	number int

	index    *record.BlockIndex
	dataFile *os.File
}

// OpenReader reads the index for block n in dir. The data file is not
// opened until Verify or ReadEntryContent is called.
func OpenReader(dir string, n int) (*Reader, error) {
	path := filepath.Join(dir, numbering.BlockIndexName(numbering.FormatBlock(n)))
	idx, err := ioutil.ReadRecord(path, derrors.MissingRecord, record.UnmarshalBlockIndex)
	if err != nil {
		return nil, err
	}
	return &Reader{dir: dir, number: n, index: idx}, nil
}

// Index returns the block's index record.
func (r *Reader) Index() *record.BlockIndex { return r.index }

func (r *Reader) dataPath() string {
	return filepath.Join(r.dir, numbering.BlockDataName(numbering.FormatBlock(r.number)))
}

func (r *Reader) openData() (*os.File, error) {
	if r.dataFile != nil {
		return r.dataFile, nil
	}
	f, err := os.Open(r.dataPath())
	if err != nil {
		return nil, derrors.E(derrors.Other, r.dataPath(), err)
	}
	r.dataFile = f
	return f, nil
}

// Close releases the data file handle, if open.
func (r *Reader) Close() error {
	if r.dataFile == nil {
		return nil
	}
	err := r.dataFile.Close()
	r.dataFile = nil
	return err
}

// Verify re-derives the block-level digest/length and each entry's digest
// and offset placement, returning one *derrors.Error (Kind:
// IntegrityFailure) per discrepancy found. A non-nil error return (as
// opposed to a non-empty findings slice) means the block itself could not
// be read at all.
func (r *Reader) Verify() ([]*derrors.Error, error) {
	f, err := r.openData()
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, derrors.E(derrors.Other, r.dataPath(), err)
	}

	var findings []*derrors.Error

	if int64(len(data)) != r.index.DataLength {
		findings = append(findings, derrors.Integrity(derrors.ScopeBlock, r.dataPath(),
			fmt.Sprintf("data_length=%d but index records %d", len(data), r.index.DataLength)))
	}

	sum := sha1.Sum(data)
	if sum != r.index.DataSHA1 {
		findings = append(findings, derrors.Integrity(derrors.ScopeBlock, r.dataPath(),
			fmt.Sprintf("data sha1 %x does not match index %x", sum, r.index.DataSHA1)))
	}

	wantOffset := int64(0)
	for _, e := range r.index.Files {
		if !e.HasData {
			continue
		}
		if e.Offset != wantOffset {
			findings = append(findings, derrors.Integrity(derrors.ScopeEntry, e.Path,
				fmt.Sprintf("offset %d is not contiguous with preceding entries (want %d)", e.Offset, wantOffset)))
		}
		end := e.Offset + e.Length
		if e.Offset < 0 || end > int64(len(data)) || e.Offset > int64(len(data)) {
			findings = append(findings, derrors.Integrity(derrors.ScopeEntry, e.Path,
				fmt.Sprintf("entry range [%d,%d) is outside the %d-byte data file", e.Offset, end, len(data))))
			wantOffset = end
			continue
		}
		region := data[e.Offset:end]
		regionSum := sha1.Sum(region)
		if regionSum != e.SHA1 {
			findings = append(findings, derrors.Integrity(derrors.ScopeEntry, e.Path,
				fmt.Sprintf("entry sha1 %x does not match index %x", regionSum, e.SHA1)))
		}
		wantOffset = end
	}

	return findings, nil
}

// ReadEntryContent returns the bytes for a single file entry, re-opening
// the data file if needed.
func (r *Reader) ReadEntryContent(e record.FileEntry) ([]byte, error) {
	if !e.HasData {
		return nil, nil
	}
	f, err := r.openData()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, e.Length)
	if _, err := f.ReadAt(buf, e.Offset); err != nil {
		return nil, derrors.E(derrors.Other, r.dataPath(), err)
	}
	return buf, nil
}
