package band

import (
	"os"
	"path/filepath"

	"github.com/Priyanshu23/duraarchive/internal/block"
	"github.com/Priyanshu23/duraarchive/internal/derrors"
	"github.com/Priyanshu23/duraarchive/internal/ioutil"
	"github.com/Priyanshu23/duraarchive/internal/numbering"
	"github.com/Priyanshu23/duraarchive/internal/record"
)

// Reader is a read-only view of a band. Per spec.md's resolution of open
// question 1, opening a Reader always succeeds even when the band
// directory's head record is missing or unreadable; that failure is
// surfaced lazily from ReadHead.
type Reader struct {
	root   string
	number string

	head    *record.BandHead
	headErr error
}

// OpenReader binds a Reader to the given (canonical) band number under
// root, eagerly attempting to load the head record. A failure to load the
// head is stored, not returned: HeadErr reports it, and ReadHead returns
// it (MissingRecord if the head file is absent, BadRecord if it does not
// decode).
func OpenReader(root, canonical string) *Reader {
	r := &Reader{root: root, number: canonical}
	head, err := ioutil.ReadRecord(r.headPath(), derrors.MissingRecord, record.UnmarshalBandHead)
	if err != nil {
		r.headErr = err
	} else {
		r.head = head
	}
	return r
}

// Number returns the band's canonical number.
func (r *Reader) Number() string { return r.number }

// Dir returns the band's directory path.
func (r *Reader) Dir() string {
	return filepath.Join(r.root, numbering.BandDirName(r.number))
}

func (r *Reader) headPath() string { return filepath.Join(r.Dir(), headName) }
func (r *Reader) tailPath() string { return filepath.Join(r.Dir(), tailName) }

// HeadErr returns the error (if any) encountered while eagerly loading the
// head record at construction time.
func (r *Reader) HeadErr() error { return r.headErr }

// IsFinished reports whether the band's tail record has been written.
func (r *Reader) IsFinished() bool {
	_, err := os.Stat(r.tailPath())
	return err == nil
}

// ReadHead returns the band's head record, or the error captured at
// construction time (MissingRecord if the head file is absent).
func (r *Reader) ReadHead() (*record.BandHead, error) {
	if r.head != nil {
		return r.head, nil
	}
	return nil, r.headErr
}

// ReadTail returns the band's tail record, or a MissingRecord error if the
// band is not finished.
func (r *Reader) ReadTail() (*record.BandTail, error) {
	return ioutil.ReadRecord(r.tailPath(), derrors.MissingRecord, record.UnmarshalBandTail)
}

// ReadBlockIndex returns the index record for block n.
func (r *Reader) ReadBlockIndex(n int) (*record.BlockIndex, error) {
	br, err := block.OpenReader(r.Dir(), n)
	if err != nil {
		return nil, err
	}
	return br.Index(), nil
}

// OpenBlockReader returns a full block.Reader for block n, for callers
// that need to verify or read content rather than just the index.
func (r *Reader) OpenBlockReader(n int) (*block.Reader, error) {
	return block.OpenReader(r.Dir(), n)
}

// BlockNumbers returns the sorted list of block numbers with an index file
// present in this band's directory, regardless of whether the band is
// finished.
func (r *Reader) BlockNumbers() ([]int, error) {
	return discoverBlockNumbers(r.Dir())
}
