// Package block implements the block layer: a (data, index) file pair that
// accumulates file contents while streaming a running SHA-1 digest.
package block

import (
	"crypto/sha1"
	"hash"
	"os"
	"path/filepath"

	"github.com/Priyanshu23/duraarchive/internal/derrors"
	"github.com/Priyanshu23/duraarchive/internal/ioutil"
	"github.com/Priyanshu23/duraarchive/internal/numbering"
	"github.com/Priyanshu23/duraarchive/internal/record"
)

type state int

const (
	stateFresh state = iota
	stateOpen
	stateClosed
)

// Writer is the Fresh -> Open -> Closed block state machine described in
// spec.md §4.3.
type Writer struct {
	dir    string
	number int
	state  state

	dataFile *os.File
	hash     hash.Hash
	offset   int64
	index    record.BlockIndex
}

// NewWriter returns a fresh Writer bound to block number n within dir. The
// caller must call Begin before StoreFile/Finish.
func NewWriter(dir string, n int) *Writer {
	return &Writer{dir: dir, number: n, state: stateFresh}
}

// Number returns the block number this writer is bound to.
func (w *Writer) Number() int { return w.number }

func (w *Writer) dataPath() string {
	return filepath.Join(w.dir, numbering.BlockDataName(numbering.FormatBlock(w.number)))
}

func (w *Writer) indexPath() string {
	return filepath.Join(w.dir, numbering.BlockIndexName(numbering.FormatBlock(w.number)))
}

// Begin creates the block's data file exclusively and transitions Fresh ->
// Open. It fails if the data file already exists.
func (w *Writer) Begin() error {
	if w.state != stateFresh {
		panic("block.Writer: Begin called out of state")
	}
	f, err := os.OpenFile(w.dataPath(), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return derrors.E(derrors.Other, w.dataPath(), err)
	}
	w.dataFile = f
	w.hash = sha1.New()
	w.index = record.BlockIndex{}
	w.state = stateOpen
	return nil
}

// StoreFile appends one FileEntry to the block's index and, for regular
// files and symlinks, the entry's content to the data stream. content is
// nil for directories; an empty (possibly non-nil) slice for empty regular
// files.
func (w *Writer) StoreFile(path string, ft record.FileType, content []byte) error {
	if w.state != stateOpen {
		panic("block.Writer: StoreFile called out of state")
	}

	entry := record.FileEntry{Path: path, Type: ft}

	if content != nil {
		entry.Length = int64(len(content))
		if entry.Length > 0 {
			sum := sha1.Sum(content)
			entry.HasData = true
			entry.Offset = w.offset
			entry.SHA1 = sum

			if _, err := w.dataFile.Write(content); err != nil {
				return derrors.E(derrors.Other, w.dataPath(), err)
			}
			w.hash.Write(content)
			w.offset += entry.Length
		}
	}

	w.index.Files = append(w.index.Files, entry)
	return nil
}

// Finish finalizes the block-level digest and total length, closes the
// data file, writes the index, and transitions Open -> Closed.
func (w *Writer) Finish() error {
	if w.state != stateOpen {
		panic("block.Writer: Finish called out of state")
	}

	w.index.DataLength = w.offset
	copy(w.index.DataSHA1[:], w.hash.Sum(nil))

	if err := w.dataFile.Close(); err != nil {
		return derrors.E(derrors.Other, w.dataPath(), err)
	}
	if err := ioutil.WriteRecord(&w.index, w.indexPath()); err != nil {
		return err
	}

	w.state = stateClosed
	return nil
}

// Index returns the finalized index. Only valid once Finish has returned
// successfully.
func (w *Writer) Index() record.BlockIndex { return w.index }
