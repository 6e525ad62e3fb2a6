// Package band implements the band layer: a directory bracketing a
// sequence of blocks between a head and a tail marker.
package band

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	"golang.org/x/exp/slices"

	"github.com/Priyanshu23/duraarchive/internal/block"
	"github.com/Priyanshu23/duraarchive/internal/derrors"
	"github.com/Priyanshu23/duraarchive/internal/ioutil"
	"github.com/Priyanshu23/duraarchive/internal/numbering"
	"github.com/Priyanshu23/duraarchive/internal/record"
)

const (
	headName = "BAND-HEAD"
	tailName = "BAND-TAIL"
)

var blockIndexPattern = regexp.MustCompile(`^d(\d{6})\.i$`)

type writerState int

const (
	statePreparing writerState = iota
	stateOpen
	stateClosed
)

// Writer is the Preparing -> Open -> Closed band state machine described
// in spec.md §4.4.
type Writer struct {
	root       string
	number     string
	state      writerState
	nextBlockN int
}

// NewWriter returns a Writer in Preparing state bound to the given
// (canonical) band number under root.
func NewWriter(root, canonical string) *Writer {
	return &Writer{root: root, number: canonical, state: statePreparing}
}

// Number returns the band's canonical number.
func (w *Writer) Number() string { return w.number }

// Dir returns the band's directory path.
func (w *Writer) Dir() string {
	return filepath.Join(w.root, numbering.BandDirName(w.number))
}

func (w *Writer) headPath() string { return filepath.Join(w.Dir(), headName) }
func (w *Writer) tailPath() string { return filepath.Join(w.Dir(), tailName) }

// StartBand creates the band directory and writes its head record,
// transitioning Preparing -> Open. It fails if the directory already
// exists.
func (w *Writer) StartBand(hostname string) error {
	if w.state != statePreparing {
		panic("band.Writer: StartBand called out of state")
	}
	if err := os.Mkdir(w.Dir(), 0o755); err != nil {
		return derrors.E(derrors.Other, w.Dir(), err)
	}

	head := &record.BandHead{
		BandNumber:     w.number,
		StartUnixtime:  time.Now().Unix(),
		SourceHostname: hostname,
	}
	if err := ioutil.WriteRecord(head, w.headPath()); err != nil {
		return err
	}

	w.state = stateOpen
	return nil
}

// CreateBlock returns a fresh block.Writer (state Fresh) bound to the next
// unused block number in this band, computed by scanning the band
// directory for existing index files. The caller must drive the returned
// writer to Closed before calling CreateBlock again.
func (w *Writer) CreateBlock() (*block.Writer, error) {
	if w.state != stateOpen {
		panic("band.Writer: CreateBlock called out of state")
	}

	n, err := nextBlockNumber(w.Dir())
	if err != nil {
		return nil, err
	}
	w.nextBlockN = n + 1
	return block.NewWriter(w.Dir(), n), nil
}

// FinishBand writes the band's tail record and transitions Open -> Closed.
func (w *Writer) FinishBand() error {
	if w.state != stateOpen {
		panic("band.Writer: FinishBand called out of state")
	}

	tail := &record.BandTail{
		BandNumber:  w.number,
		BlockCount:  int64(w.nextBlockN),
		EndUnixtime: time.Now().Unix(),
	}
	if err := ioutil.WriteRecord(tail, w.tailPath()); err != nil {
		return err
	}

	w.state = stateClosed
	return nil
}

// nextBlockNumber scans dir for existing d<NNNNNN>.i index files and
// returns one past the largest block number found (0 if none exist).
func nextBlockNumber(dir string) (int, error) {
	found, err := discoverBlockNumbers(dir)
	if err != nil {
		return 0, err
	}
	if len(found) == 0 {
		return 0, nil
	}
	return found[len(found)-1] + 1, nil
}

// discoverBlockNumbers returns the sorted list of block numbers present in
// dir, determined by scanning for d<NNNNNN>.i index files.
func discoverBlockNumbers(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, derrors.E(derrors.Other, dir, err)
	}

	var found []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := blockIndexPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n := 0
		for _, r := range m[1] {
			n = n*10 + int(r-'0')
		}
		found = append(found, n)
	}
	slices.Sort(found)
	return found, nil
}
