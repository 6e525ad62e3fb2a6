// Package ingest implements the content ingestion pipeline: it walks
// caller-supplied source paths, classifies each entry, drives the block
// writer, rotates blocks at a configured capacity, and finalizes the band.
package ingest

import (
	"os"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/Priyanshu23/duraarchive/internal/archive"
	"github.com/Priyanshu23/duraarchive/internal/band"
	"github.com/Priyanshu23/duraarchive/internal/block"
	"github.com/Priyanshu23/duraarchive/internal/derrors"
	"github.com/Priyanshu23/duraarchive/internal/logging"
	"github.com/Priyanshu23/duraarchive/internal/record"
)

// DefaultFilesPerBlock is the reference block-rotation threshold from
// spec.md §4.6: a configuration knob of the ingestion pipeline only, never
// a read-time concern.
const DefaultFilesPerBlock = 20

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFilesPerBlock overrides DefaultFilesPerBlock.
func WithFilesPerBlock(n int) Option {
	return func(p *Pipeline) { p.filesPerBlock = n }
}

// WithHostname overrides the source hostname recorded in the band head
// (default os.Hostname()).
func WithHostname(h string) Option {
	return func(p *Pipeline) { p.hostname = h }
}

// WithLogger sets the logger used for warnings about skipped entries and
// duplicate paths (default: a logger that discards output).
func WithLogger(l *logging.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithProgress sets a callback invoked after each file is stored, carrying
// its logical path and the running count of files stored in the current
// band. This is a UI hook, not a core invariant: original_source's
// band.py had an analogous per-file report callback.
func WithProgress(fn func(path string, n int)) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// Pipeline drives one backup pass (one band) over a set of source paths.
type Pipeline struct {
	filesPerBlock int
	hostname      string
	log           *logging.Logger
	progress      func(path string, n int)
}

// New constructs a Pipeline with the given options applied over the
// defaults.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		filesPerBlock: DefaultFilesPerBlock,
		log:           logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.hostname == "" {
		if h, err := os.Hostname(); err == nil {
			p.hostname = h
		}
	}
	return p
}

// Run backs up sources into a newly allocated band of a, returning the
// canonical band number on success.
func (p *Pipeline) Run(a *archive.Archive, sources []string) (string, error) {
	var bw *band.Writer
	bw, err := a.CreateBand()
	if err != nil {
		return "", err
	}
	if err := bw.StartBand(p.hostname); err != nil {
		return "", err
	}

	seen := bloom.NewWithEstimates(uint(max(len(sources), 1)*4), 0.01)

	total := 0
	var current *block.Writer
	storeInCurrent := func(path string, ft record.FileType, content []byte) error {
		if current == nil {
			current, err = bw.CreateBlock()
			if err != nil {
				return err
			}
			if err := current.Begin(); err != nil {
				return err
			}
		}
		if err := current.StoreFile(path, ft, content); err != nil {
			return err
		}
		total++
		if p.progress != nil {
			p.progress(path, total)
		}
		if total%p.filesPerBlock == 0 {
			if err := current.Finish(); err != nil {
				return err
			}
			current = nil
		}
		return nil
	}

	for _, src := range sources {
		key := []byte(src)
		if seen.Test(key) {
			p.log.Warnf("duplicate source path queued twice in this band: %s", src)
		}
		seen.Add(key)

		fi, err := os.Lstat(src)
		if err != nil {
			return "", derrors.E(derrors.Other, src, err)
		}

		switch {
		case fi.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(src)
			if err != nil {
				return "", derrors.E(derrors.Other, src, err)
			}
			if err := storeInCurrent(src, record.FileTypeSymlink, []byte(target)); err != nil {
				return "", err
			}
		case fi.IsDir():
			if err := storeInCurrent(src, record.FileTypeDirectory, nil); err != nil {
				return "", err
			}
		case fi.Mode().IsRegular():
			content, err := os.ReadFile(src)
			if err != nil {
				return "", derrors.E(derrors.Other, src, err)
			}
			if err := storeInCurrent(src, record.FileTypeRegular, content); err != nil {
				return "", err
			}
		default:
			p.log.Warnf("skipping %s: not a regular file, directory, or symlink", src)
		}
	}

	if current != nil {
		if err := current.Finish(); err != nil {
			return "", err
		}
	}

	if err := bw.FinishBand(); err != nil {
		return "", err
	}

	return bw.Number(), nil
}
