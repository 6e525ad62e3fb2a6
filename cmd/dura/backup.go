package main

import (
	"fmt"

	"github.com/Priyanshu23/duraarchive/internal/archive"
	"github.com/Priyanshu23/duraarchive/internal/ingest"
)

func cmdBackup(args []string) error {
	fs := newFlagSet("backup")
	filesPerBlock := fs.Int("files-per-block", ingest.DefaultFilesPerBlock, "rotate to a new block after this many files")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("backup: at least one source path and an archive directory are required")
	}
	archiveDir := fs.Arg(fs.NArg() - 1)
	sources := fs.Args()[:fs.NArg()-1]

	a, err := archive.Open(archiveDir)
	if err != nil {
		return err
	}

	p := ingest.New(
		ingest.WithFilesPerBlock(*filesPerBlock),
		ingest.WithLogger(log),
		ingest.WithProgress(func(path string, n int) {
			log.Infof("[%d] %s", n, path)
		}),
	)

	var bandNumber string
	err = withArchiveLock(a.Root(), func() error {
		var runErr error
		bandNumber, runErr = p.Run(a, sources)
		return runErr
	})
	if err != nil {
		return err
	}

	log.Infof("finished band b%s", bandNumber)
	return nil
}
