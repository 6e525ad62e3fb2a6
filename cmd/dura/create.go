package main

import (
	"fmt"

	"github.com/Priyanshu23/duraarchive/internal/archive"
)

func cmdCreateArchive(args []string) error {
	fs := newFlagSet("create-archive")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("create-archive: exactly one directory argument required")
	}
	dir := fs.Arg(0)

	a, err := archive.Create(dir)
	if err != nil {
		return err
	}
	log.Infof("created archive at %s", a.Root())
	return nil
}
