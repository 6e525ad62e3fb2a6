package main

import (
	"fmt"

	"github.com/Priyanshu23/duraarchive/internal/archive"
)

func cmdListFiles(args []string) error {
	fs := newFlagSet("list-files")
	fs.Parse(args)

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("list-files: exactly an archive directory and a band number are required")
	}

	a, err := archive.Open(fs.Arg(0))
	if err != nil {
		return err
	}

	r := a.OpenBandReader(fs.Arg(1))
	idx, err := r.ReadBlockIndex(0)
	if err != nil {
		return err
	}

	for _, e := range idx.Files {
		if e.HasData {
			fmt.Printf("%s\t%s\t%d\t%x\n", e.Type, e.Path, e.Length, e.SHA1)
		} else {
			fmt.Printf("%s\t%s\n", e.Type, e.Path)
		}
	}
	return nil
}
