package main

import (
	"fmt"

	"github.com/Priyanshu23/duraarchive/internal/archive"
)

func cmdDescribeArchive(args []string) error {
	fs := newFlagSet("describe-archive")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("describe-archive: exactly one directory argument required")
	}

	a, err := archive.Open(fs.Arg(0))
	if err != nil {
		return err
	}

	bands, err := a.ListBands()
	if err != nil {
		return err
	}

	fmt.Printf("archive: %s\n", a.Root())
	fmt.Printf("magic:   %s\n", a.Header().Magic)
	fmt.Printf("bands:   %d\n", len(bands))
	for _, bn := range bands {
		r := a.OpenBandReader(bn)
		mark := "+"
		if r.IsFinished() {
			mark = ""
		}
		fmt.Printf("  b%s%s\n", bn, mark)
	}
	return nil
}
