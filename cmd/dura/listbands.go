package main

import (
	"fmt"
	"time"

	"github.com/Priyanshu23/duraarchive/internal/archive"
)

func cmdListBands(args []string) error {
	fs := newFlagSet("list-bands")
	quiet := fs.Bool("q", false, "print only band numbers, one per line")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("list-bands: exactly one archive directory argument required")
	}

	a, err := archive.Open(fs.Arg(0))
	if err != nil {
		return err
	}

	bands, err := a.ListBands()
	if err != nil {
		return err
	}

	for _, bn := range bands {
		r := a.OpenBandReader(bn)
		mark := ""
		if !r.IsFinished() {
			mark = "+"
		}

		if *quiet {
			fmt.Printf("%s%s\n", bn, mark)
			continue
		}

		head, err := r.ReadHead()
		if err != nil {
			fmt.Printf("%s%s\t(head unreadable: %v)\n", bn, mark, err)
			continue
		}
		fmt.Printf("%s%s\t%s\t%s\n", bn, mark,
			time.Unix(head.StartUnixtime, 0).UTC().Format(time.RFC3339), head.SourceHostname)
	}
	return nil
}
