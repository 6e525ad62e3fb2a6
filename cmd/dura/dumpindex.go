package main

import (
	"fmt"

	"github.com/Priyanshu23/duraarchive/internal/derrors"
	"github.com/Priyanshu23/duraarchive/internal/ioutil"
	"github.com/Priyanshu23/duraarchive/internal/record"
)

func cmdDumpIndex(args []string) error {
	fs := newFlagSet("dump-index")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("dump-index: at least one index file argument required")
	}

	for _, path := range fs.Args() {
		idx, err := ioutil.ReadRecord(path, derrors.Other, record.UnmarshalBlockIndex)
		if err != nil {
			return err
		}

		fmt.Printf("%s:\n", path)
		fmt.Printf("  data_length: %d\n", idx.DataLength)
		fmt.Printf("  data_sha1:   %x\n", idx.DataSHA1)
		for _, e := range idx.Files {
			if e.HasData {
				fmt.Printf("  %s %s length=%d offset=%d sha1=%x\n", e.Type, e.Path, e.Length, e.Offset, e.SHA1)
			} else {
				fmt.Printf("  %s %s\n", e.Type, e.Path)
			}
		}
	}
	return nil
}
