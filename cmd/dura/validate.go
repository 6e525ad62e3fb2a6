package main

import (
	"fmt"
	"os"

	"github.com/Priyanshu23/duraarchive/internal/validate"
)

func cmdValidate(args []string) error {
	fs := newFlagSet("validate")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate: exactly one archive directory argument required")
	}

	report, err := validate.Archive(fs.Arg(0))
	if err != nil {
		return err
	}

	for _, f := range report.Findings {
		fmt.Fprintln(os.Stderr, f.String())
	}
	if !report.OK() {
		fmt.Printf("%d finding(s)\n", len(report.Findings))
		return nil
	}
	fmt.Println("archive is consistent")
	return nil
}
