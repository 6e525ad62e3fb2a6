// Command dura drives the archive storage engine: creating archives,
// running backups, and inspecting or validating what's on disk. It is
// deliberately thin: all of the engineering lives in internal/archive,
// internal/band, internal/block, internal/ingest, and internal/validate;
// this package only parses arguments and formats output.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Priyanshu23/duraarchive/internal/logging"
)

type verb struct {
	fn   func(args []string) error
	help string
}

var verbs = map[string]verb{
	"create-archive":   {cmdCreateArchive, "create-archive <dir>"},
	"describe-archive": {cmdDescribeArchive, "describe-archive <dir>"},
	"backup":           {cmdBackup, "backup <src...> <archive>"},
	"list-bands":       {cmdListBands, "list-bands [-q] <archive>"},
	"list-files":       {cmdListFiles, "list-files <archive> <band>"},
	"dump-index":       {cmdDumpIndex, "dump-index <index_file...>"},
	"validate":         {cmdValidate, "validate <archive>"},
}

var log = logging.Default()

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	name, rest := args[0], args[1:]
	v, ok := verbs[name]
	if !ok {
		usage()
		os.Exit(2)
	}
	return v.fn(rest)
}

func usage() {
	fmt.Fprintf(os.Stderr, "dura <command> [options] [args]\n\ncommands:\n")
	for _, name := range []string{"create-archive", "describe-archive", "backup", "list-bands", "list-files", "dump-index", "validate"} {
		fmt.Fprintf(os.Stderr, "\t%s\n", verbs[name].help)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: dura %s\n", verbs[name].help)
		fs.PrintDefaults()
	}
	return fs
}
