package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pkgdb/cmd/pkgdb"
	"github.com/arthur-debert/pkgdb/internal/version"
)

func main() {
	rootCmd := pkgdb.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PKGDB",
		Section: "8",
		Source:  "pkgdb " + version.Version,
		Manual:  "pkgdb manual",
	}

	// Pages for every subcommand go to the directory given, if any
	if len(os.Args) > 1 {
		if err := doc.GenManTree(rootCmd, header, os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
