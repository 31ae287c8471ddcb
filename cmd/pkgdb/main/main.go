package main

import (
	"os"

	"github.com/arthur-debert/pkgdb/cmd/pkgdb"
)

func main() {
	os.Exit(pkgdb.Execute(os.Args[1:]))
}
