// Command catalogctl inspects the storefront catalogs from the command line.
//
// Usage:
//
//	catalogctl packs --q zelda --max 20000
//	catalogctl units --ofertas -o yaml
//	catalogctl home
//	catalogctl validate --kind units unitarios.csv
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
