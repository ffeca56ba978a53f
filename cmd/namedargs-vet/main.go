// Command namedargs-vet reports named-argument calls that pass the same
// marker more than once.
//
//	go vet -vettool=$(which namedargs-vet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/reoring/namedargs/analysis/dupargs"
)

func main() { singlechecker.Main(dupargs.Analyzer) }
