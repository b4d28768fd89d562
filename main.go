// main is the entry point for the pubviz CLI.
package main

import (
	"github.com/huangsam/pubviz/cmd"
	"github.com/huangsam/pubviz/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run pubviz", err)
	}
}
