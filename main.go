// main is the entry point of the commitlog CLI.
package main

import (
	"github.com/huangsam/commitlog/cmd"
	"github.com/huangsam/commitlog/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Cannot run commitlog", err)
	}
}
