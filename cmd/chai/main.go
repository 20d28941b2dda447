// Package main is the entry point for the chai CLI.
package main

import (
	"os"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/cmd/chai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
