// Package main is the entry point for the groupvault binary.
package main

import (
	"os"

	_ "github.com/mattn/go-sqlite3"

	"groupvault/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
