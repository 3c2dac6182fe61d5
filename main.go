// Package main is the entry point for the cpm CLI.
package main

import "cpm.dev/pkg/cpm/cmd"

func main() {
	cmd.Execute()
}
