// Package main is the entry point for the bbform CLI tool, which compiles
// leak-free rolling form statistics for baseball seasons.
package main

import "github.com/pable/go-bb-form/cmd"

func main() {
	cmd.Execute()
}
