// Package main implements the ProfeAI API server and its maintenance
// commands: serve, migrate and lesson.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
