package main

import (
	"fmt"
	"os"

	"github.com/umbralabs/umbra/cmd/umbra/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "layout":
		err = commands.Layout(args)
	case "hittest":
		err = commands.HitTest(args)
	case "init":
		err = commands.Init(args)
	case "version", "-v", "--version":
		fmt.Printf("umbra version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`umbra - shadow tree layout CLI

Usage: umbra <command> [options]

Commands:
  layout    Lay out a scene file and print the computed frames
  hittest   Lay out a scene file and resolve a point to a node
  init      Write a default umbra.toml and example scene
  version   Print version information
  help      Show this help message

Examples:
  umbra layout scene.toml                 Lay the scene out and print frames
  umbra layout scene.toml --config c.toml Use a specific config file
  umbra hittest scene.toml --x 15 --y 15  Find the node under a point
  umbra init                              Scaffold config and example scene`)
}
