package main

import (
	"fmt"
	"os"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "extract":
		err = runExtract(args)
	case "watch":
		err = runWatch(args)
	case "serve":
		err = runServe(args)
	case "version":
		fmt.Printf("tsmeta %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "tsmeta %s: %v\n", command, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: tsmeta <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  extract [globs...]   Extract metadata from matching files as JSON")
	fmt.Println("  watch [dir]          Watch sources and re-extract on change")
	fmt.Println("  serve                Start MCP server on stdio")
	fmt.Println("  version              Print version")
	fmt.Println("  help                 Show this help message")
}
