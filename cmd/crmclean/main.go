package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "clean":
		cmdClean(os.Args[2:])
	case "runs":
		cmdRuns(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	case "version":
		fmt.Println("crmclean " + version)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: crmclean <command>

Commands:
  clean    Clean and deduplicate a CSV export
  runs     List past cleaning runs
  serve    Start the HTTP + MCP server
  version  Print the version
`)
}
