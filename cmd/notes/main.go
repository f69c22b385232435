package main

import (
	"fmt"
	"os"
)

const usageText = `notes is a terminal notes client.

Usage:
  notes <command> [flags]

Commands:
  ui       run the terminal UI
  daemon   run the local notes service
  login    sign in and remember the session
  logout   forget the stored session
  whoami   show the signed in user
  ls       list notes
  add      create a note
  rm       delete a note
  config   print configuration (effective or defaults)
  help     show help

Flags:
  -h, --help   show help

Daemon flags:
  --background    run in background (logs to file)

Examples:
  notes login --user alice
  notes ls --category Work --search roadmap
  notes add --title "Groceries" --tags shop,weekly
  notes config --default
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"ui"}
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdin, os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
