package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Demoen/organizer-application/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// A .env file in the working directory may carry the model API key
	_ = godotenv.Load()

	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = date

	err := cli.NewRootCommand().Execute()
	if code := cli.ExitCode(err); code != 0 {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(code)
	}
}
