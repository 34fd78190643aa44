package main

import (
	"os"

	"github.com/kitbuilder587/chatgpt-plugin/internal/cli"
)

func main() {
	err := cli.Execute()
	if err != nil {
		cli.PrintError(err)
	}
	os.Exit(cli.ExitCode(err))
}
