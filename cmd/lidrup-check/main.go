package main

import (
	"os"

	"github.com/lidrupcheck/lidrup-check/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
