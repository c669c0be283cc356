package main

import (
	"os"

	"github.com/themerdev/themer/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
