package main

import (
	"os"

	"github.com/architeacher/storetools/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
