package main

import (
	"os"

	"github.com/censuskit/censuskit/logging"
)

func main() {
	logging.Initialize("cli")
	os.Exit(Execute())
}
