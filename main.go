package main

import (
	"os"

	"github.com/idregistry/idregistry/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
