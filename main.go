package main

import (
	"os"

	"github.com/gywan/gywan-site/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
