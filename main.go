package main

import (
	"os"

	"github.com/GoStoreRating/GoStoreRating/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
