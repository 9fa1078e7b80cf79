package main

import (
	"github.com/statismics/backend/cmd/app"
)

func main() {
	app.Run()
}
