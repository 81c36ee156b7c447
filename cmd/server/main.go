package main

import (
	"os"

	"chat-assistant/internal/app"
)

func main() {
	os.Exit(app.Run())
}
