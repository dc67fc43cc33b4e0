package main

import (
	"flag"
	"fmt"
	"os"

	"stocktree/client/tui"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "server base URL")
	username := flag.String("user", "", "username (optional, prompts otherwise)")
	password := flag.String("password", "", "password (optional, prompts otherwise)")
	flag.Parse()

	err := tui.Run(tui.Options{
		ServerURL: *serverURL,
		Username:  *username,
		Password:  *password,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
