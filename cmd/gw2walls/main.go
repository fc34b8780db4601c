package main

import "go-gw2walls/cmd/gw2walls/cmd"

func main() {
	// Execute the root command (defined in cmd/root.go)
	cmd.Execute()
}
