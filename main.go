package main

import "github.com/Digital-Shane/clip-tidy/internal/cmd"

func main() {
	cmd.Execute()
}
