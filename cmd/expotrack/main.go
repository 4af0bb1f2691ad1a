package main

import "github.com/matthieukhl/expotrack/internal/cmd"

func main() {
	cmd.Execute()
}
