package main

import "github.com/smetadoc/fsnbconv/internal/cmd"

func main() {
	cmd.Execute()
}
