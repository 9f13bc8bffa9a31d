package main

import "github.com/quietharbor/quietharbor/internal/cli"

func main() {
	cli.Execute()
}
