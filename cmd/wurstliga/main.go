package main

import "github.com/pfrederiksen/wurstliga/internal/cli"

func main() {
	cli.Execute()
}
