package main

import "github.com/pfrederiksen/playoff-picture/internal/cli"

func main() {
	cli.Execute()
}
