package main

import "github.com/pacectl/pacectl/internal/cli"

func main() {
	cli.Execute()
}
