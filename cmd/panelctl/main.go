package main

import "github.com/frankenpanel/frankenpanel/internal/cli"

func main() {
	cli.Execute()
}
