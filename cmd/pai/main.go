package main

import "github.com/paifilter/paikit/internal/cli"

func main() {
	cli.Execute()
}
