package main

import "github.com/provedex/goswapd/internal/cli"

func main() {
	cli.Execute()
}
