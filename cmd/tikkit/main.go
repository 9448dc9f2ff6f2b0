package main

import (
	"github.com/tikkit/tikkit/internal/cli"
)

func main() {
	cli.Execute()
}
