package main

import (
	"github.com/robotalks/e32.go/pkg/cli/sh"
	"github.com/robotalks/e32.go/pkg/node"
)

func init() {
	node.SetupFlags()
}

func main() {
	sh.Main()
}
