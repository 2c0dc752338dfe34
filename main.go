package main

import (
	"github.com/oxgen/pyexpr/cmd"
)

func main() {
	cmd.Execute()
}
