// Command themata generates visual themes from images or seed colours.
package main

import (
	"github.com/jfenske/themata/internal/cli"
)

func main() {
	cli.Execute()
}
