package main

import (
	"log"

	"github.com/BIwashi/dshotdecode/app/decode"
	"github.com/BIwashi/dshotdecode/app/frame"
	"github.com/BIwashi/dshotdecode/pkg/cli"
)

func main() {
	c := cli.NewCLI(
		"dshotdecode",
		"Decode DSHOT motor frames from oversampled duty-cycle captures.",
	)

	c.AddCommands(
		decode.NewCommand(),
		frame.NewCommand(),
	)

	if err := c.Run(); err != nil {
		log.Fatal(err)
	}
}
