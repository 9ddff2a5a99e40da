// Package main is the se2 command itself.
package main

import (
	"log"
	"os"

	"go.viam.com/se2/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
