package main

import (
	"context"
	"log"

	"github.com/iurnickita/creditorder/internal/cli"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	return cli.Execute(context.Background())
}
