package main

import (
	"log"

	"github.com/martinmoraga/pyvolt/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
