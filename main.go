package main

import (
	"log"

	"github.com/SIH-2025/edusafe-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
