package main

import (
	"log"

	"github.com/openvelo/scoreboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
