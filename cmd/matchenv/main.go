package main

import (
	"flag"
	"log"
	"os"

	matchenvcmd "github.com/katalvlaran/envmatch/internal/cmd/matchenv"
)

func main() {
	cfg, err := matchenvcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	if err := matchenvcmd.Run(cfg, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("matchenv: %v", err)
	}
}
