package main

import (
	"flag"
	"log"

	"zoodash/internal/di"
	"zoodash/internal/structures"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to the YAML config file")
	debug := flag.Bool("debug", false, "duplicate logs to the console")
	flag.Parse()

	flags := &structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	}

	if _, err := di.InitApp(flags); err != nil {
		log.Fatalf("zoodash: %s", err)
	}
}
