package main

import (
	"fmt"
	"os"

	"github.com/duyet/sqlite-to-clickhouse/internal/config"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// load the .env file if it exists
	godotenv.Load()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := config.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
