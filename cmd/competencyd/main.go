package main

import (
	"log"
	"os"

	"github.com/virtualpatient/clinsim/internal/notify"
)

func main() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	log.Printf("competency worker consuming from %s", addr)
	if err := notify.Run(addr, nil); err != nil {
		log.Fatal(err)
	}
}
