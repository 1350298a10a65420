package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/noah-isme/toko-till/internal/checkout"
)

func main() {
	out := flag.String("o", "", "write the scenario to this file instead of stdout")
	flag.Parse()

	data, err := json.MarshalIndent(checkout.SampleRequest(), "", "  ")
	if err != nil {
		log.Fatalf("encode scenario: %v", err)
	}
	data = append(data, '\n')

	if *out == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatalf("write scenario: %v", err)
		}
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("scenario written to %s", *out)
}
