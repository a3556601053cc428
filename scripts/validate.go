package main

import (
	"flag"
	"log"

	"ontix/internal/validation"
)

func main() {
	var baseURL string
	flag.StringVar(&baseURL, "url", "http://localhost:8082", "Base URL for API validation")
	flag.Parse()

	log.Printf("Starting API validation against: %s", baseURL)

	validator := validation.NewAPIValidator(baseURL)
	if err := validator.ValidateAll(); err != nil {
		log.Fatalf("Validation failed: %v", err)
	}

	log.Println("Validation passed")
}
