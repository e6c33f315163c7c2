package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/vlatan/lesson-videos/internal/app"
)

func main() {

	// Local runs only, production sets the environment
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded; %v", err)
	}

	if err := app.New().RegisterRoutes().Run(); err != nil {
		log.Fatalf("http server error; %v", err)
	}
}
