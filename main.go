package main

import (
	"log"

	"PalletTrack/FiberConfig"
	"PalletTrack/Models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	Models.Connect()
	FiberConfig.FiberConfig(Models.DB)
}
