/*
Copyright © 2025 geeta-ai
*/
package main

import (
	"log"

	"github.com/geeta-ai/geeta-be/cmd"
	"github.com/joho/godotenv"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}
}
