package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/coursebay/coursebay-backend/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on process environment")
	}

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Log.Info("server listening", "port", a.Cfg.Port)
	if err := a.Run(); err != nil {
		a.Log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
