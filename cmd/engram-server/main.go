// Websocket server for the memory-backed chat agent.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/engramlabs/engram-go-sdk/api"
	"github.com/engramlabs/engram-go-sdk/config"
	"github.com/engramlabs/engram-go-sdk/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		cfg = config.Empty()
	}

	sdk, err := api.New(cfg)
	if err != nil {
		return err
	}
	defer sdk.Close()

	if path := cfg.GetString("importPath"); path != "" {
		count, err := sdk.ImportCSV(context.Background(), path)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		log.Printf("Imported %d records from %s", count, path)
	}

	addr := cfg.GetStringOrDefault(api.KeyListenAddr, ":8080")
	log.Printf("WebSocket: ws://localhost%s/ws", addr)
	log.Printf("Health:    http://localhost%s/health", addr)
	return server.New(sdk.Engine).Run(addr)
}
