// Interactive console for the memory-backed chat agent.
//
// Input format: <message>, <owner_id> — split on the last comma, so the
// message itself may contain commas. Type "exit" to quit.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"

	"github.com/engramlabs/engram-go-sdk/api"
	"github.com/engramlabs/engram-go-sdk/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
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

	ctx := context.Background()

	if path := cfg.GetString("importPath"); path != "" {
		count, err := sdk.ImportCSV(ctx, path)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		fmt.Printf("Imported %d records from %s\n", count, path)
	}

	rl, err := readline.New("You: ")
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()

	fmt.Println("Agent ready. Format: <message>, <owner_id>. Type 'exit' to quit.")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			break
		}

		idx := strings.LastIndex(line, ",")
		if idx < 0 {
			fmt.Println("Please provide input as: <message>, <owner_id>")
			continue
		}
		message := strings.TrimSpace(line[:idx])
		ownerID := strings.TrimSpace(line[idx+1:])

		reply, err := sdk.Respond(ctx, ownerID, message)
		if err != nil {
			fmt.Println("Error:", err)
			if reply == "" {
				continue
			}
		}
		fmt.Println("Assistant:", reply)
	}
	return nil
}
