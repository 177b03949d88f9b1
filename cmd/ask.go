/*
Copyright © 2025 geeta-ai
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geeta-ai/geeta-be/config"
	"github.com/geeta-ai/geeta-be/service"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question over a folder of documents",
	Long: `Loads every supported document in a folder, builds the combined
context and prints the AI answer. Useful for one-shot queries without
running the server.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		folder, _ := cmd.Flags().GetString("folder")

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		completer, err := newCompleter(cfg)
		if err != nil {
			log.Fatalf("Failed to create AI service: %v", err)
		}

		extractService := service.NewExtractService()
		fileService := service.NewFileService(extractService)
		store := service.NewDocumentStore(cfg.LargeFileThreshold)

		err = filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if !service.SupportedExtensions[ext] {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				log.Printf("Warning: failed to read %s: %v", path, err)
				return nil
			}
			if _, err := fileService.LoadFile(store, path, data); err != nil {
				log.Printf("Warning: %v", err)
			}
			return nil
		})
		if err != nil {
			log.Fatalf("Failed to walk folder: %v", err)
		}

		engine := service.NewAnswerEngine(completer, cfg.QueryChunkSize)
		progress := func(processed, total int) {
			fmt.Fprintf(os.Stderr, "Processing chunk %d/%d...\n", processed, total)
		}
		answer := engine.AnswerWithProgress(context.Background(), args[0], store.CombinedContext(), progress)
		fmt.Println(answer)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
	askCmd.Flags().StringP("folder", "f", ".", "folder of documents to load")
}
