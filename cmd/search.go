package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/notseanray/seanifyv2-backend/config"
	"github.com/notseanray/seanifyv2-backend/core/catalog"
	"github.com/notseanray/seanifyv2-backend/core/ingest"
	"github.com/notseanray/seanifyv2-backend/core/search"
	"github.com/notseanray/seanifyv2-backend/db"
	"github.com/notseanray/seanifyv2-backend/logger"
	"github.com/notseanray/seanifyv2-backend/repository"
)

var (
	searchType  string
	searchLimit string
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Run a one-off catalog search",
	Long:  `Loads the song index from the database and prints the ranked matches for a term as JSON.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}
		logger.InitLogger(logger.Config{Level: logger.WarnLevel})

		if err := db.ConnectDB(cfg); err != nil {
			log.Fatalf("failed to connect to the database: %v", err)
		}
		defer db.CloseDB()

		repo := repository.NewMySQLSongRepository(db.DB)
		index, err := search.Load(context.Background(), repo)
		if err != nil {
			log.Fatalf("failed to load the song index: %v", err)
		}

		service := catalog.NewService(cfg, ingest.NewQueue(), index, nil)
		results := service.Search(args[0], searchType, searchLimit)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatalf("failed to encode results: %v", err)
		}
		fmt.Fprintf(os.Stderr, "%d results\n", len(results))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchType, "type", "t", "default", "search type: uploader, title, user, id, default")
	searchCmd.Flags().StringVarP(&searchLimit, "limit", "n", "", "maximum number of results")
}
