package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/notseanray/seanifyv2-backend/config"
	"github.com/notseanray/seanifyv2-backend/logger"
	"github.com/notseanray/seanifyv2-backend/storage"
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "Test the MinIO archive connection",
	Long:  `Connects to the configured MinIO endpoint and ensures the archive bucket exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		logger.InitLogger(logger.Config{Level: logger.InfoLevel})

		if cfg.MinioEndpoint == "" {
			fmt.Println("No MINIO_ENDPOINT configured; archiving is disabled.")
			return
		}
		fmt.Printf("MinIO config: %s, bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		archive, err := storage.NewArchive(cfg)
		if err != nil {
			log.Fatalf("failed to connect to MinIO: %v", err)
		}
		if archive != nil {
			fmt.Println("MinIO connection established, bucket ready.")
		}
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)
}
