package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-labels/internal/config"
	"github.com/kozaktomas/photo-labels/internal/photoprism"
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Label photos stored in PhotoPrism",
	Long:  `Commands for laying out and exporting labels of PhotoPrism photos and albums.`,
}

func init() {
	rootCmd.AddCommand(photoCmd)
}

// connectPhotoPrism opens a PhotoPrism session with the configured credentials.
func connectPhotoPrism(ctx context.Context, cfg *config.Config) (*photoprism.PhotoPrism, error) {
	if cfg.PhotoPrism.URL == "" {
		return nil, errors.New("PHOTOPRISM_URL environment variable is required")
	}
	pp, err := photoprism.NewPhotoPrism(ctx, cfg.PhotoPrism.URL, cfg.PhotoPrism.Username, cfg.PhotoPrism.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PhotoPrism: %w", err)
	}
	return pp, nil
}
