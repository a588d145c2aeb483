package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-labels/internal/labeler"
	"github.com/kozaktomas/photo-labels/internal/labels"
	"github.com/kozaktomas/photo-labels/internal/scene"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <scene-file>",
	Short: "Lay out labels for a scene file",
	Long: `Lay out labels for the persons of a YAML or JSON scene file and print the
result as JSON. With --out the labelled photo is rendered too; the image is
taken from --image or from the scene's image field (relative to the scene).

Examples:
  # Print the layout
  photo-labels layout party.yaml

  # Render the labelled photo
  photo-labels layout party.yaml --out party-labelled.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutCmd.Flags().String("image", "", "Photo to render (default: the scene's image)")
	layoutCmd.Flags().String("out", "", "Write the labelled JPEG to this file")
	layoutCmd.Flags().String("json", "", "Write the JSON result to this file instead of stdout")
}

func runLayout(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	logger := loggerFromContext(ctx)

	imagePath := mustGetString(cmd, "image")
	outPath := mustGetString(cmd, "out")
	jsonPath := mustGetString(cmd, "json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc, err := scene.Load(args[0])
	if err != nil {
		return err
	}

	lb, err := labeler.New(cfg.Labels, logger)
	if err != nil {
		return err
	}
	defer lb.Close()

	res, err := lb.LayoutScene(ctx, sc)
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}
	logger.Info("layout done", "state", res.State, "labels", len(res.Labels),
		"font_size", res.FontSize, "iterations", res.Iterations)

	if err := writeResult(cmd, jsonPath, res); err != nil {
		return err
	}
	if outPath == "" {
		return nil
	}

	if imagePath == "" {
		if sc.Image == "" {
			return errors.New("--out needs --image or an image in the scene")
		}
		imagePath = filepath.Join(filepath.Dir(args[0]), sc.Image)
	}
	return renderScene(lb, sc, res, imagePath, outPath)
}

func writeResult(cmd *cobra.Command, path string, res *labels.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func renderScene(lb *labeler.Labeler, sc *scene.Scene, res *labels.Result, imagePath, outPath string) (err error) {
	in, err := os.Open(imagePath) //nolint:gosec // path is provided by the operator
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath) //nolint:gosec // path is provided by the operator
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return lb.RenderScene(sc, res, in, out)
}
