package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-labels/internal/constants"
	"github.com/kozaktomas/photo-labels/internal/labeler"
)

var photoExportCmd = &cobra.Command{
	Use:   "export [photo-uid...]",
	Short: "Render labelled copies of photos",
	Long: `Lay out the labels of PhotoPrism photos and write labelled JPEG copies
to the output directory as <photo-uid>.jpg.

Examples:
  # Export a single photo
  photo-labels photo export pq8abc123def

  # Export an album with 8 workers
  photo-labels photo export --album aq8xyz789ghi --concurrency 8

  # Only report the layout outcome
  photo-labels photo export --album aq8xyz789ghi --dry-run`,
	RunE: runPhotoExport,
}

func init() {
	photoCmd.AddCommand(photoExportCmd)

	photoExportCmd.Flags().String("album", "", "Export all photos in an album")
	photoExportCmd.Flags().String("out-dir", "labelled", "Directory for the labelled JPEGs")
	photoExportCmd.Flags().Int("limit", 0, "Limit number of album photos (0 = no limit)")
	photoExportCmd.Flags().Int("concurrency", constants.DefaultConcurrency, "Number of parallel workers")
	photoExportCmd.Flags().Bool("dry-run", false, "Lay out only, write no files")
}

func runPhotoExport(cmd *cobra.Command, args []string) error {
	albumUID := mustGetString(cmd, "album")
	opts := labeler.ExportOptions{
		OutDir:       mustGetString(cmd, "out-dir"),
		Limit:        mustGetInt(cmd, "limit"),
		Concurrency:  mustGetInt(cmd, "concurrency"),
		DryRun:       mustGetBool(cmd, "dry-run"),
		ShowProgress: true,
	}

	if albumUID == "" && len(args) == 0 {
		return errors.New("either provide photo UIDs or use --album flag")
	}
	if albumUID != "" && len(args) > 0 {
		return errors.New("cannot use both photo UIDs and --album flag")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lb, err := labeler.New(cfg.Labels, logger)
	if err != nil {
		return err
	}
	defer lb.Close()

	pp, err := connectPhotoPrism(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		logoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = pp.Logout(logoutCtx)
	}()

	start := time.Now()
	var res *labeler.ExportResult
	if albumUID != "" {
		res, err = lb.ExportAlbum(ctx, pp, albumUID, opts)
	} else {
		res, err = lb.Export(ctx, pp, args, opts)
	}
	if err != nil {
		return err
	}

	printExportResult(cmd, res, opts.DryRun)
	logger.Info("export finished", "photos", res.ProcessedCount, "exported", res.ExportedCount,
		"errors", len(res.Errors), "took", time.Since(start).Round(time.Millisecond))

	if len(res.Errors) > 0 {
		return fmt.Errorf("%d of %d photos failed", len(res.Errors), res.ProcessedCount)
	}
	return nil
}

func printExportResult(cmd *cobra.Command, res *labeler.ExportResult, dryRun bool) {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UID\tSTATE\tLABELS\tITERATIONS\tFILE")
	fmt.Fprintln(w, "---\t-----\t------\t----------\t----")
	for _, p := range res.Photos {
		file := p.Path
		if dryRun {
			file = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", p.UID, p.State, p.Labels, p.Iterations, file)
	}
	w.Flush()

	for _, e := range res.Errors {
		fmt.Fprintf(out, "Error: %v\n", e)
	}
	fmt.Fprintf(out, "\nTotal: %d photos, %d exported, %d errors\n", res.ProcessedCount, res.ExportedCount, len(res.Errors))
}
