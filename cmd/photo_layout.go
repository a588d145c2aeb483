package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-labels/internal/labeler"
)

var photoLayoutCmd = &cobra.Command{
	Use:   "layout <photo-uid>",
	Short: "Show the faces and label layout of a photo",
	Long: `Fetch the face markers of a PhotoPrism photo, lay out the labels and print
the persons and label rects.

Examples:
  photo-labels photo layout pq8abc123def
  photo-labels photo layout --json pq8abc123def`,
	Args: cobra.ExactArgs(1),
	RunE: runPhotoLayout,
}

func init() {
	photoCmd.AddCommand(photoLayoutCmd)

	photoLayoutCmd.Flags().Bool("json", false, "Output as JSON")
}

func runPhotoLayout(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
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

	pl, err := lb.LayoutPhoto(ctx, pp, args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(pl)
	}
	printPhotoLayout(cmd, pl)
	return nil
}

func printPhotoLayout(cmd *cobra.Command, pl *labeler.PhotoLayout) {
	out := cmd.OutOrStdout()
	res := pl.Result
	fmt.Fprintf(out, "Photo %s (%dx%d)\n", pl.UID, pl.Photo.Width, pl.Photo.Height)
	fmt.Fprintf(out, "State: %s after %d iterations, font size %d, overlap %d\n\n",
		res.State, res.Iterations, res.FontSize, res.Overlap)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tFACE\tLABEL\tPOSITION\tROWS\tCLASH")
	fmt.Fprintln(w, "-\t----\t----\t-----\t--------\t----\t-----")
	placed := make(map[int]int, len(res.Labels))
	for i, l := range res.Labels {
		placed[l.Person] = i
	}
	for i, p := range pl.Persons {
		idx, ok := placed[i]
		if !ok {
			fmt.Fprintf(w, "%d\t%s\t%v\t-\t-\t-\t-\n", i, "(unnamed)", p.Rect)
			continue
		}
		l := res.Labels[idx]
		fmt.Fprintf(w, "%d\t%s\t%v\t%v\t%s\t%d\t%t\n", i, l.Text, p.Rect, l.Rect, l.Position, l.NumRows, l.Clash)
	}
	w.Flush()
}
