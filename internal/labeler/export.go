package labeler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/kozaktomas/photo-labels/internal/constants"
	"github.com/kozaktomas/photo-labels/internal/labels"
)

// ErrInvalidUID is returned for a photo UID that cannot name an output file.
var ErrInvalidUID = errors.New("invalid photo uid")

// checkUID rejects UIDs that would resolve outside the output directory.
func checkUID(uid string) error {
	if uid == "" || uid == "." || strings.Contains(uid, "..") || strings.ContainsAny(uid, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidUID, uid)
	}
	return nil
}

// ProgressInfo contains progress information for callbacks
type ProgressInfo struct {
	Current  int
	Total    int
	PhotoUID string
}

type ExportOptions struct {
	OutDir       string // labelled JPEGs are written here as <uid>.jpg
	DryRun       bool   // lay out only, download and write nothing
	Limit        int    // max photos of an album, 0 means all
	Concurrency  int    // number of photos processed in parallel
	ShowProgress bool
	OnProgress   func(ProgressInfo) // optional
}

// PhotoResult is the outcome of one exported photo.
type PhotoResult struct {
	UID        string
	State      labels.State
	Labels     int
	Iterations int
	Path       string
}

type ExportResult struct {
	ProcessedCount int
	ExportedCount  int
	Photos         []PhotoResult
	Errors         []error
}

// photoResult holds the result of processing a single photo
type photoResult struct {
	index  int
	result *PhotoResult
	err    error
}

// ExportAlbum exports every photo of an album.
func (lb *Labeler) ExportAlbum(ctx context.Context, src Source, albumUID string, opts ExportOptions) (*ExportResult, error) {
	photos, err := src.GetAllAlbumPhotos(ctx, albumUID, constants.DefaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch photos: %w", err)
	}
	if opts.Limit > 0 && len(photos) > opts.Limit {
		photos = photos[:opts.Limit]
	}

	uids := make([]string, len(photos))
	for i := range photos {
		uids[i] = photos[i].UID
	}
	return lb.Export(ctx, src, uids, opts)
}

// Export lays out and renders the given photos with a bounded number of
// workers. Failures of single photos are collected in the result; results
// keep the order of uids.
func (lb *Labeler) Export(ctx context.Context, src Source, uids []string, opts ExportOptions) (*ExportResult, error) {
	if !opts.DryRun {
		if opts.OutDir == "" {
			return nil, errors.New("no output directory")
		}
		if err := os.MkdirAll(opts.OutDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrency
	}

	bar := progressbar.DefaultSilent(int64(len(uids)))
	if opts.ShowProgress {
		bar = progressbar.NewOptions(len(uids),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(fmt.Sprintf("Labelling photos (%d workers)", concurrency)),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("photos"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	resultsChan := make(chan photoResult, len(uids))
	semaphore := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var processedCount int
	var progressMu sync.Mutex

	// Callbacks run under progressMu, so they never overlap.
	reportProgress := func(uid string) {
		progressMu.Lock()
		defer progressMu.Unlock()
		processedCount++
		_ = bar.Add(1)
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressInfo{Current: processedCount, Total: len(uids), PhotoUID: uid})
		}
	}

	for i, uid := range uids {
		wg.Add(1)
		go func(idx int, uid string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			defer reportProgress(uid)

			if ctx.Err() != nil {
				resultsChan <- photoResult{index: idx, err: ctx.Err()}
				return
			}
			res, err := lb.exportPhoto(ctx, src, uid, opts)
			resultsChan <- photoResult{index: idx, result: res, err: err}
		}(i, uid)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([]*photoResult, len(uids))
	for r := range resultsChan {
		results[r.index] = &r
	}
	if opts.ShowProgress {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	result := &ExportResult{}
	for i, r := range results {
		result.ProcessedCount++
		if r == nil {
			result.Errors = append(result.Errors, fmt.Errorf("no result for photo at index %d", i))
			continue
		}
		if r.err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", uids[i], r.err))
			continue
		}
		result.Photos = append(result.Photos, *r.result)
		if r.result.Path != "" {
			result.ExportedCount++
		}
	}
	return result, nil
}

func (lb *Labeler) exportPhoto(ctx context.Context, src Source, uid string, opts ExportOptions) (res *PhotoResult, err error) {
	if err := checkUID(uid); err != nil {
		return nil, err
	}

	pl, err := lb.LayoutPhoto(ctx, src, uid)
	if err != nil {
		return nil, err
	}

	res = &PhotoResult{
		UID:        uid,
		State:      pl.Result.State,
		Labels:     len(pl.Result.Labels),
		Iterations: pl.Result.Iterations,
	}
	if opts.DryRun {
		return res, nil
	}

	path := filepath.Join(opts.OutDir, uid+".jpg")
	f, err := os.Create(path) //nolint:gosec // uid checked by checkUID
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := lb.RenderPhoto(ctx, src, pl, f); err != nil {
		return nil, err
	}
	res.Path = path
	return res, nil
}
