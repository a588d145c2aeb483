// Package labeler ties label layout to photos: it loads faces from
// PhotoPrism or scene files, runs the layout and renders labelled copies.
package labeler

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/charmbracelet/log"

	"github.com/kozaktomas/photo-labels/internal/composite"
	"github.com/kozaktomas/photo-labels/internal/config"
	"github.com/kozaktomas/photo-labels/internal/constants"
	"github.com/kozaktomas/photo-labels/internal/facematch"
	"github.com/kozaktomas/photo-labels/internal/labels"
	"github.com/kozaktomas/photo-labels/internal/photoprism"
	"github.com/kozaktomas/photo-labels/internal/scene"
	"github.com/kozaktomas/photo-labels/internal/textmetrics"
)

// Source is the part of the PhotoPrism API the labeler needs.
type Source interface {
	GetPhotoMarkers(ctx context.Context, photoUID string) (*photoprism.File, []photoprism.Marker, error)
	GetFileDownload(ctx context.Context, fileHash string) ([]byte, string, error)
	GetAllAlbumPhotos(ctx context.Context, albumUID string, pageSize int) ([]photoprism.Photo, error)
}

// Labeler lays out and renders labels with one configuration. Safe for
// concurrent use.
type Labeler struct {
	settings labels.Settings
	names    facematch.Options
	fonts    *textmetrics.OpenType
	renderer *composite.Renderer
	logger   *log.Logger
}

// PhotoLayout is the layout of one PhotoPrism photo.
type PhotoLayout struct {
	UID     string              `json:"uid"`
	File    *photoprism.File    `json:"-"`
	Photo   labels.PhotoContext `json:"photo"`
	Persons []labels.Person     `json:"persons"`
	Result  *labels.Result      `json:"result"`
}

// New builds a labeler from cfg. A font file in cfg is registered under the
// configured family.
func New(cfg config.LabelsConfig, logger *log.Logger) (*Labeler, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fonts, err := textmetrics.NewOpenType(constants.DefaultDPI)
	if err != nil {
		return nil, err
	}
	if cfg.Font.File != "" {
		if err := fonts.RegisterFile(cfg.Font.Family, cfg.Font.File); err != nil {
			return nil, err
		}
	}

	style, err := composite.NewStyle(cfg)
	if err != nil {
		return nil, err
	}

	return &Labeler{
		settings: labels.NewSettings(cfg, logger),
		names: facematch.Options{
			ASCIINames: cfg.Render.ASCIINames,
			Obfuscate:  cfg.Render.Obfuscate,
		},
		fonts:    fonts,
		renderer: &composite.Renderer{Style: style, Faces: fonts},
		logger:   logger,
	}, nil
}

// Settings returns the validated layout settings.
func (lb *Labeler) Settings() labels.Settings {
	return lb.settings
}

// Close releases the cached font faces.
func (lb *Labeler) Close() error {
	return lb.fonts.Close()
}

// LayoutPhoto fetches the face markers of a photo and lays out its labels.
func (lb *Labeler) LayoutPhoto(ctx context.Context, src Source, uid string) (*PhotoLayout, error) {
	file, markers, err := src.GetPhotoMarkers(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get markers of %s: %w", uid, err)
	}
	if file == nil {
		return nil, fmt.Errorf("photo %s has no files", uid)
	}

	pl := &PhotoLayout{
		UID:     uid,
		File:    file,
		Photo:   facematch.Photo(file, lb.settings.Margin),
		Persons: facematch.Persons(file, markers, lb.names),
	}
	pl.Result, err = labels.Layout(ctx, labels.Input{Photo: pl.Photo, Persons: pl.Persons},
		lb.settings, lb.fonts, lb.logger.With("photo", uid))
	if err != nil {
		return nil, fmt.Errorf("failed to lay out %s: %w", uid, err)
	}
	return pl, nil
}

// RenderPhoto downloads the primary file of a laid out photo and writes the
// labelled JPEG to w.
func (lb *Labeler) RenderPhoto(ctx context.Context, src Source, pl *PhotoLayout, w io.Writer) error {
	data, _, err := src.GetFileDownload(ctx, pl.File.Hash)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", pl.UID, err)
	}
	img, err := composite.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return lb.render(img, pl.Photo, pl.Persons, pl.Result, w)
}

// LayoutScene lays out the labels of a scene. Names are rewritten the same
// way as PhotoPrism marker names.
func (lb *Labeler) LayoutScene(ctx context.Context, sc *scene.Scene) (*labels.Result, error) {
	in := sc.Input()
	in.Persons = lb.sceneNames(in.Persons)
	return labels.Layout(ctx, in, lb.settings, lb.fonts, lb.logger.With("image", sc.Image))
}

// RenderScene decodes the scene image from r and writes the labelled JPEG
// to w.
func (lb *Labeler) RenderScene(sc *scene.Scene, res *labels.Result, r io.Reader, w io.Writer) error {
	img, err := composite.Decode(r)
	if err != nil {
		return err
	}
	in := sc.Input()
	return lb.render(img, in.Photo, in.Persons, res, w)
}

func (lb *Labeler) sceneNames(persons []labels.Person) []labels.Person {
	out := make([]labels.Person, len(persons))
	for i, p := range persons {
		out[i] = labels.Person{Name: facematch.LabelText(p.Name, lb.names), Rect: p.Rect}
	}
	return out
}

func (lb *Labeler) render(img image.Image, photo labels.PhotoContext, persons []labels.Person, res *labels.Result, w io.Writer) error {
	b := img.Bounds()
	if b.Dx() != photo.Width || b.Dy() != photo.Height {
		return fmt.Errorf("image is %dx%d, layout expects %dx%d", b.Dx(), b.Dy(), photo.Width, photo.Height)
	}

	out, err := lb.renderer.Render(img, photo, persons, res.Labels)
	if err != nil {
		return err
	}
	return composite.Encode(w, out, lb.renderer.Style.JPEGQuality)
}
