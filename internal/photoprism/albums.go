package photoprism

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kozaktomas/photo-labels/internal/constants"
)

// GetAlbum retrieves a single album by UID
func (pp *PhotoPrism) GetAlbum(ctx context.Context, albumUID string) (*Album, error) {
	return doGetJSON[Album](ctx, pp, "albums/"+url.PathEscape(albumUID))
}

// GetAlbumPhotos retrieves one page of photos from an album
func (pp *PhotoPrism) GetAlbumPhotos(ctx context.Context, albumUID string, count int, offset int) ([]Photo, error) {
	endpoint := fmt.Sprintf("photos?count=%d&offset=%d&s=%s", count, offset, url.QueryEscape(albumUID))
	result, err := doGetJSON[[]Photo](ctx, pp, endpoint)
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// GetAllAlbumPhotos pages through an album until a short page is returned.
func (pp *PhotoPrism) GetAllAlbumPhotos(ctx context.Context, albumUID string, pageSize int) ([]Photo, error) {
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	var all []Photo
	for offset := 0; ; offset += pageSize {
		page, err := pp.GetAlbumPhotos(ctx, albumUID, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("could not get album photos at offset %d: %w", offset, err)
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}
