package photoprism

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// GetPhotoDetails retrieves the full photo record
func (pp *PhotoPrism) GetPhotoDetails(ctx context.Context, photoUID string) (*PhotoDetails, error) {
	return doGetJSON[PhotoDetails](ctx, pp, "photos/"+url.PathEscape(photoUID))
}

// Deleted reports whether the photo has been archived.
func (d *PhotoDetails) Deleted() bool {
	return d.DeletedAt != ""
}

// PrimaryFile returns the file faces were detected on: the one flagged
// primary, or the first file. Nil when the photo has no files.
func (d *PhotoDetails) PrimaryFile() *File {
	for i := range d.Files {
		if d.Files[i].Primary {
			return &d.Files[i]
		}
	}
	if len(d.Files) > 0 {
		return &d.Files[0]
	}
	return nil
}

// GetPhotoDownload downloads the primary file of a photo. Marker
// coordinates are relative to the primary file, so it must be this one.
func (pp *PhotoPrism) GetPhotoDownload(ctx context.Context, photoUID string) ([]byte, string, error) {
	details, err := pp.GetPhotoDetails(ctx, photoUID)
	if err != nil {
		return nil, "", fmt.Errorf("could not get photo details: %w", err)
	}

	primary := details.PrimaryFile()
	if primary == nil || primary.Hash == "" {
		return nil, "", errors.New("could not find file hash for photo")
	}
	return pp.GetFileDownload(ctx, primary.Hash)
}

// GetFileDownload downloads a file using its hash via the /api/v1/dl/{hash} endpoint
func (pp *PhotoPrism) GetFileDownload(ctx context.Context, fileHash string) ([]byte, string, error) {
	u := fmt.Sprintf("%s/dl/%s?t=%s", pp.Url, url.PathEscape(fileHash), url.QueryEscape(pp.downloadToken))
	return doDownload(ctx, pp, u)
}
