package photoprism

import "context"

// GetPhotoMarkers returns the valid markers of the photo's primary file
// together with that file. Markers on other files use other coordinates.
func (pp *PhotoPrism) GetPhotoMarkers(ctx context.Context, photoUID string) (*File, []Marker, error) {
	details, err := pp.GetPhotoDetails(ctx, photoUID)
	if err != nil {
		return nil, nil, err
	}

	primary := details.PrimaryFile()
	if primary == nil {
		return nil, nil, nil
	}

	markers := make([]Marker, 0, len(primary.Markers))
	for _, m := range primary.Markers {
		// Skip invalid/deleted markers
		if m.Invalid {
			continue
		}
		markers = append(markers, m)
	}
	return primary, markers, nil
}
