package photoprism

// Album represents a PhotoPrism album
type Album struct {
	UID        string `json:"UID"`
	Title      string `json:"Title"`
	PhotoCount int    `json:"PhotoCount"`
	Type       string `json:"Type"`
}

// Photo is a search result entry
type Photo struct {
	UID          string `json:"UID"`
	Title        string `json:"Title"`
	TakenAt      string `json:"TakenAt"`
	Hash         string `json:"Hash"`
	Width        int    `json:"Width"`
	Height       int    `json:"Height"`
	OriginalName string `json:"OriginalName"`
	FileName     string `json:"FileName"`
}

// PhotoDetails is the full photo record including its files and markers
type PhotoDetails struct {
	UID       string `json:"UID"`
	Title     string `json:"Title"`
	TakenAt   string `json:"TakenAt"`
	DeletedAt string `json:"DeletedAt"`
	Files     []File `json:"Files"`
}

// File is one file of a photo (original, sidecar JPEG, ...)
type File struct {
	UID         string   `json:"UID"`
	Hash        string   `json:"Hash"`
	Name        string   `json:"Name"`
	Primary     bool     `json:"Primary"`
	Width       int      `json:"Width"`
	Height      int      `json:"Height"`
	Orientation int      `json:"Orientation"`
	Markers     []Marker `json:"Markers"`
}

// Marker represents a face/subject region marker on a photo
type Marker struct {
	UID     string  `json:"UID"`
	FileUID string  `json:"FileUID"`
	Type    string  `json:"Type"`
	Name    string  `json:"Name"`
	SubjUID string  `json:"SubjUID"`
	X       float64 `json:"X"` // Relative X position (0-1)
	Y       float64 `json:"Y"` // Relative Y position (0-1)
	W       float64 `json:"W"` // Relative width (0-1)
	H       float64 `json:"H"` // Relative height (0-1)
	Score   int     `json:"Score"`
	Invalid bool    `json:"Invalid"`
}
