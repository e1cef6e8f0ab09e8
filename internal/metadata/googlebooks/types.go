package googlebooks

// Volume is a raw record from the Google Books volumes endpoint, prior to
// validation and normalization.
type Volume struct {
	ID         string      `json:"id"`
	VolumeInfo *VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo carries the subset of volume metadata this application reads.
type VolumeInfo struct {
	Title         string      `json:"title"`
	Authors       []string    `json:"authors"`
	Categories    []string    `json:"categories"`
	Description   string      `json:"description"`
	ImageLinks    *ImageLinks `json:"imageLinks"`
	AverageRating float64     `json:"averageRating"`
	RatingsCount  int         `json:"ratingsCount"`
	PageCount     int         `json:"pageCount"`
	PublishedDate string      `json:"publishedDate"`
}

// ImageLinks holds cover image URLs for a volume.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

type searchResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}
