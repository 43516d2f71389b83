package deezer

// apiError is the error object Deezer embeds in otherwise-200 responses.
type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// artistSearchResponse is the JSON response from /search/artist.
type artistSearchResponse struct {
	Data  []artistResult `json:"data"`
	Total int            `json:"total"`
}

// artistResult is a single artist entry from a search or artist endpoint.
type artistResult struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Link          string    `json:"link"`
	PictureMedium string    `json:"picture_medium"`
	PictureBig    string    `json:"picture_big"`
	PictureXL     string    `json:"picture_xl"`
	NbFan         int       `json:"nb_fan"`
	Type          string    `json:"type"`
	Error         *apiError `json:"error,omitempty"`
}

// trackListResponse is the JSON response from /search/track and /artist/{id}/top.
type trackListResponse struct {
	Data  []trackResult `json:"data"`
	Total int           `json:"total"`
}

// trackResult is a single track entry.
type trackResult struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Preview string `json:"preview"`
	Artist  struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"artist"`
	Album struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		CoverMedium string `json:"cover_medium"`
	} `json:"album"`
}
