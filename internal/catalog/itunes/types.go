package itunes

// lookupResponse is the envelope shared by the iTunes search and lookup
// endpoints.
type lookupResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []lookupResult `json:"results"`
}

// lookupResult is a single result row. The wrapperType field discriminates
// artist records from track records; the remaining fields are sparsely
// populated depending on the type.
type lookupResult struct {
	WrapperType      string `json:"wrapperType"`
	Kind             string `json:"kind,omitempty"`
	ArtistID         int64  `json:"artistId"`
	ArtistName       string `json:"artistName"`
	ArtistLinkURL    string `json:"artistLinkUrl,omitempty"`
	PrimaryGenreName string `json:"primaryGenreName,omitempty"`
	TrackID          int64  `json:"trackId,omitempty"`
	TrackName        string `json:"trackName,omitempty"`
	PreviewURL       string `json:"previewUrl,omitempty"`
	ArtworkURL100    string `json:"artworkUrl100,omitempty"`
	CollectionName   string `json:"collectionName,omitempty"`
}
