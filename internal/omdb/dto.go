package omdb

// Provider flag values for the Response field
const (
	responseTrue  = "True"
	responseFalse = "False"
)

// notAvailable is the provider's placeholder for a missing value
const notAvailable = "N/A"

// SearchResponse is the body of an s= query
type SearchResponse struct {
	Search       []SearchItem `json:"Search,omitempty"`
	TotalResults string       `json:"totalResults,omitempty"`
	Response     string       `json:"Response"`
	Error        string       `json:"Error,omitempty"`
}

// SearchItem is one entry of SearchResponse.Search
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// DetailsResponse is the body of an i= query
type DetailsResponse struct {
	Title    string   `json:"Title,omitempty"`
	Year     string   `json:"Year,omitempty"`
	IMDbID   string   `json:"imdbID,omitempty"`
	Type     string   `json:"Type,omitempty"`
	Poster   string   `json:"Poster,omitempty"`
	Genre    string   `json:"Genre,omitempty"`
	Plot     string   `json:"Plot,omitempty"`
	Director string   `json:"Director,omitempty"`
	Actors   string   `json:"Actors,omitempty"`
	Ratings  []Rating `json:"Ratings,omitempty"`
	Runtime  string   `json:"Runtime,omitempty"`
	Released string   `json:"Released,omitempty"`
	Response string   `json:"Response"`
	Error    string   `json:"Error,omitempty"`
}

// Rating is a single source/value pair
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}
