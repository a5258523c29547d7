package domain

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Location struct {
	Address     string      `json:"address"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

// Property is a listing. Clients fetch it and never mutate it.
type Property struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Price    float64  `json:"price"`
	Location Location `json:"location"`
	Features []string `json:"features"`
	Images   []string `json:"images"`
}

// CoverImage returns the first image reference, or "" when there is none.
func (p Property) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
