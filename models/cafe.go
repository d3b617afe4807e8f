package models

// Cafe is a row of the bundled listings snapshot. The snapshot is produced
// by the CSV import pipeline and is read-only at runtime.
type Cafe struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Area           string   `json:"area"`
	Industry       string   `json:"industry"`
	IndoorSeating  *int64   `json:"indoor_seating"`
	OutdoorSeating *int64   `json:"outdoor_seating"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Tags           []string `json:"tags"`
	Image          string   `json:"image"`
	Hours          string   `json:"hours"`
	PublicUsers    int64    `json:"public_users"`
	Images         []string `json:"images"`
}
