package cafes

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"cafehopper/models"
)

const (
	importIndustry = "Cafes and Restaurants"
	minCensusYear  = 2010
	fallbackImage  = "https://source.unsplash.com/800x600/?cafe"
	fallbackHours  = "9am - 5pm"
)

// ImportCSV builds the snapshot from a census establishments export. Only
// cafe/restaurant rows from minCensusYear onwards are kept, matching the
// original import pipeline. Returns the number of rows imported.
func (s *Store) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	if err := s.Init(ctx); err != nil {
		return 0, err
	}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return 0, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	imported := 0
	nextID := int64(1)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, err
		}

		year, _ := strconv.Atoi(field(record, "census_year"))
		if field(record, "industry_anzsic4_description") != importIndustry || year < minCensusYear {
			continue
		}

		image := field(record, "image")
		if image == "" {
			image = fallbackImage
		}
		hours := field(record, "hours")
		if hours == "" {
			hours = fallbackHours
		}

		cafe := models.Cafe{
			ID:             nextID,
			Name:           field(record, "trading_name"),
			Address:        field(record, "building_address"),
			Area:           field(record, "clue_small_area"),
			Industry:       importIndustry,
			IndoorSeating:  parseSeating(field(record, "indoor_seating")),
			OutdoorSeating: parseSeating(field(record, "outdoor_seating")),
			Latitude:       parseCoord(field(record, "latitude")),
			Longitude:      parseCoord(field(record, "longitude")),
			Tags:           splitTags(field(record, "tags")),
			Image:          image,
			Hours:          hours,
			PublicUsers:    0,
			Images:         []string{image},
		}

		if err := s.insert(ctx, &cafe); err != nil {
			return imported, err
		}
		nextID++
		imported++
	}

	return imported, nil
}

func parseSeating(s string) *int64 {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func parseCoord(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
