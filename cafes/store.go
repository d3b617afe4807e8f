// Package cafes reads the bundled listings snapshot. The snapshot is a
// SQLite file produced by the CSV import pipeline; at runtime the workflow
// only ever reads from it.
package cafes

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"sort"

	_ "modernc.org/sqlite" // sqlite driver

	"cafehopper/models"
	"cafehopper/social"
	"cafehopper/utils"
)

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the cafes table if it is missing. The server never calls
// this; it exists for the import pipeline and for tests that build a
// snapshot from scratch.
func (s *Store) Init(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS cafes (
		id INTEGER PRIMARY KEY,
		name TEXT,
		address TEXT,
		area TEXT,
		industry TEXT,
		indoor_seating INTEGER,
		outdoor_seating INTEGER,
		latitude REAL,
		longitude REAL,
		tags TEXT,
		image TEXT,
		hours TEXT,
		public_users INTEGER,
		images TEXT
	)`

	_, err := s.db.ExecContext(ctx, q)
	return err
}

const cafeColumns = `id, name, address, area, industry, indoor_seating, outdoor_seating,
	latitude, longitude, tags, image, hours, public_users, images`

func (s *Store) All(ctx context.Context) ([]models.Cafe, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+cafeColumns+` FROM cafes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCafes(rows)
}

func (s *Store) Get(ctx context.Context, id int64) (models.Cafe, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+cafeColumns+` FROM cafes WHERE id = ?`, id)

	cafe, err := rowToCafe(row)
	if err == sql.ErrNoRows {
		return models.Cafe{}, social.ErrNotFound
	}
	return cafe, err
}

// Search matches cafe names by prefix.
func (s *Store) Search(ctx context.Context, q string, limit int) ([]models.Cafe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+cafeColumns+` FROM cafes WHERE name LIKE ? ORDER BY name LIMIT ?`,
		q+"%", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCafes(rows)
}

// Nearby returns cafes within radiusKm of the given point, closest first.
// A bounding box narrows the scan before the exact distance check.
func (s *Store) Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]models.Cafe, error) {
	dLat := radiusKm / 111.0
	dLon := dLat
	if cosLat := math.Cos(lat * math.Pi / 180); cosLat > 0.01 {
		dLon = dLat / cosLat
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+cafeColumns+` FROM cafes
		 WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?`,
		lat-dLat, lat+dLat, lon-dLon, lon+dLon,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates, err := collectCafes(rows)
	if err != nil {
		return nil, err
	}

	type withDistance struct {
		cafe models.Cafe
		km   float64
	}
	nearby := make([]withDistance, 0, len(candidates))
	for _, c := range candidates {
		km := utils.HaversineKm(lat, lon, c.Latitude, c.Longitude)
		if km <= radiusKm {
			nearby = append(nearby, withDistance{cafe: c, km: km})
		}
	}
	sort.Slice(nearby, func(i, j int) bool { return nearby[i].km < nearby[j].km })

	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	out := make([]models.Cafe, len(nearby))
	for i := range nearby {
		out[i] = nearby[i].cafe
	}
	return out, nil
}

func (s *Store) insert(ctx context.Context, cafe *models.Cafe) error {
	tags, err := json.Marshal(cafe.Tags)
	if err != nil {
		return err
	}
	images, err := json.Marshal(cafe.Images)
	if err != nil {
		return err
	}

	const q = `INSERT INTO cafes (` + cafeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, q,
		cafe.ID, cafe.Name, cafe.Address, cafe.Area, cafe.Industry,
		cafe.IndoorSeating, cafe.OutdoorSeating, cafe.Latitude, cafe.Longitude,
		string(tags), cafe.Image, cafe.Hours, cafe.PublicUsers, string(images),
	)
	return err
}

type scannable interface {
	Scan(dest ...any) error
}

func rowToCafe(row scannable) (models.Cafe, error) {
	var (
		cafe         models.Cafe
		tags, images sql.NullString
	)

	err := row.Scan(
		&cafe.ID, &cafe.Name, &cafe.Address, &cafe.Area, &cafe.Industry,
		&cafe.IndoorSeating, &cafe.OutdoorSeating, &cafe.Latitude, &cafe.Longitude,
		&tags, &cafe.Image, &cafe.Hours, &cafe.PublicUsers, &images,
	)
	if err != nil {
		return models.Cafe{}, err
	}

	cafe.Tags = decodeJSONList(tags)
	cafe.Images = decodeJSONList(images)
	return cafe, nil
}

func collectCafes(rows *sql.Rows) ([]models.Cafe, error) {
	var cafes []models.Cafe
	for rows.Next() {
		cafe, err := rowToCafe(rows)
		if err != nil {
			return nil, err
		}
		cafes = append(cafes, cafe)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cafes, nil
}

func decodeJSONList(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		return nil
	}
	return out
}
