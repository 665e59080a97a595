package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"travel_guide/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// JSON column shapes
type hourRow struct {
	Days  string `json:"days"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

type amenityRow struct {
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertPlace(ctx context.Context, p domain.Place) error {
	cats := p.Categories
	if cats == nil {
		cats = []string{}
	}
	hours := make([]hourRow, 0, len(p.Hours))
	for _, h := range p.Hours {
		hours = append(hours, hourRow{Days: h.Days, Open: h.Open, Close: h.Close})
	}
	amen := make([]amenityRow, 0, len(p.Amenities))
	for _, a := range p.Amenities {
		amen = append(amen, amenityRow{Label: a.Label, Available: a.Available})
	}
	catsJSON, _ := json.Marshal(cats)
	hoursJSON, _ := json.Marshal(hours)
	amenJSON, _ := json.Marshal(amen)

	_, err := r.db.ExecContext(ctx, upsertPlaceSQL,
		p.ID,
		p.Name,
		string(catsJSON),
		nullable(p.Info),
		nullable(p.Address.Line),
		nullable(p.Address.City),
		nullable(p.Address.State),
		nullable(p.Address.Country),
		string(hoursJSON),
		string(amenJSON),
		valStr(p.MapLink),
	)
	return err
}

func (r *Repo) ListPlaces(ctx context.Context) ([]domain.Place, error) {
	rows, err := r.db.QueryContext(ctx, listPlacesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Place
	for rows.Next() {
		var p domain.Place
		var (
			catsJSON, hoursJSON, amenJSON []byte
			info, line, city, state       sql.NullString
			country, mapLink              sql.NullString
		)
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&catsJSON,
			&info,
			&line, &city, &state, &country,
			&hoursJSON,
			&amenJSON,
			&mapLink,
		); err != nil {
			return nil, err
		}
		p.Info = info.String
		p.Address = domain.Address{Line: line.String, City: city.String, State: state.String, Country: country.String}
		if mapLink.Valid && mapLink.String != "" {
			l := mapLink.String
			p.MapLink = &l
		}

		if len(catsJSON) > 0 {
			if err := json.Unmarshal(catsJSON, &p.Categories); err != nil {
				return nil, fmt.Errorf("place %d categories: %w", p.ID, err)
			}
		}
		var hours []hourRow
		if len(hoursJSON) > 0 {
			if err := json.Unmarshal(hoursJSON, &hours); err != nil {
				return nil, fmt.Errorf("place %d hours: %w", p.ID, err)
			}
		}
		for _, h := range hours {
			p.Hours = append(p.Hours, domain.HourInterval{Days: h.Days, Open: h.Open, Close: h.Close})
		}
		var amen []amenityRow
		if len(amenJSON) > 0 {
			if err := json.Unmarshal(amenJSON, &amen); err != nil {
				return nil, fmt.Errorf("place %d amenities: %w", p.ID, err)
			}
		}
		for _, a := range amen {
			p.Amenities = append(p.Amenities, domain.Amenity{Label: a.Label, Available: a.Available})
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
