package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CityCodes is the pair of administrative codes the weather command needs.
type CityCodes struct {
	AdCode   string
	CityCode string
}

// FindCityCodes looks a city up by a fragment of its Chinese name and
// returns the first match. The second return value is false on a miss;
// a miss is not an error.
func (r *SQLiteRepository) FindCityCodes(ctx context.Context, nameZh string) (CityCodes, bool, error) {
	var codes CityCodes
	err := r.db.QueryRowContext(ctx,
		`SELECT adcode, citycode FROM city_codes WHERE name_zh LIKE ? LIMIT 1`,
		"%"+nameZh+"%").Scan(&codes.AdCode, &codes.CityCode)
	if errors.Is(err, sql.ErrNoRows) {
		return CityCodes{}, false, nil
	}
	if err != nil {
		return CityCodes{}, false, fmt.Errorf("find city codes: %w", err)
	}
	return codes, true, nil
}
