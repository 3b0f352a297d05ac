package summary

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pathwise/pathwise/internal/models"
)

// BaselineSource supplies the immutable seed rows the master table is
// merged over. Locally-accumulated rows live in the key-value store and
// are layered on top at read time.
type BaselineSource interface {
	Load(ctx context.Context) ([]models.UserSummary, error)
}

// CSVBaseline reads the seed dataset from a local CSV file with a header
// row. Legacy header names ("name", "email") are accepted alongside the
// canonical ones.
type CSVBaseline struct {
	Path string
}

func NewCSVBaseline(path string) *CSVBaseline {
	return &CSVBaseline{Path: path}
}

func (b *CSVBaseline) Load(ctx context.Context) ([]models.UserSummary, error) {
	f, err := os.Open(b.Path)
	if err != nil {
		return nil, fmt.Errorf("baseline csv open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("baseline csv read: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}

	// map header names to column indexes once
	col := map[string]int{}
	for i, h := range recs[0] {
		col[h] = i
	}
	field := func(row []string, names ...string) string {
		for _, n := range names {
			if i, ok := col[n]; ok && i < len(row) {
				return row[i]
			}
		}
		return ""
	}

	rows := make([]models.UserSummary, 0, len(recs)-1)
	for _, row := range recs[1:] {
		rows = append(rows, models.UserSummary{
			FullName:       field(row, "full_name", "name"),
			Email:          field(row, "email_address", "email"),
			Password:       field(row, "password"),
			Gender:         field(row, "gender"),
			Country:        field(row, "country"),
			Year:           field(row, "year"),
			ProfilePicture: field(row, "profile_picture"),
			Selected:       field(row, "recommendations_selected"),
			Bio:            field(row, "bio"),
		})
	}
	return rows, nil
}
