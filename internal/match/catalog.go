package match

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// DefaultCatalog is served when no catalog file is configured.
var DefaultCatalog = []Career{
	{Title: "Software Engineer", Tags: []string{"python", "java", "problem solving", "coding"}},
	{Title: "Data Scientist", Tags: []string{"python", "statistics", "machine learning", "data"}},
	{Title: "UX Designer", Tags: []string{"design", "creativity", "research", "empathy"}},
	{Title: "Product Manager", Tags: []string{"communication", "leadership", "planning"}},
	{Title: "DevOps Engineer", Tags: []string{"linux", "cloud", "automation", "docker"}},
	{Title: "Security Analyst", Tags: []string{"security", "networking", "analysis"}},
	{Title: "Technical Writer", Tags: []string{"writing", "communication", "documentation"}},
}

// LoadCatalog reads careers from a CSV file with columns
// title,tags,description where tags is a ;-joined list.
func LoadCatalog(path string) ([]Career, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("catalog read: %w", err)
	}
	var out []Career
	for i, row := range recs {
		if i == 0 || len(row) == 0 {
			continue // header
		}
		c := Career{Title: row[0]}
		if len(row) > 1 && row[1] != "" {
			c.Tags = strings.Split(row[1], ";")
		}
		if len(row) > 2 {
			c.Description = row[2]
		}
		out = append(out, c)
	}
	return out, nil
}
