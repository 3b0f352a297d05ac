package models

import (
	"encoding/json"
	"strings"
)

// UserSummary is the flattened master-table row for one user. It doubles as
// the authentication and uniqueness index; identity is the case-insensitive
// email address. List-valued fields are stored as one semicolon-joined string.
type UserSummary struct {
	FullName       string `json:"full_name" bson:"full_name"`
	Email          string `json:"email_address" bson:"email_address"`
	Password       string `json:"password" bson:"password"`
	Gender         string `json:"gender" bson:"gender"`
	Country        string `json:"country" bson:"country"`
	Year           string `json:"year" bson:"year"`
	ProfilePicture string `json:"profile_picture" bson:"profile_picture"`
	Selected       string `json:"recommendations_selected" bson:"recommendations_selected"`
	Bio            string `json:"bio" bson:"bio"`
}

// UserProfile is the full per-user detail document. It is keyed by a
// normalized form of FullName, not by email.
type UserProfile struct {
	FullName       string   `json:"full_name"`
	Email          string   `json:"email_address"`
	Password       string   `json:"password"`
	Gender         string   `json:"gender"`
	Country        string   `json:"country"`
	Year           string   `json:"year"`
	Education      string   `json:"education"`
	Interests      []string `json:"interests"`
	CustomInterest string   `json:"custom_interest"`
	Skills         []string `json:"skills"`
	CustomSkill    string   `json:"custom_skill"`
	ProfilePicture string   `json:"profile_picture"`
	Bio            string   `json:"bio"`
	Saved          []string `json:"recommendations_saved"`
	Selected       []string `json:"recommendations_selected"`
	Rejected       []string `json:"recommendations_rejected"`
}

// Normalize fills every optional field with its zero default so that each
// write carries the full overwrite shape. Nil slices become empty slices;
// a re-marshal of the result is byte-identical between identical payloads.
func (p UserProfile) Normalize() UserProfile {
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Saved == nil {
		p.Saved = []string{}
	}
	if p.Selected == nil {
		p.Selected = []string{}
	}
	if p.Rejected == nil {
		p.Rejected = []string{}
	}
	return p
}

// Flatten derives the master-table row from the full profile. List fields
// are joined with ";" so the row stays one record of plain strings.
func (p UserProfile) Flatten() UserSummary {
	return UserSummary{
		FullName:       p.FullName,
		Email:          p.Email,
		Password:       p.Password,
		Gender:         p.Gender,
		Country:        p.Country,
		Year:           p.Year,
		ProfilePicture: p.ProfilePicture,
		Selected:       strings.Join(p.Selected, ";"),
		Bio:            p.Bio,
	}
}

// legacySummary carries the pre-migration field names alongside the
// canonical ones so old rows decode in a single pass.
type legacySummary struct {
	UserSummary
	LegacyName  string `json:"name"`
	LegacyEmail string `json:"email"`
}

// DecodeSummary unmarshals a stored row, migrating the legacy "name"/"email"
// field names to the canonical schema. This is the only place the old
// format is understood; every read site sees canonical fields.
func DecodeSummary(data []byte) (UserSummary, error) {
	var row legacySummary
	if err := json.Unmarshal(data, &row); err != nil {
		return UserSummary{}, err
	}
	if row.FullName == "" && row.LegacyName != "" {
		row.FullName = row.LegacyName
	}
	if row.Email == "" && row.LegacyEmail != "" {
		row.Email = row.LegacyEmail
	}
	return row.UserSummary, nil
}

// DecodeSummaryList migrates every element of a stored row array.
func DecodeSummaryList(data []byte) ([]UserSummary, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	rows := make([]UserSummary, 0, len(raw))
	for _, r := range raw {
		row, err := DecodeSummary(r)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
