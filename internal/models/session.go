package models

// SessionView is the merged representation of the authenticated user:
// summary identity fields plus the detail fields the UI needs, with the
// avatar resource reference resolved to a fetchable URL. It lives only for
// the lifetime of a session.
type SessionView struct {
	FullName  string   `json:"full_name"`
	Email     string   `json:"email_address"`
	Gender    string   `json:"gender"`
	Country   string   `json:"country"`
	Year      string   `json:"year"`
	Bio       string   `json:"bio"`
	AvatarURL string   `json:"avatar_url"`
	Interests []string `json:"interests"`
	Skills    []string `json:"skills"`
	Selected  []string `json:"recommendations_selected"`
}

// ViewOf builds the merged session view from a profile. The avatar URL is
// left as the raw resource reference; callers resolve it when an object
// store is configured.
func ViewOf(p UserProfile) SessionView {
	p = p.Normalize()
	return SessionView{
		FullName:  p.FullName,
		Email:     p.Email,
		Gender:    p.Gender,
		Country:   p.Country,
		Year:      p.Year,
		Bio:       p.Bio,
		AvatarURL: p.ProfilePicture,
		Interests: p.Interests,
		Skills:    p.Skills,
		Selected:  p.Selected,
	}
}
