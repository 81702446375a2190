package domain

import "github.com/google/uuid"

// Profile is the public view of a user shown to other list members.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
}

// PhotoURLOrEmpty returns the photo URL or "".
func (p *Profile) PhotoURLOrEmpty() string {
	if p.PhotoURL == nil {
		return ""
	}
	return *p.PhotoURL
}
