package domain

import (
	"time"

	"github.com/google/uuid"
)

// SortType is how a member sorts the tasks of a list on their devices.
type SortType string

const (
	SortOrdinal     SortType = "ORDINAL"
	SortLabel       SortType = "LABEL"
	SortCategory    SortType = "CATEGORY"
	SortDateCreated SortType = "DATE_CREATED"
	SortUpcoming    SortType = "UPCOMING"
	SortStarred     SortType = "STARRED"
)

// SortDirection orders a SortType.
type SortDirection string

const (
	SortAscending  SortDirection = "ASCENDING"
	SortDescending SortDirection = "DESCENDING"
)

// ListPrefs is one member's view of a list. A row exists for the owner and
// for every member, so it doubles as the membership record. Ordinal is the
// list's position in that member's list-of-lists.
type ListPrefs struct {
	ListID           uuid.UUID     `json:"list_id"`
	UserID           uuid.UUID     `json:"user_id"`
	SortType         SortType      `json:"sort_type"`
	SortDirection    SortDirection `json:"sort_direction"`
	ShowIndexNumbers bool          `json:"show_index_numbers"`
	Ordinal          int           `json:"ordinal"`
	LastModified     time.Time     `json:"last_modified"`
}

// DefaultListPrefs returns the prefs a new member starts with.
func DefaultListPrefs(listID, userID uuid.UUID, ordinal int, now time.Time) *ListPrefs {
	return &ListPrefs{
		ListID:        listID,
		UserID:        userID,
		SortType:      SortOrdinal,
		SortDirection: SortAscending,
		Ordinal:       ordinal,
		LastModified:  now.UTC(),
	}
}

// Validate checks the sort settings.
func (p *ListPrefs) Validate() error {
	switch p.SortType {
	case SortOrdinal, SortLabel, SortCategory, SortDateCreated, SortUpcoming, SortStarred:
	default:
		return Wrap(KindInputInvalid, "unknown sort type "+string(p.SortType), nil)
	}
	switch p.SortDirection {
	case SortAscending, SortDescending:
	default:
		return Wrap(KindInputInvalid, "unknown sort direction "+string(p.SortDirection), nil)
	}
	if p.Ordinal < 0 {
		return Wrap(KindInputInvalid, "ordinal cannot be negative", nil)
	}
	return nil
}

// ListWithPrefs pairs a list with the caller's prefs for it.
type ListWithPrefs struct {
	List  TaskList  `json:"list"`
	Prefs ListPrefs `json:"prefs"`
}
