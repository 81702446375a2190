package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Color is a list's display color.
type Color string

const (
	ColorRed    Color = "RED"
	ColorOrange Color = "ORANGE"
	ColorYellow Color = "YELLOW"
	ColorGreen  Color = "GREEN"
	ColorBlue   Color = "BLUE"
	ColorPurple Color = "PURPLE"
	ColorPink   Color = "PINK"
)

var validColors = map[Color]bool{
	ColorRed: true, ColorOrange: true, ColorYellow: true, ColorGreen: true,
	ColorBlue: true, ColorPurple: true, ColorPink: true,
}

// Icon is a list's display icon.
type Icon string

var validIcons = map[Icon]bool{}

func init() {
	for _, name := range []string{
		"BACKPACK", "BOOK", "BOOKMARK", "BRUSH", "CAKE", "CALL", "CAR", "CELEBRATION",
		"CLIPBOARD", "FLIGHT", "FOOD_BEVERAGE", "FOOTBALL", "FOREST", "GROUP", "HANDYMAN",
		"HOME_REPAIR_SERVICE", "LIGHT_BULB", "MEDICAL_SERVICES", "MUSIC_NOTE", "PERSON",
		"PETS", "PIANO", "RESTAURANT", "SCISSORS", "SHOPPING_CART", "SMILE", "WORK",
	} {
		validIcons[Icon(name)] = true
	}
}

// ClassifierShopping enables category prediction for grocery-style lists.
const ClassifierShopping = "shopping"

// TaskList is a shared, ordered collection of tasks owned by one user.
type TaskList struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Title   string    `json:"title"`
	Color   *Color    `json:"color,omitempty"`
	Icon    *Icon     `json:"icon,omitempty"`
	// ClassifierType enables automatic task categorization when set.
	ClassifierType *string   `json:"classifier_type,omitempty"`
	DateCreated    time.Time `json:"date_created"`
	LastModified   time.Time `json:"last_modified"`
}

// NewTaskList builds a list owned by ownerID.
func NewTaskList(ownerID uuid.UUID, title string, now time.Time) (*TaskList, error) {
	l := &TaskList{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        title,
		DateCreated:  now.UTC(),
		LastModified: now.UTC(),
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks the list's title and display attributes.
func (l *TaskList) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return ErrListTitleRequired
	}
	if l.Color != nil && !validColors[*l.Color] {
		return Wrap(KindInputInvalid, "unknown list color "+string(*l.Color), nil)
	}
	if l.Icon != nil && !validIcons[*l.Icon] {
		return Wrap(KindInputInvalid, "unknown list icon "+string(*l.Icon), nil)
	}
	return nil
}

// ClassifiesTasks reports whether tasks added to the list should get a predicted category.
func (l *TaskList) ClassifiesTasks() bool {
	return l.ClassifierType != nil && *l.ClassifierType != ""
}

// ColorName returns the color or "" when unset.
func (l *TaskList) ColorName() string {
	if l.Color == nil {
		return ""
	}
	return string(*l.Color)
}

// IconName returns the icon or "" when unset.
func (l *TaskList) IconName() string {
	if l.Icon == nil {
		return ""
	}
	return string(*l.Icon)
}
