package models

import "time"

// Project status. Completion is explicit and owner-driven, never inferred
// from artifact presence.
const (
	ProjectStatusDraft      = "draft"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
)

// Project is the unit of work for one video creation effort, from style
// selection through final artifacts. Stage outputs live in JSON columns and
// are always replaced as a whole, never merged field-by-field.
type Project struct {
	ID          string      `gorm:"primaryKey;type:varchar(64)" json:"id"`
	OwnerID     string      `gorm:"index;type:varchar(64)" json:"ownerId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `gorm:"type:varchar(32)" json:"status"`
	Style       *Style      `gorm:"type:json;serializer:json" json:"style,omitempty"`
	Script      *Script     `gorm:"type:json;serializer:json" json:"script,omitempty"`
	Storyboard  *Storyboard `gorm:"type:json;serializer:json" json:"storyboard,omitempty"`
	Images      *ImageSet   `gorm:"type:json;serializer:json" json:"images,omitempty"`
	Videos      *VideoSet   `gorm:"type:json;serializer:json" json:"videos,omitempty"`
	Voiceover   *Voiceover  `gorm:"type:json;serializer:json" json:"voiceover,omitempty"`
	Soundtrack  *Soundtrack `gorm:"type:json;serializer:json" json:"soundtrack,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (Project) TableName() string { return "project" }

// StyleInfo returns the prompt metadata of the active style, or nil when no
// style is set.
func (p *Project) StyleInfo() *StyleInfo {
	return p.Style.Info()
}
