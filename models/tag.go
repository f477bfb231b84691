package models

// Tag is a free-text label associated with projects. Tag identity is
// case-insensitive: Name is always stored lowercase and the display casing is
// resolved through ranking.CanonicalTagName at response time.
type Tag struct {
	ID   uint   `json:"id" db:"id" gorm:"primaryKey"`
	Name string `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
}

// ProjectTag joins projects and tags many-to-many.
type ProjectTag struct {
	ID        uint `json:"id" db:"id" gorm:"primaryKey"`
	ProjectID uint `json:"projectId" db:"project_id" gorm:"not null;index;uniqueIndex:idx_project_tag_unique"`
	TagID     uint `json:"tagId" db:"tag_id" gorm:"not null;index;uniqueIndex:idx_project_tag_unique"`

	Project Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Tag     Tag     `json:"-" gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
}
