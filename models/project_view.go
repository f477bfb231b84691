package models

// ProjectView is the monthly view aggregate for a project, keyed by
// (project, month, year). It is incremented in the same transaction as the
// project's lifetime counter so the two can never diverge, and the increment
// itself is an upsert so concurrent views of a fresh month cannot race a
// find-then-insert window.
type ProjectView struct {
	ID        uint  `json:"id" db:"id" gorm:"primaryKey"`
	ProjectID uint  `json:"projectId" db:"project_id" gorm:"not null;index;uniqueIndex:idx_project_view_month"`
	Month     int   `json:"month" db:"month" gorm:"not null;uniqueIndex:idx_project_view_month"`
	Year      int   `json:"year" db:"year" gorm:"not null;uniqueIndex:idx_project_view_month"`
	Count     int64 `json:"count" db:"count" gorm:"not null;default:0"`
}
