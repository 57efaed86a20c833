package department

import "time"

// Department is referenced from issues only by its name string, never by
// key, so renames and deletes leave whatever issues already store.
type Department struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;uniqueIndex;not null"`
	Description  string    `gorm:"column:description"`
	ContactEmail string    `gorm:"column:contact_email"`
	ContactPhone string    `gorm:"column:contact_phone"`
	IsActive     bool      `gorm:"column:active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
