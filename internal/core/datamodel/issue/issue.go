package issue

import "time"

type Issue struct {
	ID                 string    `gorm:"primaryKey"`
	UserID             string    `gorm:"column:user_id;not null;index"`
	Description        string    `gorm:"not null"`
	Category           string    `gorm:"column:category;not null"`
	Location           string    `gorm:"column:location;not null"`
	Latitude           *float64  `gorm:"column:latitude"`
	Longitude          *float64  `gorm:"column:longitude"`
	ImageURL           *string   `gorm:"column:image_url"`
	Status             string    `gorm:"column:status;default:'Submitted'"`
	AssignedDepartment *string   `gorm:"column:assigned_department"`
	AdminRemarks       *string   `gorm:"column:admin_remarks"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
