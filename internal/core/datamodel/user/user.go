package user

import "time"

// User rows come from sign-up with a client-generated identifier; the
// backend never mints user IDs.
type User struct {
	ID           string    `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Phone        *string   `gorm:"column:phone"`
	Address      *string   `gorm:"column:address"`
	AadharNumber *string   `gorm:"column:aadhar_number"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
