package users

import (
	"time"

	userDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/user"
)

// User is the full profile, returned only to the user who created it.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	AadharNumber *string   `json:"aadhar_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Summary is the listing surface: everything else on the profile stays
// private to the owner.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Address:      u.Address,
		AadharNumber: u.AadharNumber,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(dm *userDatamodel.User) *User {
	return &User{
		ID:           dm.ID,
		Name:         dm.Name,
		Email:        dm.Email,
		Phone:        dm.Phone,
		Address:      dm.Address,
		AadharNumber: dm.AadharNumber,
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
	}
}

func SummaryFromDataModel(dm *userDatamodel.User) Summary {
	return Summary{
		ID:        dm.ID,
		Name:      dm.Name,
		Email:     dm.Email,
		CreatedAt: dm.CreatedAt,
	}
}
