package postgres

import (
	"gorm.io/gorm"

	userDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/user"
	"github.com/opencivic/civic-reporter/internal/users"
)

// UserRepository implements users.RepositoryAPI using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) users.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *userDatamodel.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetAll() ([]*userDatamodel.User, error) {
	var result []*userDatamodel.User
	err := r.db.Order("created_at DESC").Find(&result).Error
	return result, err
}
