package postgres

import (
	"gorm.io/gorm"

	apperrors "github.com/opencivic/civic-reporter/internal"
	departmentDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/department"
	"github.com/opencivic/civic-reporter/internal/departments"
)

// DepartmentRepository implements departments.RepositoryAPI using GORM.
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) departments.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*departmentDatamodel.Department, error) {
	var result []*departmentDatamodel.Department
	err := r.db.Order("created_at DESC").Find(&result).Error
	return result, err
}

func (r *DepartmentRepository) GetByID(id int64) (*departmentDatamodel.Department, error) {
	var dept departmentDatamodel.Department
	err := r.db.Where("id = ?", id).First(&dept).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) Create(dept *departmentDatamodel.Department) error {
	return r.db.Create(dept).Error
}

func (r *DepartmentRepository) Update(dept *departmentDatamodel.Department) error {
	return r.db.Save(dept).Error
}

// Delete removes the row. Issues keep whatever department name string they
// already carry; there is no foreign key to cascade or block on.
func (r *DepartmentRepository) Delete(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&departmentDatamodel.Department{})
	return res.RowsAffected, res.Error
}

func (r *DepartmentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&departmentDatamodel.Department{}).Count(&count).Error
	return count, err
}
