package postgres

import (
	"gorm.io/gorm"

	apperrors "github.com/opencivic/civic-reporter/internal"
	issueDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/issue"
	userDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/user"
	"github.com/opencivic/civic-reporter/internal/issues"
)

// IssueRepository implements issues.RepositoryAPI using GORM.
type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) issues.RepositoryAPI {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(issue *issueDatamodel.Issue) error {
	return r.db.Create(issue).Error
}

func (r *IssueRepository) GetByID(id string) (*issueDatamodel.Issue, error) {
	var issue issueDatamodel.Issue
	err := r.db.Where("id = ?", id).First(&issue).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, err
	}
	return &issue, nil
}

func (r *IssueRepository) GetAll() ([]*issueDatamodel.Issue, error) {
	var result []*issueDatamodel.Issue
	err := r.db.Order("created_at DESC").Find(&result).Error
	return result, err
}

func (r *IssueRepository) GetByUserID(userID string) ([]*issueDatamodel.Issue, error) {
	var result []*issueDatamodel.Issue
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

// Update writes only the given columns. The caller includes updated_at in
// fields so status, department, remarks and the timestamp land in one write.
func (r *IssueRepository) Update(id string, fields map[string]interface{}) error {
	return r.db.Model(&issueDatamodel.Issue{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *IssueRepository) Delete(id string) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&issueDatamodel.Issue{})
	return res.RowsAffected, res.Error
}

// GetOwner resolves the reporting user's name and email for the detail
// join. A missing user returns empty strings, not an error: issues outlive
// their reporters.
func (r *IssueRepository) GetOwner(userID string) (string, string, error) {
	var user userDatamodel.User
	err := r.db.Select("name", "email").Where("id = ?", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", "", nil
		}
		return "", "", err
	}
	return user.Name, user.Email, nil
}
