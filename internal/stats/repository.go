package stats

import (
	"github.com/jmoiron/sqlx"
)

// RepositoryAPI is the raw read path for the aggregations. Both queries
// deliberately scan the full table: the original recomputed its numbers on
// every request and this keeps that contract.
type RepositoryAPI interface {
	AllStatuses() ([]string, error)
	AllIssueRows() ([]IssueRow, error)
}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) AllStatuses() ([]string, error) {
	var statuses []string
	err := r.db.Select(&statuses, "SELECT status FROM issues")
	return statuses, err
}

func (r *Repository) AllIssueRows() ([]IssueRow, error) {
	var rows []IssueRow
	err := r.db.Select(&rows, "SELECT status, location, latitude, longitude FROM issues")
	return rows, err
}
