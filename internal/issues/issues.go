package issues

import (
	"time"

	"github.com/google/uuid"

	issueDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/issue"
)

// Issue statuses. An allow-list, not a workflow: any status may be set
// over any other.
const (
	StatusSubmitted    = "Submitted"
	StatusAcknowledged = "Acknowledged"
	StatusResolved     = "Resolved"
)

var validStatuses = map[string]bool{
	StatusSubmitted:    true,
	StatusAcknowledged: true,
	StatusResolved:     true,
}

func ValidStatus(status string) bool {
	return validStatuses[status]
}

// Categories offered by the reporting clients. Intake requires a category
// but does not check it against this list.
var Categories = []string{
	"Pothole",
	"Streetlight",
	"Garbage",
	"Water Supply",
	"Traffic",
	"Other",
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Owner is the slice of the reporting user embedded in issue detail
// responses, keyed "users" on the wire.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Issue struct {
	ID                 string       `json:"id"`
	UserID             string       `json:"user_id"`
	Description        string       `json:"description"`
	Category           string       `json:"category"`
	Location           string       `json:"location"`
	Coordinates        *Coordinates `json:"coordinates"`
	ImageURL           *string      `json:"image_url"`
	Status             string       `json:"status"`
	AssignedDepartment *string      `json:"assigned_department"`
	AdminRemarks       *string      `json:"admin_remarks"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
	Users              *Owner       `json:"users,omitempty"`
}

// NewIssue builds a fresh issue from intake input. Identifiers are UUIDs;
// the status always starts at Submitted.
func NewIssue(dto CreateIssueDTO) *Issue {
	now := time.Now()
	return &Issue{
		ID:          uuid.NewString(),
		UserID:      dto.UserID,
		Description: dto.Description,
		Category:    dto.Category,
		Location:    dto.Location,
		Coordinates: dto.Coordinates,
		ImageURL:    dto.ImageURL,
		Status:      StatusSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ToDataModel(i *Issue) *issueDatamodel.Issue {
	dm := &issueDatamodel.Issue{
		ID:                 i.ID,
		UserID:             i.UserID,
		Description:        i.Description,
		Category:           i.Category,
		Location:           i.Location,
		ImageURL:           i.ImageURL,
		Status:             i.Status,
		AssignedDepartment: i.AssignedDepartment,
		AdminRemarks:       i.AdminRemarks,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
	if i.Coordinates != nil {
		lat, lng := i.Coordinates.Lat, i.Coordinates.Lng
		dm.Latitude = &lat
		dm.Longitude = &lng
	}
	return dm
}

func FromDataModel(dm *issueDatamodel.Issue) *Issue {
	i := &Issue{
		ID:                 dm.ID,
		UserID:             dm.UserID,
		Description:        dm.Description,
		Category:           dm.Category,
		Location:           dm.Location,
		ImageURL:           dm.ImageURL,
		Status:             dm.Status,
		AssignedDepartment: dm.AssignedDepartment,
		AdminRemarks:       dm.AdminRemarks,
		CreatedAt:          dm.CreatedAt,
		UpdatedAt:          dm.UpdatedAt,
	}
	if dm.Latitude != nil && dm.Longitude != nil {
		i.Coordinates = &Coordinates{Lat: *dm.Latitude, Lng: *dm.Longitude}
	}
	return i
}

func FromDataModelSlice(dms []*issueDatamodel.Issue) []*Issue {
	result := make([]*Issue, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}
