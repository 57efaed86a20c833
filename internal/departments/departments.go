package departments

import (
	"time"

	departmentDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/department"
)

type Department struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Defaults are the four rows seeded when the table is empty. Issues refer
// to these by name string only, so the names are effectively part of the
// public surface.
var Defaults = []Department{
	{
		Name:         "Public Works",
		Description:  "Roads, potholes, and public infrastructure maintenance",
		ContactEmail: "publicworks@civicreporter.local",
		Active:       true,
	},
	{
		Name:         "Water Supply",
		Description:  "Water distribution, pipelines, and drainage",
		ContactEmail: "water@civicreporter.local",
		Active:       true,
	},
	{
		Name:         "Sanitation",
		Description:  "Garbage collection and waste management",
		ContactEmail: "sanitation@civicreporter.local",
		Active:       true,
	},
	{
		Name:         "Electrical",
		Description:  "Streetlights and public electrical installations",
		ContactEmail: "electrical@civicreporter.local",
		Active:       true,
	},
}

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		IsActive:     d.Active,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func FromDataModel(dm *departmentDatamodel.Department) *Department {
	return &Department{
		ID:           dm.ID,
		Name:         dm.Name,
		Description:  dm.Description,
		ContactEmail: dm.ContactEmail,
		ContactPhone: dm.ContactPhone,
		Active:       dm.IsActive,
		CreatedAt:    dm.CreatedAt,
		UpdatedAt:    dm.UpdatedAt,
	}
}

func FromDataModelSlice(dms []*departmentDatamodel.Department) []*Department {
	result := make([]*Department, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModel(dm)
	}
	return result
}
