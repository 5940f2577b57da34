// file: internals/features/organization/orgchart/dto/orgchart_dto.go
package dto

import "github.com/google/uuid"

// Jenis simpul bagan organisasi
const (
	NodeTypeCompany    = "company"
	NodeTypeSchool     = "school"
	NodeTypeBranch     = "branch"
	NodeTypeDepartment = "department"
)

// OrgChartNodeDTO: satu simpul bagan company → schools → branches → departments.
type OrgChartNodeDTO struct {
	NodeType   string            `json:"node_type"`
	NodeID     uuid.UUID         `json:"node_id"`
	NodeName   string            `json:"node_name"`
	NodeCode   string            `json:"node_code,omitempty"`
	NodeActive bool              `json:"node_active"`
	Children   []OrgChartNodeDTO `json:"children"`
}
