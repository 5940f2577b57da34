// file: internals/features/organization/wizard/model/organization_draft_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Jenis entity yang dibuat lewat wizard
const (
	DraftKindCompany = "company"
	DraftKindSchool  = "school"
	DraftKindBranch  = "branch"
)

const (
	DraftModeCreate = "create"
	DraftModeEdit   = "edit"
)

// OrganizationDraftModel menyimpan state wizard multi-step di server:
// satu record flat berisi SEMUA field lintas step + posisi step + step yang sudah lolos.
type OrganizationDraftModel struct {
	// ============ PK & Tenant ============
	OrganizationDraftID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:organization_draft_id" json:"organization_draft_id"`
	OrganizationDraftCompanyID *uuid.UUID `gorm:"type:uuid;index;column:organization_draft_company_id" json:"organization_draft_company_id,omitempty"`
	OrganizationDraftCreatedBy uuid.UUID  `gorm:"type:uuid;not null;column:organization_draft_created_by" json:"organization_draft_created_by"`

	// ============ Target ============
	OrganizationDraftEntityKind string     `gorm:"type:varchar(16);not null;column:organization_draft_entity_kind" json:"organization_draft_entity_kind"`
	OrganizationDraftMode       string     `gorm:"type:varchar(8);not null;default:'create';column:organization_draft_mode" json:"organization_draft_mode"`
	OrganizationDraftTargetID   *uuid.UUID `gorm:"type:uuid;column:organization_draft_target_id" json:"organization_draft_target_id,omitempty"`

	// ============ State mesin step ============
	OrganizationDraftCurrentStep    int           `gorm:"type:integer;not null;default:0;column:organization_draft_current_step" json:"organization_draft_current_step"`
	OrganizationDraftCompletedSteps pq.Int64Array `gorm:"type:integer[];column:organization_draft_completed_steps" json:"organization_draft_completed_steps"`

	// Record flat: semua field lintas step dalam satu objek JSON
	OrganizationDraftRecord datatypes.JSON `gorm:"type:jsonb;not null;default:'{}';column:organization_draft_record" json:"organization_draft_record"`

	// Terminal state
	OrganizationDraftSubmittedAt *time.Time `gorm:"type:timestamptz;column:organization_draft_submitted_at" json:"organization_draft_submitted_at,omitempty"`
	// Hasil submit (id entity yang dibuat/diubah)
	OrganizationDraftResultID *uuid.UUID `gorm:"type:uuid;column:organization_draft_result_id" json:"organization_draft_result_id,omitempty"`

	// ============ Audit / Soft delete ============
	OrganizationDraftCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:organization_draft_created_at" json:"organization_draft_created_at"`
	OrganizationDraftUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:organization_draft_updated_at" json:"organization_draft_updated_at"`
	OrganizationDraftDeletedAt gorm.DeletedAt `gorm:"column:organization_draft_deleted_at;index" json:"organization_draft_deleted_at,omitempty"`
}

func (OrganizationDraftModel) TableName() string { return "organization_drafts" }

func (m *OrganizationDraftModel) BeforeSave(tx *gorm.DB) error {
	m.OrganizationDraftEntityKind = strings.ToLower(strings.TrimSpace(m.OrganizationDraftEntityKind))
	switch m.OrganizationDraftEntityKind {
	case DraftKindCompany, DraftKindSchool, DraftKindBranch:
	default:
		return errors.New("organization_draft_entity_kind tidak dikenal")
	}
	if m.OrganizationDraftMode != DraftModeCreate && m.OrganizationDraftMode != DraftModeEdit {
		return errors.New("organization_draft_mode tidak dikenal")
	}
	if m.OrganizationDraftMode == DraftModeEdit && m.OrganizationDraftTargetID == nil {
		return errors.New("mode edit membutuhkan organization_draft_target_id")
	}
	return nil
}

// IsSubmitted: draft yang sudah terminal tidak boleh dimutasi lagi.
func (m *OrganizationDraftModel) IsSubmitted() bool {
	return m.OrganizationDraftSubmittedAt != nil
}

// StepCompleted cek apakah step idx pernah lolos validasi.
func (m *OrganizationDraftModel) StepCompleted(idx int) bool {
	for _, s := range m.OrganizationDraftCompletedSteps {
		if int(s) == idx {
			return true
		}
	}
	return false
}

// MarkStepCompleted menandai step idx selesai (idempoten).
func (m *OrganizationDraftModel) MarkStepCompleted(idx int) {
	if m.StepCompleted(idx) {
		return
	}
	m.OrganizationDraftCompletedSteps = append(m.OrganizationDraftCompletedSteps, int64(idx))
}
