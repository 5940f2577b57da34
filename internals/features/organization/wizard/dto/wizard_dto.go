// file: internals/features/organization/wizard/dto/wizard_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/organization/wizard/model"
	"sekolahku_backend/internals/features/organization/wizard/service"
)

/* ============================================
   REQUEST DTO
============================================ */

type WizardCreateDTO struct {
	EntityKind string     `json:"entity_kind" validate:"required,oneof=company school branch"`
	Mode       string     `json:"mode" validate:"omitempty,oneof=create edit"`
	TargetID   *uuid.UUID `json:"target_id" validate:"omitempty"`
}

func (p *WizardCreateDTO) Normalize() {
	p.EntityKind = strings.ToLower(strings.TrimSpace(p.EntityKind))
	p.Mode = strings.ToLower(strings.TrimSpace(p.Mode))
	if p.Mode == "" {
		p.Mode = model.DraftModeCreate
	}
}

// Patch record: map flat, nilai nil = hapus field.
type WizardPatchRecordDTO struct {
	Record map[string]any `json:"record" validate:"required"`
}

type WizardJumpDTO struct {
	TargetStep int `json:"target_step" validate:"gte=0"`
}

/* ============================================
   RESPONSE DTO
============================================ */

type WizardStepInfoDTO struct {
	StepID         int      `json:"step_id"`
	Title          string   `json:"title"`
	RequiredFields []string `json:"required_fields,omitempty"`
	Completed      bool     `json:"completed"`
	Current        bool     `json:"current"`
}

type WizardDraftResponseDTO struct {
	OrganizationDraftID         uuid.UUID           `json:"organization_draft_id"`
	OrganizationDraftCompanyID  *uuid.UUID          `json:"organization_draft_company_id,omitempty"`
	OrganizationDraftEntityKind string              `json:"organization_draft_entity_kind"`
	OrganizationDraftMode       string              `json:"organization_draft_mode"`
	OrganizationDraftTargetID   *uuid.UUID          `json:"organization_draft_target_id,omitempty"`
	CurrentStep                 int                 `json:"current_step"`
	TotalSteps                  int                 `json:"total_steps"`
	Steps                       []WizardStepInfoDTO `json:"steps"`
	Record                      map[string]any      `json:"record"`
	SubmittedAt                 *time.Time          `json:"submitted_at,omitempty"`
	ResultID                    *uuid.UUID          `json:"result_id,omitempty"`
	UpdatedAt                   time.Time           `json:"updated_at"`
}

// FromDraftModel merakit response lengkap dengan metadata step
// supaya klien bisa render progress bar tanpa hardcode.
func FromDraftModel(m model.OrganizationDraftModel, rec map[string]any) WizardDraftResponseDTO {
	steps := service.StepsFor(m.OrganizationDraftEntityKind)
	infos := make([]WizardStepInfoDTO, 0, len(steps))
	for i, st := range steps {
		infos = append(infos, WizardStepInfoDTO{
			StepID:         st.StepID,
			Title:          st.Title,
			RequiredFields: st.RequiredFields,
			Completed:      m.StepCompleted(i),
			Current:        i == m.OrganizationDraftCurrentStep,
		})
	}
	if rec == nil {
		rec = map[string]any{}
	}
	return WizardDraftResponseDTO{
		OrganizationDraftID:         m.OrganizationDraftID,
		OrganizationDraftCompanyID:  m.OrganizationDraftCompanyID,
		OrganizationDraftEntityKind: m.OrganizationDraftEntityKind,
		OrganizationDraftMode:       m.OrganizationDraftMode,
		OrganizationDraftTargetID:   m.OrganizationDraftTargetID,
		CurrentStep:                 m.OrganizationDraftCurrentStep,
		TotalSteps:                  len(steps),
		Steps:                       infos,
		Record:                      rec,
		SubmittedAt:                 m.OrganizationDraftSubmittedAt,
		ResultID:                    m.OrganizationDraftResultID,
		UpdatedAt:                   m.OrganizationDraftUpdatedAt,
	}
}

/* ============================================
   SUBMIT RESULT
============================================ */

type WizardSubmitResultDTO struct {
	EntityKind string    `json:"entity_kind"`
	Mode       string    `json:"mode"`
	ResultID   uuid.UUID `json:"result_id"`
	Entity     any       `json:"entity"`
}
