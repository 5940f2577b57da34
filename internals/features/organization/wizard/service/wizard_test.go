package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/organization/wizard/model"
)

func newCompanyDraft() *model.OrganizationDraftModel {
	return &model.OrganizationDraftModel{
		OrganizationDraftEntityKind:  model.DraftKindCompany,
		OrganizationDraftMode:        "create",
		OrganizationDraftCurrentStep: 0,
	}
}

func validCompanyRecord() map[string]any {
	return map[string]any{
		"company_name": "Yayasan Cendekia",
		"company_code": "YCD",
	}
}

func TestAdvance_RejectionLeavesDraftUnchanged(t *testing.T) {
	d := newCompanyDraft()

	errs, err := Advance(d, map[string]any{"company_code": "YCD"})
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Equal(t, "Wajib diisi", errs["company_name"])

	// Step tidak bergeser, step 0 tidak tercatat selesai.
	assert.Equal(t, 0, d.OrganizationDraftCurrentStep)
	assert.False(t, d.StepCompleted(0))
}

func TestAdvance_HappyPathToLastStep(t *testing.T) {
	d := newCompanyDraft()
	rec := validCompanyRecord()

	errs, err := Advance(d, rec)
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, 1, d.OrganizationDraftCurrentStep)
	assert.True(t, d.StepCompleted(0))

	errs, err = Advance(d, rec)
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, 2, d.OrganizationDraftCurrentStep)

	// Step terakhir: lolos tapi tidak maju lagi.
	errs, err = Advance(d, rec)
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, 2, d.OrganizationDraftCurrentStep)
	assert.True(t, d.StepCompleted(2))
}

func TestAdvance_StepValidatorRules(t *testing.T) {
	d := newCompanyDraft()
	rec := validCompanyRecord()
	rec["company_name"] = "AB" // terlalu pendek

	errs, err := Advance(d, rec)
	require.NoError(t, err)
	assert.Equal(t, "Nama minimal 3 karakter", errs["company_name"])

	// Email invalid di step 1.
	d2 := newCompanyDraft()
	rec2 := validCompanyRecord()
	_, err = Advance(d2, rec2)
	require.NoError(t, err)

	rec2["company_profile_email"] = "bukan-email"
	errs, err = Advance(d2, rec2)
	require.NoError(t, err)
	assert.Contains(t, errs, "company_profile_email")
	assert.Equal(t, 1, d2.OrganizationDraftCurrentStep)
}

func TestAdvance_SchoolCrossStepTeacherRule(t *testing.T) {
	d := &model.OrganizationDraftModel{
		OrganizationDraftEntityKind:  model.DraftKindSchool,
		OrganizationDraftCurrentStep: 2,
	}
	rec := map[string]any{
		"school_name":                         "SD Harapan",
		"school_code":                         "SDH",
		"school_profile_teacher_count":        float64(10),
		"school_profile_teacher_active_count": float64(12),
	}

	errs, err := Advance(d, rec)
	require.NoError(t, err)
	assert.Equal(t, "Guru aktif tidak boleh melebihi total guru", errs["school_profile_teacher_active_count"])
	assert.Equal(t, 2, d.OrganizationDraftCurrentStep)
}

func TestRetreatAndJump(t *testing.T) {
	d := newCompanyDraft()
	rec := validCompanyRecord()

	require.ErrorIs(t, Retreat(d), ErrAlreadyAtFirst)

	_, err := Advance(d, rec)
	require.NoError(t, err)
	require.Equal(t, 1, d.OrganizationDraftCurrentStep)

	require.NoError(t, Retreat(d))
	assert.Equal(t, 0, d.OrganizationDraftCurrentStep)

	// Boleh lompat ke step yang sudah selesai + satu step setelahnya.
	require.NoError(t, Jump(d, 1))
	assert.Equal(t, 1, d.OrganizationDraftCurrentStep)

	// Step 2 belum bisa: step 1 belum pernah lolos.
	require.ErrorIs(t, Jump(d, 2), ErrStepNotReached)
	assert.Equal(t, 1, d.OrganizationDraftCurrentStep)

	require.ErrorIs(t, Jump(d, 99), ErrStepOutOfRange)
	require.ErrorIs(t, Jump(d, -1), ErrStepOutOfRange)
}

func TestAdvance_SubmittedDraftLocked(t *testing.T) {
	d := newCompanyDraft()
	now := time.Now()
	d.OrganizationDraftSubmittedAt = &now

	_, err := Advance(d, validCompanyRecord())
	assert.ErrorIs(t, err, ErrDraftSubmitted)
	assert.ErrorIs(t, Retreat(d), ErrDraftSubmitted)
	assert.ErrorIs(t, Jump(d, 0), ErrDraftSubmitted)
}

func TestAdvance_UnknownKind(t *testing.T) {
	d := &model.OrganizationDraftModel{OrganizationDraftEntityKind: "yayasan"}
	_, err := Advance(d, map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestMergeRecord(t *testing.T) {
	base := map[string]any{"a": "1", "b": "2"}
	out := MergeRecord(base, map[string]any{"b": "x", "c": "3", "a": nil})

	assert.Equal(t, map[string]any{"b": "x", "c": "3"}, out)
	// existing tidak dimutasi
	assert.Equal(t, map[string]any{"a": "1", "b": "2"}, base)
}

func TestEncodeDecodeRecordRoundTrip(t *testing.T) {
	rec := map[string]any{"company_name": "Yayasan", "company_profile_teacher_count": float64(7)}

	raw, err := EncodeRecord(rec)
	require.NoError(t, err)

	back, err := DecodeRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, rec, back)

	empty, err := DecodeRecord(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestValidateAll_ReturnsFirstFailingStep(t *testing.T) {
	rec := validCompanyRecord()
	rec["company_profile_email"] = "salah"

	step, errs, err := ValidateAll(model.DraftKindCompany, rec)
	require.NoError(t, err)
	assert.Equal(t, 1, step)
	assert.Contains(t, errs, "company_profile_email")

	delete(rec, "company_profile_email")
	step, errs, err = ValidateAll(model.DraftKindCompany, rec)
	require.NoError(t, err)
	assert.Equal(t, -1, step)
	assert.Empty(t, errs)
}

func TestPartitionAndSplit(t *testing.T) {
	rec := map[string]any{
		"company_name":          "Yayasan",
		"company_code":          "YYS",
		"company_profile_email": "info@yys.sch.id",
		"custom_field":          "bebas",
	}

	core, ext := PartitionRecord(rec, CoreFieldsFor(model.DraftKindCompany))
	assert.Equal(t, map[string]any{"company_name": "Yayasan", "company_code": "YYS"}, core)
	assert.Len(t, ext, 2)

	known, extra := SplitExtension(ext, ProfileFieldsFor(model.DraftKindCompany))
	assert.Equal(t, map[string]any{"company_profile_email": "info@yys.sch.id"}, known)
	assert.Equal(t, map[string]any{"custom_field": "bebas"}, extra)
}
