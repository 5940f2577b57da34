// file: internals/features/organization/wizard/controller/wizard_submit_controller.go
package controller

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	branchModel "sekolahku_backend/internals/features/organization/branches/model"
	companyModel "sekolahku_backend/internals/features/organization/companies/model"
	schoolModel "sekolahku_backend/internals/features/organization/schools/model"
	model "sekolahku_backend/internals/features/organization/wizard/model"
	helper "sekolahku_backend/internals/helpers"
)

// decodeInto menuangkan map flat ke struct lewat tag json.
// Field yang tidak ada di map dibiarkan apa adanya (penting utk mode edit).
func decodeInto(m map[string]any, dst any) error {
	if len(m) == 0 {
		return nil
	}
	b, err := sonic.Marshal(m)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(b, dst)
}

func encodeExtra(extra map[string]any) (datatypes.JSON, error) {
	if len(extra) == 0 {
		return nil, nil
	}
	b, err := sonic.Marshal(extra)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

/* ============================================
   COMPANY
============================================ */

func (ctl *WizardController) submitCompany(
	c *fiber.Ctx, tx *gorm.DB, d *model.OrganizationDraftModel,
	core, known, extra map[string]any,
) (uuid.UUID, any, error) {
	var ent companyModel.CompanyModel

	if d.OrganizationDraftMode == model.DraftModeEdit {
		if err := tx.First(&ent, "company_id = ?", *d.OrganizationDraftTargetID).Error; err != nil {
			return uuid.Nil, nil, fiber.NewError(fiber.StatusNotFound, "Company tidak ditemukan")
		}
	}
	if err := decodeInto(core, &ent); err != nil {
		return uuid.Nil, nil, err
	}

	if d.OrganizationDraftMode == model.DraftModeCreate {
		// Auto slug bila form tidak mengisinya
		base := ent.CompanySlug
		if base == "" {
			base = ent.CompanyName
		}
		slug, err := helper.EnsureUniqueSlugCI(c.Context(), tx, "companies", "company_slug",
			helper.Slugify(base, 100), nil, 100)
		if err != nil {
			return uuid.Nil, nil, err
		}
		ent.CompanySlug = slug

		var cnt int64
		if err := tx.Model(&companyModel.CompanyModel{}).
			Where("company_code = ?", ent.CompanyCode).Count(&cnt).Error; err != nil {
			return uuid.Nil, nil, err
		}
		if cnt > 0 {
			return uuid.Nil, nil, fiber.NewError(fiber.StatusConflict, "Kode company sudah dipakai")
		}

		if err := tx.Create(&ent).Error; err != nil {
			return uuid.Nil, nil, err
		}
	} else {
		if err := tx.Save(&ent).Error; err != nil {
			return uuid.Nil, nil, err
		}
	}

	var prof companyModel.CompanyProfileModel
	if d.OrganizationDraftMode == model.DraftModeEdit {
		_ = tx.First(&prof, "company_profile_company_id = ?", ent.CompanyID).Error
	}
	if err := decodeInto(known, &prof); err != nil {
		return uuid.Nil, nil, err
	}
	prof.CompanyProfileCompanyID = ent.CompanyID
	if ej, err := encodeExtra(extra); err != nil {
		return uuid.Nil, nil, err
	} else if ej != nil {
		prof.CompanyProfileExtra = ej
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_profile_company_id"}},
		UpdateAll: true,
	}).Create(&prof).Error; err != nil {
		return uuid.Nil, nil, err
	}

	return ent.CompanyID, ent, nil
}

/* ============================================
   SCHOOL
============================================ */

func (ctl *WizardController) submitSchool(
	c *fiber.Ctx, tx *gorm.DB, d *model.OrganizationDraftModel,
	core, known, extra map[string]any,
) (uuid.UUID, any, error) {
	if d.OrganizationDraftCompanyID == nil {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusBadRequest, "Draft school membutuhkan company")
	}
	companyID := *d.OrganizationDraftCompanyID

	var ent schoolModel.SchoolModel
	if d.OrganizationDraftMode == model.DraftModeEdit {
		if err := tx.First(&ent, "school_id = ? AND school_company_id = ?",
			*d.OrganizationDraftTargetID, companyID).Error; err != nil {
			return uuid.Nil, nil, fiber.NewError(fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
	}
	if err := decodeInto(core, &ent); err != nil {
		return uuid.Nil, nil, err
	}
	ent.SchoolCompanyID = companyID

	scope := func(q *gorm.DB) *gorm.DB { return q.Where("school_company_id = ?", companyID) }

	if d.OrganizationDraftMode == model.DraftModeCreate {
		base := ent.SchoolSlug
		if base == "" {
			base = ent.SchoolName
		}
		slug, err := helper.EnsureUniqueSlugCI(c.Context(), tx, "schools", "school_slug",
			helper.Slugify(base, 100), scope, 100)
		if err != nil {
			return uuid.Nil, nil, err
		}
		ent.SchoolSlug = slug

		// Kode unik per company
		var cnt int64
		if err := tx.Model(&schoolModel.SchoolModel{}).
			Where("school_company_id = ? AND school_code = ?", companyID, ent.SchoolCode).
			Count(&cnt).Error; err != nil {
			return uuid.Nil, nil, err
		}
		if cnt > 0 {
			return uuid.Nil, nil, fiber.NewError(fiber.StatusConflict, "Kode sekolah sudah dipakai")
		}

		if err := tx.Create(&ent).Error; err != nil {
			return uuid.Nil, nil, err
		}
	} else {
		if err := tx.Save(&ent).Error; err != nil {
			return uuid.Nil, nil, err
		}
	}

	var prof schoolModel.SchoolProfileModel
	if d.OrganizationDraftMode == model.DraftModeEdit {
		_ = tx.First(&prof, "school_profile_school_id = ?", ent.SchoolID).Error
	}
	if err := decodeInto(known, &prof); err != nil {
		return uuid.Nil, nil, err
	}
	prof.SchoolProfileSchoolID = ent.SchoolID
	if ej, err := encodeExtra(extra); err != nil {
		return uuid.Nil, nil, err
	} else if ej != nil {
		prof.SchoolProfileExtra = ej
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "school_profile_school_id"}},
		UpdateAll: true,
	}).Create(&prof).Error; err != nil {
		return uuid.Nil, nil, err
	}

	return ent.SchoolID, ent, nil
}

/* ============================================
   BRANCH
============================================ */

func (ctl *WizardController) submitBranch(
	c *fiber.Ctx, tx *gorm.DB, d *model.OrganizationDraftModel,
	core, known, extra map[string]any,
) (uuid.UUID, any, error) {
	if d.OrganizationDraftCompanyID == nil {
		return uuid.Nil, nil, fiber.NewError(fiber.StatusBadRequest, "Draft branch membutuhkan company")
	}
	companyID := *d.OrganizationDraftCompanyID

	var ent branchModel.BranchModel
	if d.OrganizationDraftMode == model.DraftModeEdit {
		if err := tx.First(&ent, "branch_id = ? AND branch_company_id = ?",
			*d.OrganizationDraftTargetID, companyID).Error; err != nil {
			return uuid.Nil, nil, fiber.NewError(fiber.StatusNotFound, "Cabang tidak ditemukan")
		}
	}
	if err := decodeInto(core, &ent); err != nil {
		return uuid.Nil, nil, err
	}
	ent.BranchCompanyID = companyID

	// Parent school wajib valid dan satu tenant
	var parent schoolModel.SchoolModel
	if err := tx.First(&parent, "school_id = ? AND school_company_id = ?",
		ent.BranchSchoolID, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Sekolah induk tidak ditemukan")
		}
		return uuid.Nil, nil, err
	}

	if d.OrganizationDraftMode == model.DraftModeCreate {
		// Kode unik per sekolah induk
		var cnt int64
		if err := tx.Model(&branchModel.BranchModel{}).
			Where("branch_school_id = ? AND branch_code = ?", ent.BranchSchoolID, ent.BranchCode).
			Count(&cnt).Error; err != nil {
			return uuid.Nil, nil, err
		}
		if cnt > 0 {
			return uuid.Nil, nil, fiber.NewError(fiber.StatusConflict, "Kode cabang sudah dipakai")
		}

		if err := tx.Create(&ent).Error; err != nil {
			return uuid.Nil, nil, err
		}
	} else {
		if err := tx.Save(&ent).Error; err != nil {
			return uuid.Nil, nil, err
		}
	}

	var prof branchModel.BranchProfileModel
	if d.OrganizationDraftMode == model.DraftModeEdit {
		_ = tx.First(&prof, "branch_profile_branch_id = ?", ent.BranchID).Error
	}
	if err := decodeInto(known, &prof); err != nil {
		return uuid.Nil, nil, err
	}
	prof.BranchProfileBranchID = ent.BranchID
	if ej, err := encodeExtra(extra); err != nil {
		return uuid.Nil, nil, err
	} else if ej != nil {
		prof.BranchProfileExtra = ej
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "branch_profile_branch_id"}},
		UpdateAll: true,
	}).Create(&prof).Error; err != nil {
		return uuid.Nil, nil, err
	}

	return ent.BranchID, ent, nil
}
