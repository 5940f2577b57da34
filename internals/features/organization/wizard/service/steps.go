// file: internals/features/organization/wizard/service/steps.go
package service

import (
	"fmt"
	"strings"
	"time"

	"sekolahku_backend/internals/features/organization/wizard/model"
)

// WizardStep: satu step + validator-nya.
// Validator menerima SELURUH record flat (bukan cuma field step ini)
// karena ada aturan lintas step (mis. guru aktif <= total guru).
type WizardStep struct {
	StepID         int
	Title          string
	RequiredFields []string
	Validate       func(record map[string]any) map[string]string
}

// StepsFor mengembalikan definisi step per jenis entity.
func StepsFor(kind string) []WizardStep {
	switch kind {
	case model.DraftKindCompany:
		return companySteps
	case model.DraftKindSchool:
		return schoolSteps
	case model.DraftKindBranch:
		return branchSteps
	default:
		return nil
	}
}

// CoreFieldsFor: allow-list kolom first-class tabel utama per jenis entity.
// Semua field lain dianggap milik tabel extension (profil).
func CoreFieldsFor(kind string) []string {
	switch kind {
	case model.DraftKindCompany:
		return []string{"company_name", "company_code", "company_slug", "company_bio", "company_is_active"}
	case model.DraftKindSchool:
		return []string{"school_name", "school_code", "school_slug", "school_bio", "school_is_active"}
	case model.DraftKindBranch:
		return []string{"branch_school_id", "branch_name", "branch_code", "branch_is_active"}
	default:
		return nil
	}
}

// ProfileFieldsFor: kolom first-class tabel profil per jenis entity.
// Field extension di luar daftar ini masuk ke kolom *_extra (JSONB).
func ProfileFieldsFor(kind string) []string {
	switch kind {
	case model.DraftKindCompany:
		return []string{
			"company_profile_email", "company_profile_phone", "company_profile_website",
			"company_profile_address", "company_profile_city", "company_profile_province",
			"company_profile_postal_code", "company_profile_tax_number", "company_profile_established_at",
		}
	case model.DraftKindSchool:
		return []string{
			"school_profile_email", "school_profile_phone", "school_profile_address", "school_profile_city",
			"school_profile_headmaster_name", "school_profile_headmaster_phone",
			"school_profile_teacher_count", "school_profile_teacher_active_count",
			"school_profile_student_count", "school_profile_student_capacity",
			"school_profile_established_at",
		}
	case model.DraftKindBranch:
		return []string{
			"branch_profile_phone", "branch_profile_address", "branch_profile_city",
			"branch_profile_student_capacity",
		}
	default:
		return nil
	}
}

/* ============================================
   Definisi step per entity
============================================ */

var companySteps = []WizardStep{
	{
		StepID:         0,
		Title:          "Identitas",
		RequiredFields: []string{"company_name", "company_code"},
		Validate: func(rec map[string]any) map[string]string {
			errs := map[string]string{}
			requireFields(rec, []string{"company_name", "company_code"}, errs)
			if n := recString(rec, "company_name"); n != "" && len(n) < 3 {
				errs["company_name"] = "Nama minimal 3 karakter"
			}
			return errs
		},
	},
	{
		StepID:         1,
		Title:          "Kontak & Alamat",
		RequiredFields: nil,
		Validate: func(rec map[string]any) map[string]string {
			errs := map[string]string{}
			checkEmailFormat(rec, "company_profile_email", errs)
			return errs
		},
	},
	{
		StepID:         2,
		Title:          "Legal & Review",
		RequiredFields: nil,
		Validate: func(rec map[string]any) map[string]string {
			errs := map[string]string{}
			checkDateNotFuture(rec, "company_profile_established_at", errs)
			return errs
		},
	},
}

var schoolSteps = []WizardStep{
	{
		StepID:         0,
		Title:          "Identitas",
		RequiredFields: []string{"school_name", "school_code"},
		Validate: func(rec map[string]any) map[string]string {
			errs := map[string]string{}
			requireFields(rec, []string{"school_name", "school_code"}, errs)
			if n := recString(rec, "school_name"); n != "" && len(n) < 3 {
				errs["school_name"] = "Nama minimal 3 karakter"
			}
			return errs
		},
	},
	{
		StepID:         1,
		Title:          "Kontak & Kepala Sekolah",
		RequiredFields: nil,
		Validate: func(rec map[string]any) map[string]string {
			errs := map[string]string{}
			checkEmailFormat(rec, "school_profile_email", errs)
			return errs
		},
	},
	{
		StepID:         2,
		Title:          "Kapasitas & Review",
		RequiredFields: nil,
		Validate: func(rec map[string]any) map[string]string {
			errs := map[string]string{}
			total, hasTotal := recInt(rec, "school_profile_teacher_count")
			active, hasActive := recInt(rec, "school_profile_teacher_active_count")
			if hasTotal && total < 0 {
				errs["school_profile_teacher_count"] = "Tidak boleh negatif"
			}
			if hasActive && active < 0 {
				errs["school_profile_teacher_active_count"] = "Tidak boleh negatif"
			}
			// Aturan lintas step: field total di step ini, field active bisa diisi di step lain
			if hasTotal && hasActive && active > total {
				errs["school_profile_teacher_active_count"] = "Guru aktif tidak boleh melebihi total guru"
			}
			if cap, ok := recInt(rec, "school_profile_student_capacity"); ok && cap < 0 {
				errs["school_profile_student_capacity"] = "Tidak boleh negatif"
			}
			return errs
		},
	},
}

var branchSteps = []WizardStep{
	{
		StepID:         0,
		Title:          "Identitas",
		RequiredFields: []string{"branch_school_id", "branch_name", "branch_code"},
		Validate: func(rec map[string]any) map[string]string {
			errs := map[string]string{}
			requireFields(rec, []string{"branch_school_id", "branch_name", "branch_code"}, errs)
			return errs
		},
	},
	{
		StepID:         1,
		Title:          "Alamat & Kapasitas",
		RequiredFields: nil,
		Validate: func(rec map[string]any) map[string]string {
			errs := map[string]string{}
			if cap, ok := recInt(rec, "branch_profile_student_capacity"); ok && cap < 0 {
				errs["branch_profile_student_capacity"] = "Tidak boleh negatif"
			}
			return errs
		},
	},
}

/* ============================================
   Validator kecil (shared)
============================================ */

func requireFields(rec map[string]any, fields []string, errs map[string]string) {
	for _, f := range fields {
		if recString(rec, f) == "" {
			errs[f] = "Wajib diisi"
		}
	}
}

func checkEmailFormat(rec map[string]any, field string, errs map[string]string) {
	v := recString(rec, field)
	if v == "" {
		return
	}
	at := strings.Index(v, "@")
	if at <= 0 || at == len(v)-1 || !strings.Contains(v[at:], ".") {
		errs[field] = "Format email tidak valid"
	}
}

func checkDateNotFuture(rec map[string]any, field string, errs map[string]string) {
	v := recString(rec, field)
	if v == "" {
		return
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, v); err2 == nil {
			t = t2
		} else {
			errs[field] = "Format tanggal tidak valid"
			return
		}
	}
	if t.After(time.Now()) {
		errs[field] = "Tanggal tidak boleh di masa depan"
	}
}

/* ============================================
   Pembaca nilai record (JSON → tipe Go)
============================================ */

func recString(rec map[string]any, key string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	case bool:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}

func recInt(rec map[string]any, key string) (int, bool) {
	v, ok := rec[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case int64:
		return int(t), true
	default:
		return 0, false
	}
}
