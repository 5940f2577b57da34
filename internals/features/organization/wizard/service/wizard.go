// file: internals/features/organization/wizard/service/wizard.go
package service

import (
	"errors"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/features/organization/wizard/model"
)

var (
	ErrDraftSubmitted  = errors.New("draft sudah disubmit")
	ErrUnknownKind     = errors.New("jenis entity tidak dikenal")
	ErrStepOutOfRange  = errors.New("step di luar jangkauan")
	ErrStepNotReached  = errors.New("step belum bisa diakses")
	ErrAlreadyAtFirst  = errors.New("sudah di step pertama")
	ErrIncompleteSteps = errors.New("masih ada step yang belum lengkap")
)

// StepErrors: hasil validasi satu step. Kosong = lolos.
type StepErrors map[string]string

/* ============================================
   Record helpers
============================================ */

// DecodeRecord membaca kolom JSONB record draft jadi map flat.
func DecodeRecord(raw datatypes.JSON) (map[string]any, error) {
	rec := map[string]any{}
	if len(raw) == 0 {
		return rec, nil
	}
	if err := sonic.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// EncodeRecord menulis balik map flat ke JSONB.
func EncodeRecord(rec map[string]any) (datatypes.JSON, error) {
	b, err := sonic.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// MergeRecord menimpa field existing dengan patch.
// Nilai nil pada patch menghapus field (biar klien bisa clear input).
func MergeRecord(existing, patch map[string]any) map[string]any {
	out := make(map[string]any, len(existing)+len(patch))
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

/* ============================================
   State machine (pure, tanpa DB)
============================================ */

// Advance memvalidasi step saat ini lalu maju 1 step.
// Kalau validasi gagal: draft TIDAK berubah, errs terisi.
func Advance(d *model.OrganizationDraftModel, rec map[string]any) (StepErrors, error) {
	if d.IsSubmitted() {
		return nil, ErrDraftSubmitted
	}
	steps := StepsFor(d.OrganizationDraftEntityKind)
	if steps == nil {
		return nil, ErrUnknownKind
	}
	cur := d.OrganizationDraftCurrentStep
	if cur < 0 || cur >= len(steps) {
		return nil, ErrStepOutOfRange
	}
	if errs := steps[cur].Validate(rec); len(errs) > 0 {
		return errs, nil
	}
	d.MarkStepCompleted(cur)
	if cur < len(steps)-1 {
		d.OrganizationDraftCurrentStep = cur + 1
	}
	return nil, nil
}

// Retreat mundur 1 step tanpa validasi. Data step saat ini tetap tersimpan.
func Retreat(d *model.OrganizationDraftModel) error {
	if d.IsSubmitted() {
		return ErrDraftSubmitted
	}
	if d.OrganizationDraftCurrentStep <= 0 {
		return ErrAlreadyAtFirst
	}
	d.OrganizationDraftCurrentStep--
	return nil
}

// Jump lompat langsung ke step target. Hanya boleh ke step yang sudah
// pernah diselesaikan atau step tepat setelah step terakhir yang selesai.
func Jump(d *model.OrganizationDraftModel, target int) error {
	if d.IsSubmitted() {
		return ErrDraftSubmitted
	}
	steps := StepsFor(d.OrganizationDraftEntityKind)
	if steps == nil {
		return ErrUnknownKind
	}
	if target < 0 || target >= len(steps) {
		return ErrStepOutOfRange
	}
	maxReachable := 0
	for i := range steps {
		if d.StepCompleted(i) {
			maxReachable = i + 1
		}
	}
	if maxReachable > len(steps)-1 {
		maxReachable = len(steps) - 1
	}
	if target > maxReachable {
		return ErrStepNotReached
	}
	d.OrganizationDraftCurrentStep = target
	return nil
}

// ValidateAll menjalankan validator semua step berurutan.
// Return index step pertama yang gagal + error field-nya; (-1, nil) kalau semua lolos.
func ValidateAll(kind string, rec map[string]any) (int, StepErrors, error) {
	steps := StepsFor(kind)
	if steps == nil {
		return -1, nil, ErrUnknownKind
	}
	for i, st := range steps {
		if errs := st.Validate(rec); len(errs) > 0 {
			return i, errs, nil
		}
	}
	return -1, nil, nil
}

// PartitionRecord memecah record flat jadi dua: field tabel utama (core)
// dan sisanya untuk tabel extension. Pemanggil yang memetakan extension
// ke kolom profil first-class vs JSONB extra.
func PartitionRecord(rec map[string]any, coreFields []string) (core, ext map[string]any) {
	coreSet := make(map[string]struct{}, len(coreFields))
	for _, f := range coreFields {
		coreSet[f] = struct{}{}
	}
	core = map[string]any{}
	ext = map[string]any{}
	for k, v := range rec {
		if _, ok := coreSet[k]; ok {
			core[k] = v
		} else {
			ext[k] = v
		}
	}
	return core, ext
}

// SplitExtension memecah field extension jadi kolom profil yang dikenal
// vs sisa bebas yang masuk JSONB extra.
func SplitExtension(ext map[string]any, profileFields []string) (known, extra map[string]any) {
	pset := make(map[string]struct{}, len(profileFields))
	for _, f := range profileFields {
		pset[f] = struct{}{}
	}
	known = map[string]any{}
	extra = map[string]any{}
	for k, v := range ext {
		if _, ok := pset[k]; ok {
			known[k] = v
		} else {
			extra[k] = v
		}
	}
	return known, extra
}
