package helper

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReconcileJunction menyamakan isi tabel junction (owner, related) dengan
// desired: hapus SEMUA baris milik owner, lalu insert ulang satu baris per id.
// Replace-all, bukan diff inkremental — baris junction tidak punya state sendiri.
// WAJIB dipanggil di dalam transaksi bersama penulisan entity induknya.
// desired kosong = hapus saja. Duplikat di desired di-skip, urutan dipertahankan.
func ReconcileJunction(
	tx *gorm.DB,
	table string,
	ownerCol string,
	relatedCol string,
	ownerID uuid.UUID,
	desired []uuid.UUID,
) error {
	if err := tx.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, ownerCol), ownerID,
	).Error; err != nil {
		return err
	}
	if len(desired) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(desired))
	rows := make([]map[string]any, 0, len(desired))
	for _, id := range desired {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, map[string]any{ownerCol: ownerID, relatedCol: id})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Table(table).Create(rows).Error
}
