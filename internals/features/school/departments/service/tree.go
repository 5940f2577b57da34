// file: internals/features/school/departments/service/tree.go
package service

import (
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/departments/model"
)

// DepartmentNode: satu simpul hutan departemen.
type DepartmentNode struct {
	Department model.DepartmentModel `json:"department"`
	Children   []*DepartmentNode     `json:"children"`
}

// BuildTree merekonstruksi hutan dari daftar flat.
//
// Dua pass: index id→node dulu, lalu tempelkan tiap node ke parent-nya.
// Kebijakan:
//   - urutan root dan urutan anak mengikuti urutan input (tidak di-sort ulang);
//   - parent id yang tidak ada di daftar (dangling) men-demote node jadi root,
//     bukan error;
//   - rantai parent yang berputar kembali ke node itu sendiri (siklus) juga
//     men-demote node jadi root, supaya pohon tidak berulang tanpa akhir.
//
// Jumlah simpul output selalu sama dengan jumlah input.
func BuildTree(list []model.DepartmentModel) []*DepartmentNode {
	index := make(map[uuid.UUID]*DepartmentNode, len(list))
	ordered := make([]*DepartmentNode, 0, len(list))
	for i := range list {
		n := &DepartmentNode{Department: list[i], Children: []*DepartmentNode{}}
		index[list[i].DepartmentID] = n
		ordered = append(ordered, n)
	}

	roots := make([]*DepartmentNode, 0, len(ordered))
	for _, n := range ordered {
		pid := n.Department.DepartmentParentID
		if pid == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := index[*pid]
		if !ok || hasAncestorCycle(index, n.Department.DepartmentID, *pid) {
			// Dangling parent atau siklus: jadi root.
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}
	return roots
}

// hasAncestorCycle menelusuri rantai parent dari startParent ke atas;
// true kalau rantai kembali ke nodeID (atau berputar di tempat lain).
func hasAncestorCycle(index map[uuid.UUID]*DepartmentNode, nodeID, startParent uuid.UUID) bool {
	visited := map[uuid.UUID]struct{}{nodeID: {}}
	cur := startParent
	for {
		if _, seen := visited[cur]; seen {
			return true
		}
		visited[cur] = struct{}{}

		n, ok := index[cur]
		if !ok || n.Department.DepartmentParentID == nil {
			return false
		}
		cur = *n.Department.DepartmentParentID
	}
}

// CountNodes menghitung total simpul satu hutan (untuk sanity check).
func CountNodes(roots []*DepartmentNode) int {
	total := 0
	for _, r := range roots {
		total += 1 + CountNodes(r.Children)
	}
	return total
}
