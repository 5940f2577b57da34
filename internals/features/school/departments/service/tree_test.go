package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/school/departments/model"
)

func dep(id uuid.UUID, name string, parent *uuid.UUID) model.DepartmentModel {
	return model.DepartmentModel{
		DepartmentID:       id,
		DepartmentName:     name,
		DepartmentParentID: parent,
	}
}

func TestBuildTree_NestedForest(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()
	id3 := uuid.New()
	id4 := uuid.New()

	// 1 ← 2 ← 3, dan 4 berdiri sendiri
	list := []model.DepartmentModel{
		dep(id1, "Kurikulum", nil),
		dep(id2, "Bahasa", &id1),
		dep(id3, "Bahasa Inggris", &id2),
		dep(id4, "Kesiswaan", nil),
	}

	roots := BuildTree(list)
	require.Len(t, roots, 2)
	assert.Equal(t, "Kurikulum", roots[0].Department.DepartmentName)
	assert.Equal(t, "Kesiswaan", roots[1].Department.DepartmentName)

	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "Bahasa", roots[0].Children[0].Department.DepartmentName)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "Bahasa Inggris", roots[0].Children[0].Children[0].Department.DepartmentName)

	assert.Empty(t, roots[1].Children)
	assert.Equal(t, len(list), CountNodes(roots))
}

func TestBuildTree_DanglingParentBecomesRoot(t *testing.T) {
	id1 := uuid.New()
	ghost := uuid.New()

	roots := BuildTree([]model.DepartmentModel{
		dep(id1, "Yatim", &ghost),
	})

	require.Len(t, roots, 1)
	assert.Equal(t, "Yatim", roots[0].Department.DepartmentName)
	assert.Empty(t, roots[0].Children)
}

func TestBuildTree_PreservesInputOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	list := []model.DepartmentModel{
		dep(ids[0], "C", nil),
		dep(ids[1], "A", nil),
		dep(ids[2], "B", nil),
	}

	roots := BuildTree(list)
	require.Len(t, roots, 3)
	assert.Equal(t, "C", roots[0].Department.DepartmentName)
	assert.Equal(t, "A", roots[1].Department.DepartmentName)
	assert.Equal(t, "B", roots[2].Department.DepartmentName)
}

func TestBuildTree_CycleDemotedToRoot(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()
	id3 := uuid.New()

	// 1 → 2 → 3 → 1 (data korup): tiap simpul tetap muncul, tidak ada loop.
	list := []model.DepartmentModel{
		dep(id1, "A", &id3),
		dep(id2, "B", &id1),
		dep(id3, "C", &id2),
	}

	roots := BuildTree(list)
	assert.Equal(t, len(list), CountNodes(roots))
	require.NotEmpty(t, roots)

	// Tidak boleh ada simpul yang jadi leluhur dirinya sendiri.
	var walk func(n *DepartmentNode, seen map[uuid.UUID]bool)
	walk = func(n *DepartmentNode, seen map[uuid.UUID]bool) {
		require.False(t, seen[n.Department.DepartmentID], "siklus terdeteksi di output")
		seen[n.Department.DepartmentID] = true
		for _, c := range n.Children {
			walk(c, seen)
		}
		delete(seen, n.Department.DepartmentID)
	}
	for _, r := range roots {
		walk(r, map[uuid.UUID]bool{})
	}
}

func TestBuildTree_Empty(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
	assert.Equal(t, 0, CountNodes(nil))
}
