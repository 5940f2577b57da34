package helper

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gdb, mock
}

func TestReconcileJunction_ReplaceAll(t *testing.T) {
	gdb, mock := newMockDB(t)

	owner := uuid.New()
	s1 := uuid.New()
	s2 := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM grade_level_schools WHERE grade_level_school_grade_level_id = $1",
	)).WithArgs(owner.String()).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO "grade_level_schools" ("grade_level_school_grade_level_id","grade_level_school_school_id") VALUES ($1,$2),($3,$4)`,
	)).WithArgs(owner.String(), s1.String(), owner.String(), s2.String()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := gdb.Transaction(func(tx *gorm.DB) error {
		return ReconcileJunction(tx,
			"grade_level_schools",
			"grade_level_school_grade_level_id",
			"grade_level_school_school_id",
			owner, []uuid.UUID{s1, s2})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileJunction_EmptyDesiredDeletesOnly(t *testing.T) {
	gdb, mock := newMockDB(t)
	owner := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM department_schools WHERE department_school_department_id = $1",
	)).WithArgs(owner.String()).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := gdb.Transaction(func(tx *gorm.DB) error {
		return ReconcileJunction(tx,
			"department_schools",
			"department_school_department_id",
			"department_school_school_id",
			owner, nil)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileJunction_SkipsDuplicatesAndNil(t *testing.T) {
	gdb, mock := newMockDB(t)

	owner := uuid.New()
	s1 := uuid.New()

	// s1 dobel + uuid.Nil: hanya satu baris yang di-insert.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM mock_exam_sections WHERE mock_exam_section_mock_exam_id = $1",
	)).WithArgs(owner.String()).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO "mock_exam_sections" ("mock_exam_section_class_section_id","mock_exam_section_mock_exam_id") VALUES ($1,$2)`,
	)).WithArgs(s1.String(), owner.String()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := gdb.Transaction(func(tx *gorm.DB) error {
		return ReconcileJunction(tx,
			"mock_exam_sections",
			"mock_exam_section_mock_exam_id",
			"mock_exam_section_class_section_id",
			owner, []uuid.UUID{s1, s1, uuid.Nil})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileJunction_Idempotent(t *testing.T) {
	gdb, mock := newMockDB(t)

	owner := uuid.New()
	s1 := uuid.New()

	// Dua kali reconcile dengan desired yang sama = SQL yang sama dua kali.
	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(
			"DELETE FROM department_branches WHERE department_branch_department_id = $1",
		)).WithArgs(owner.String()).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(
			`INSERT INTO "department_branches" ("department_branch_branch_id","department_branch_department_id") VALUES ($1,$2)`,
		)).WithArgs(s1.String(), owner.String()).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	for i := 0; i < 2; i++ {
		err := gdb.Transaction(func(tx *gorm.DB) error {
			return ReconcileJunction(tx,
				"department_branches",
				"department_branch_department_id",
				"department_branch_branch_id",
				owner, []uuid.UUID{s1})
		})
		require.NoError(t, err)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
