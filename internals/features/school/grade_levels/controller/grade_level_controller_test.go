package controller

import (
	"io"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	helperAuth "sekolahku_backend/internals/helpers/auth"
)

func newMockController(t *testing.T) (*GradeLevelController, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewGradeLevelController(gdb, nil), mock
}

func newToggleApp(ctl *GradeLevelController, companyID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocCompanyID, companyID)
		return c.Next()
	})
	app.Patch("/grade-levels/:id/toggle-active", ctl.ToggleActive)
	return app
}

func gradeLevelRows(id, companyID uuid.UUID, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"grade_level_id",
		"grade_level_company_id",
		"grade_level_name",
		"grade_level_code",
		"grade_level_order",
		"grade_level_education_level",
		"grade_level_student_capacity",
		"grade_level_is_active",
	}).AddRow(id.String(), companyID.String(), "Kelas 1", "K1", 1, "sd", 30, active)
}

// Toggle hanya boleh menulis kolom status (+updated_at); dua kali toggle
// mengembalikan nilai semula.
func TestToggleActive_SingleColumnUpdateAndRoundTrip(t *testing.T) {
	ctl, mock := newMockController(t)

	companyID := uuid.New()
	id := uuid.New()
	app := newToggleApp(ctl, companyID.String())

	updateSQL := regexp.QuoteMeta(
		`UPDATE "grade_levels" SET "grade_level_is_active"=$1,"grade_level_updated_at"=$2 WHERE "grade_levels"."grade_level_deleted_at" IS NULL AND "grade_level_id" = $3`,
	)

	// Toggle 1: true → false
	mock.ExpectQuery(`SELECT \* FROM "grade_levels"`).
		WithArgs(companyID.String(), id.String(), 1).
		WillReturnRows(gradeLevelRows(id, companyID, true))
	mock.ExpectExec(updateSQL).
		WithArgs(false, sqlmock.AnyArg(), id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Toggle 2: false → true (balik ke semula)
	mock.ExpectQuery(`SELECT \* FROM "grade_levels"`).
		WithArgs(companyID.String(), id.String(), 1).
		WillReturnRows(gradeLevelRows(id, companyID, false))
	mock.ExpectExec(updateSQL).
		WithArgs(true, sqlmock.AnyArg(), id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(fiber.MethodPatch, "/grade-levels/"+id.String()+"/toggle-active", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"grade_level_is_active":false`)

	req = httptest.NewRequest(fiber.MethodPatch, "/grade-levels/"+id.String()+"/toggle-active", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"grade_level_is_active":true`)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleActive_NotFound(t *testing.T) {
	ctl, mock := newMockController(t)

	companyID := uuid.New()
	app := newToggleApp(ctl, companyID.String())

	mock.ExpectQuery(`SELECT \* FROM "grade_levels"`).
		WillReturnRows(sqlmock.NewRows([]string{"grade_level_id"}))

	req := httptest.NewRequest(fiber.MethodPatch, "/grade-levels/"+uuid.NewString()+"/toggle-active", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
