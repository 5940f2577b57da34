package controller

import (
	"io"
	"net/http/httptest"
	"strings"
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

func newMockController(t *testing.T) (*WizardController, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewWizardController(gdb, nil), mock
}

func newWizardApp(ctl *WizardController, roles []string, companyID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocRoles, roles)
		c.Locals(helperAuth.LocUserID, uuid.NewString())
		if companyID != "" {
			c.Locals(helperAuth.LocCompanyID, companyID)
		}
		return c.Next()
	})
	app.Post("/organization-wizard", ctl.CreateDraft)
	app.Post("/organization-wizard/:id/advance", ctl.Advance)
	return app
}

func draftRows(id uuid.UUID, kind string, record string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"organization_draft_id",
		"organization_draft_created_by",
		"organization_draft_entity_kind",
		"organization_draft_mode",
		"organization_draft_current_step",
		"organization_draft_record",
	}).AddRow(id.String(), uuid.NewString(), kind, "create", 0, []byte(record))
}

func TestCreateDraft_CompanyCreateNeedsOwner(t *testing.T) {
	ctl, mock := newMockController(t)
	app := newWizardApp(ctl, []string{"admin"}, uuid.NewString())

	req := httptest.NewRequest(fiber.MethodPost, "/organization-wizard",
		strings.NewReader(`{"entity_kind":"company","mode":"create"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Hanya owner")
	assert.Contains(t, string(body), "membuat company")

	// Ditolak sebelum menyentuh DB.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvance_IncompleteStepReturns422WithoutSave(t *testing.T) {
	ctl, mock := newMockController(t)
	app := newWizardApp(ctl, []string{"superadmin"}, "")

	draftID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "organization_drafts"`).
		WillReturnRows(draftRows(draftID, "company", `{"company_code":"YCD"}`))

	req := httptest.NewRequest(fiber.MethodPost, "/organization-wizard/"+draftID.String()+"/advance", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION_ERROR")
	assert.Contains(t, string(body), "company_name")
	assert.Contains(t, string(body), "Wajib diisi")

	// Step gagal = tidak ada UPDATE; cuma SELECT draft yang jalan.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdvance_ValidStepSavesAndMovesOn(t *testing.T) {
	ctl, mock := newMockController(t)
	app := newWizardApp(ctl, []string{"superadmin"}, "")

	draftID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "organization_drafts"`).
		WillReturnRows(draftRows(draftID, "company", `{"company_name":"Yayasan Cendekia","company_code":"YCD"}`))
	mock.ExpectExec(`UPDATE "organization_drafts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(fiber.MethodPost, "/organization-wizard/"+draftID.String()+"/advance", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"current_step":1`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
