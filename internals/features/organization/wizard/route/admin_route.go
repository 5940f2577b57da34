// file: internals/features/organization/wizard/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	wizardCtl "sekolahku_backend/internals/features/organization/wizard/controller"
	"sekolahku_backend/internals/middlewares"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func WizardAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := wizardCtl.NewWizardController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("mengelola wizard organisasi"),
			constants.AdminAndAbove,
		),
	)

	base.Post("/organization-wizard", ctl.CreateDraft)
	base.Get("/organization-wizard/:id", ctl.GetDraft)
	base.Patch("/organization-wizard/:id/record", ctl.PatchRecord)
	base.Post("/organization-wizard/:id/advance", ctl.Advance)
	base.Post("/organization-wizard/:id/retreat", ctl.Retreat)
	base.Post("/organization-wizard/:id/jump", ctl.Jump)
	base.Delete("/organization-wizard/:id", ctl.DeleteDraft)

	// Submit dibatasi rate limiter sendiri (tulis multi-tabel)
	base.Post("/organization-wizard/:id/submit",
		middlewares.WizardSubmitRateLimiter(), ctl.Submit)
}
