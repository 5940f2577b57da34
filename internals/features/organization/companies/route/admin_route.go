// file: internals/features/organization/companies/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	companyCtl "sekolahku_backend/internals/features/organization/companies/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func CompanyAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := companyCtl.NewCompanyController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorOwner("mengelola company"),
			constants.OwnerAndAbove,
		),
	)

	base.Get("/companies", ctl.List)
	base.Get("/companies/:id", ctl.GetByID)
	base.Post("/companies", ctl.Create)
	base.Patch("/companies/:id", ctl.Patch)
	base.Patch("/companies/:id/toggle-active", ctl.ToggleActive)
	base.Delete("/companies/:id", ctl.Delete)

	base.Get("/companies/:id/profile", ctl.GetProfile)
	base.Put("/companies/:id/profile", ctl.UpsertProfile)
}
