// file: internals/features/organization/schools/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	schoolCtl "sekolahku_backend/internals/features/organization/schools/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func SchoolAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := schoolCtl.NewSchoolController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("mengelola sekolah"),
			constants.AdminAndAbove,
		),
	)

	base.Get("/schools", ctl.List)
	base.Get("/schools/:id", ctl.GetByID)
	base.Post("/schools", ctl.Create)
	base.Patch("/schools/:id", ctl.Patch)
	base.Patch("/schools/:id/toggle-active", ctl.ToggleActive)
	base.Delete("/schools/:id", ctl.Delete)

	base.Get("/schools/:id/profile", ctl.GetProfile)
	base.Put("/schools/:id/profile", ctl.UpsertProfile)
}
