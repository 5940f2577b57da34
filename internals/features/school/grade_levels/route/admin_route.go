// file: internals/features/school/grade_levels/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	gradeLevelCtl "sekolahku_backend/internals/features/school/grade_levels/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func GradeLevelAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := gradeLevelCtl.NewGradeLevelController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("mengelola tingkat"),
			constants.AdminAndAbove,
		),
	)

	base.Get("/grade-levels", ctl.List)
	base.Get("/grade-levels/:id", ctl.GetByID)
	base.Post("/grade-levels", ctl.Create)
	base.Patch("/grade-levels/:id", ctl.Patch)
	base.Patch("/grade-levels/:id/toggle-active", ctl.ToggleActive)
	base.Delete("/grade-levels/:id", ctl.Delete)
}
