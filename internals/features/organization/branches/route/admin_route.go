// file: internals/features/organization/branches/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	branchCtl "sekolahku_backend/internals/features/organization/branches/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func BranchAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := branchCtl.NewBranchController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("mengelola cabang"),
			constants.AdminAndAbove,
		),
	)

	base.Get("/branches", ctl.List)
	base.Get("/branches/:id", ctl.GetByID)
	base.Post("/branches", ctl.Create)
	base.Patch("/branches/:id", ctl.Patch)
	base.Patch("/branches/:id/toggle-active", ctl.ToggleActive)
	base.Delete("/branches/:id", ctl.Delete)

	base.Get("/branches/:id/profile", ctl.GetProfile)
	base.Put("/branches/:id/profile", ctl.UpsertProfile)
}
