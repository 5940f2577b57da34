// file: internals/features/school/departments/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	departmentCtl "sekolahku_backend/internals/features/school/departments/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func DepartmentAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := departmentCtl.NewDepartmentController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("mengelola departemen"),
			constants.AdminAndAbove,
		),
	)

	// /tree didaftarkan sebelum /:id supaya tidak ketangkap param
	base.Get("/departments/tree", ctl.Tree)
	base.Get("/departments", ctl.List)
	base.Get("/departments/:id", ctl.GetByID)
	base.Post("/departments", ctl.Create)
	base.Patch("/departments/:id", ctl.Patch)
	base.Patch("/departments/:id/toggle-active", ctl.ToggleActive)
	base.Delete("/departments/:id", ctl.Delete)
}
