// file: internals/features/school/class_sections/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	classSectionCtl "sekolahku_backend/internals/features/school/class_sections/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func ClassSectionAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := classSectionCtl.NewClassSectionController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStaff("mengelola rombel"),
			constants.StaffAndAbove,
		),
	)

	base.Get("/class-sections", ctl.List)
	base.Get("/class-sections/:id", ctl.GetByID)
	base.Post("/class-sections", ctl.Create)
	base.Patch("/class-sections/:id", ctl.Patch)
	base.Patch("/class-sections/:id/toggle-status", ctl.ToggleStatus)
	base.Patch("/class-sections/:id/archive", ctl.Archive)
	base.Delete("/class-sections/:id", ctl.Delete)
}
