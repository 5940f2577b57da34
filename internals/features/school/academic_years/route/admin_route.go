// file: internals/features/school/academic_years/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	academicYearCtl "sekolahku_backend/internals/features/school/academic_years/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func AcademicYearAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := academicYearCtl.NewAcademicYearController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("mengelola tahun ajaran"),
			constants.AdminAndAbove,
		),
	)

	base.Get("/academic-years", ctl.List)
	base.Get("/academic-years/:id", ctl.GetByID)
	base.Post("/academic-years", ctl.Create)
	base.Patch("/academic-years/:id", ctl.Patch)
	base.Patch("/academic-years/:id/toggle-active", ctl.ToggleActive)
	base.Patch("/academic-years/:id/set-active", ctl.SetActive)
	base.Delete("/academic-years/:id", ctl.Delete)
}
