// file: internals/features/school/mock_exams/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	mockExamCtl "sekolahku_backend/internals/features/school/mock_exams/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func MockExamAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := mockExamCtl.NewMockExamController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStaff("mengelola tryout"),
			constants.StaffAndAbove,
		),
	)

	base.Get("/mock-exams", ctl.List)
	base.Get("/mock-exams/:id", ctl.GetByID)
	base.Post("/mock-exams", ctl.Create)
	base.Patch("/mock-exams/:id", ctl.Patch)
	base.Patch("/mock-exams/:id/status", ctl.UpdateStatus)
	base.Delete("/mock-exams/:id", ctl.Delete)
}
