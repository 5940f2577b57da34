// file: internals/features/organization/orgchart/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	orgchartCtl "sekolahku_backend/internals/features/organization/orgchart/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func OrgChartAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := orgchartCtl.NewOrgChartController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorStaff("melihat bagan organisasi"),
			constants.StaffAndAbove,
		),
	)

	base.Get("/orgchart", ctl.GetChart)
}
