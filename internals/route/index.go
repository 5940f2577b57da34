// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	middlewares "sekolahku_backend/internals/middlewares"
	"sekolahku_backend/internals/middlewares/auth"

	branchRoute "sekolahku_backend/internals/features/organization/branches/route"
	companyRoute "sekolahku_backend/internals/features/organization/companies/route"
	orgchartRoute "sekolahku_backend/internals/features/organization/orgchart/route"
	schoolRoute "sekolahku_backend/internals/features/organization/schools/route"
	wizardRoute "sekolahku_backend/internals/features/organization/wizard/route"

	academicYearRoute "sekolahku_backend/internals/features/school/academic_years/route"
	classSectionRoute "sekolahku_backend/internals/features/school/class_sections/route"
	departmentRoute "sekolahku_backend/internals/features/school/departments/route"
	gradeLevelRoute "sekolahku_backend/internals/features/school/grade_levels/route"
	mockExamRoute "sekolahku_backend/internals/features/school/mock_exams/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== ADMIN (per tenant) =====================
	// Semua endpoint admin wajib JWT; role check per-feature ada di masing-masing route.
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		middlewares.DBMiddleware(db),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Organization routes...")
	companyRoute.CompanyAdminRoutes(admin, db)
	schoolRoute.SchoolAdminRoutes(admin, db)
	branchRoute.BranchAdminRoutes(admin, db)
	wizardRoute.WizardAdminRoutes(admin, db)
	orgchartRoute.OrgChartAdminRoutes(admin, db)

	log.Println("[INFO] Mounting School routes...")
	gradeLevelRoute.GradeLevelAdminRoutes(admin, db)
	academicYearRoute.AcademicYearAdminRoutes(admin, db)
	classSectionRoute.ClassSectionAdminRoutes(admin, db)
	departmentRoute.DepartmentAdminRoutes(admin, db)
	mockExamRoute.MockExamAdminRoutes(admin, db)
}
