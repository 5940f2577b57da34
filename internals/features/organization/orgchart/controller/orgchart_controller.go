// file: internals/features/organization/orgchart/controller/orgchart_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	branchModel "sekolahku_backend/internals/features/organization/branches/model"
	companyModel "sekolahku_backend/internals/features/organization/companies/model"
	dto "sekolahku_backend/internals/features/organization/orgchart/dto"
	schoolModel "sekolahku_backend/internals/features/organization/schools/model"
	departmentModel "sekolahku_backend/internals/features/school/departments/model"
	departmentService "sekolahku_backend/internals/features/school/departments/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type OrgChartController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewOrgChartController(db *gorm.DB, v *validator.Validate) *OrgChartController {
	if v == nil {
		v = validator.New()
	}
	return &OrgChartController{DB: db, Validator: v}
}

/* ============================================
   GET BAGAN ORGANISASI
   GET /admin/orgchart
   Seluruh bagan dirakit dari read flat ber-scope tenant:
   company → schools → branches, departemen ditempel per
   school/branch lewat junction, lalu disusun jadi pohon.
============================================ */

func (ctl *OrgChartController) GetChart(c *fiber.Ctx) error {
	companyID, err := helperAuth.GetCompanyID(c)
	if err != nil {
		return err
	}

	var company companyModel.CompanyModel
	if err := ctl.DB.First(&company, "company_id = ?", companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Company tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var schools []schoolModel.SchoolModel
	sq := ctl.DB.Where("school_company_id = ?", companyID).
		Order("school_created_at ASC")
	if ids, restricted := helperAuth.GetScopeSchoolIDs(c); restricted {
		sq = sq.Where("school_id IN ?", ids)
	}
	if err := sq.Find(&schools).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sekolah")
	}

	var branches []branchModel.BranchModel
	if err := ctl.DB.Where("branch_company_id = ?", companyID).
		Order("branch_created_at ASC").
		Find(&branches).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil cabang")
	}

	var departments []departmentModel.DepartmentModel
	if err := ctl.DB.Where("department_company_id = ?", companyID).
		Order("department_created_at ASC").
		Find(&departments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil departemen")
	}

	var depSchools []departmentModel.DepartmentSchoolModel
	if err := ctl.DB.Find(&depSchools,
		"department_school_department_id IN (SELECT department_id FROM departments WHERE department_company_id = ? AND department_deleted_at IS NULL)",
		companyID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil relasi departemen")
	}
	var depBranches []departmentModel.DepartmentBranchModel
	if err := ctl.DB.Find(&depBranches,
		"department_branch_department_id IN (SELECT department_id FROM departments WHERE department_company_id = ? AND department_deleted_at IS NULL)",
		companyID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil relasi departemen")
	}

	chart := assembleChart(company, schools, branches, departments, depSchools, depBranches)
	return helper.JsonOK(c, "OK", chart)
}

/* ============================================
   Perakitan (pure, tanpa DB)
============================================ */

func assembleChart(
	company companyModel.CompanyModel,
	schools []schoolModel.SchoolModel,
	branches []branchModel.BranchModel,
	departments []departmentModel.DepartmentModel,
	depSchools []departmentModel.DepartmentSchoolModel,
	depBranches []departmentModel.DepartmentBranchModel,
) dto.OrgChartNodeDTO {
	depByID := map[uuid.UUID]departmentModel.DepartmentModel{}
	for _, d := range departments {
		depByID[d.DepartmentID] = d
	}
	depsOfSchool := map[uuid.UUID][]uuid.UUID{}
	for _, r := range depSchools {
		depsOfSchool[r.DepartmentSchoolSchoolID] = append(depsOfSchool[r.DepartmentSchoolSchoolID], r.DepartmentSchoolDepartmentID)
	}
	depsOfBranch := map[uuid.UUID][]uuid.UUID{}
	for _, r := range depBranches {
		depsOfBranch[r.DepartmentBranchBranchID] = append(depsOfBranch[r.DepartmentBranchBranchID], r.DepartmentBranchDepartmentID)
	}
	branchesOfSchool := map[uuid.UUID][]branchModel.BranchModel{}
	for _, b := range branches {
		branchesOfSchool[b.BranchSchoolID] = append(branchesOfSchool[b.BranchSchoolID], b)
	}

	// Departemen yang nempel ke satu school/branch disusun jadi pohon;
	// parent yang tidak ikut ter-assign otomatis demote anaknya jadi root.
	departmentForest := func(ids []uuid.UUID) []dto.OrgChartNodeDTO {
		subset := make([]departmentModel.DepartmentModel, 0, len(ids))
		for _, id := range ids {
			if d, ok := depByID[id]; ok {
				subset = append(subset, d)
			}
		}
		return departmentNodes(departmentService.BuildTree(subset))
	}

	root := dto.OrgChartNodeDTO{
		NodeType:   dto.NodeTypeCompany,
		NodeID:     company.CompanyID,
		NodeName:   company.CompanyName,
		NodeCode:   company.CompanyCode,
		NodeActive: company.CompanyIsActive,
		Children:   []dto.OrgChartNodeDTO{},
	}

	for _, s := range schools {
		schoolNode := dto.OrgChartNodeDTO{
			NodeType:   dto.NodeTypeSchool,
			NodeID:     s.SchoolID,
			NodeName:   s.SchoolName,
			NodeCode:   s.SchoolCode,
			NodeActive: s.SchoolIsActive,
			Children:   []dto.OrgChartNodeDTO{},
		}

		for _, b := range branchesOfSchool[s.SchoolID] {
			branchNode := dto.OrgChartNodeDTO{
				NodeType:   dto.NodeTypeBranch,
				NodeID:     b.BranchID,
				NodeName:   b.BranchName,
				NodeCode:   b.BranchCode,
				NodeActive: b.BranchIsActive,
				Children:   departmentForest(depsOfBranch[b.BranchID]),
			}
			schoolNode.Children = append(schoolNode.Children, branchNode)
		}

		schoolNode.Children = append(schoolNode.Children, departmentForest(depsOfSchool[s.SchoolID])...)
		root.Children = append(root.Children, schoolNode)
	}

	return root
}

func departmentNodes(nodes []*departmentService.DepartmentNode) []dto.OrgChartNodeDTO {
	out := make([]dto.OrgChartNodeDTO, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.OrgChartNodeDTO{
			NodeType:   dto.NodeTypeDepartment,
			NodeID:     n.Department.DepartmentID,
			NodeName:   n.Department.DepartmentName,
			NodeCode:   n.Department.DepartmentCode,
			NodeActive: n.Department.DepartmentIsActive,
			Children:   departmentNodes(n.Children),
		})
	}
	return out
}
