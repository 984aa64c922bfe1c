package handlers

import (
	"log"
	"time"

	"github.com/docgestor/docgestor/internal/compliance"
	"github.com/docgestor/docgestor/internal/services"
	"github.com/docgestor/docgestor/internal/storage"
	"github.com/docgestor/docgestor/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EmployeeHandler handles employee routes
type EmployeeHandler struct {
	DB        *gorm.DB
	Store     *storage.Store
	Checklist compliance.Checklist
}

// List handles GET /api/employees
// @Summary List employees
// @Description List all employees ordered by name, with documents and derived compliance status
// @Tags Employees
// @Produce json
// @Success 200 {array} models.Employee
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := services.ListEmployees(h.DB, h.Checklist, time.Now())
	if err != nil {
		log.Printf("employees.list: %v", err)
		return utils.InternalErrorResponse(c, "employees.list")
	}
	return c.Status(fiber.StatusOK).JSON(employees)
}

// Get handles GET /api/employees/:id
// @Summary Get an employee
// @Description Get one employee with documents (newest first) and derived compliance status
// @Tags Employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} models.Employee
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid employee id", "employees.get")
	}

	employee, err := services.GetEmployee(h.DB, h.Checklist, id, time.Now())
	if err != nil {
		return serviceErrorResponse(c, err, "Employee not found", "employees.get")
	}
	return c.Status(fiber.StatusOK).JSON(employee)
}

// Create handles POST /api/employees
// @Summary Register an employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param body body services.EmployeeInput true "Employee data"
// @Success 201 {object} models.Employee
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in services.EmployeeInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body", "employees.create")
	}

	employee, err := services.CreateEmployee(h.DB, h.Checklist, in, time.Now())
	if err != nil {
		return serviceErrorResponse(c, err, "Employee not found", "employees.create")
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

// Update handles PUT /api/employees/:id
// @Summary Update an employee
// @Description Partial update; only supplied fields change
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param body body services.EmployeeInput true "Fields to update"
// @Success 200 {object} models.Employee
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid employee id", "employees.update")
	}

	var in services.EmployeeInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body", "employees.update")
	}

	employee, err := services.UpdateEmployee(h.DB, h.Checklist, id, in, time.Now())
	if err != nil {
		return serviceErrorResponse(c, err, "Employee not found", "employees.update")
	}
	return c.Status(fiber.StatusOK).JSON(employee)
}

// Delete handles DELETE /api/employees/:id
// @Summary Delete an employee
// @Description Deletes the employee, all owned documents and their stored files
// @Tags Employees
// @Param id path int true "Employee ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid employee id", "employees.delete")
	}

	if err := services.DeleteEmployee(h.DB, h.Store, id); err != nil {
		return serviceErrorResponse(c, err, "Employee not found", "employees.delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Dashboard handles GET /api/employees/stats/dashboard
// @Summary Dashboard statistics
// @Description Employee totals per compliance status and documents expiring within the alert window
// @Tags Employees
// @Produce json
// @Success 200 {object} services.DashboardStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /employees/stats/dashboard [get]
func (h *EmployeeHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := services.GetDashboardStats(h.DB, h.Checklist, time.Now())
	if err != nil {
		log.Printf("employees.dashboard: %v", err)
		return utils.InternalErrorResponse(c, "employees.dashboard")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
