package Controllers

import (
	"log"

	"PalletTrack/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EmployeeController handles the admin-facing employee directory.
type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

// GetEmployees lists active employees for the assignment dropdown. PINs are
// never included.
func (e *EmployeeController) GetEmployees(ctx *fiber.Ctx) error {
	var users []Models.User
	result := e.DB.Where("role = ? AND is_active = ?", Models.RoleEmployee, true).Find(&users)
	if result.Error != nil {
		log.Println("Get employees error:", result.Error)
		return internalError(ctx)
	}

	employees := make([]Models.EmployeeView, 0, len(users))
	for _, u := range users {
		employees = append(employees, u.ToEmployeeView())
	}

	return ctx.JSON(fiber.Map{"employees": employees})
}

type CreateEmployeeRequest struct {
	Name string `json:"name" validate:"required"`
	Pin  string `json:"pin" validate:"required,len=4,number"`
}

// CreateEmployee adds a new active employee. PIN uniqueness is left to the
// unique index so two concurrent creates with the same PIN cannot both
// succeed.
func (e *EmployeeController) CreateEmployee(ctx *fiber.Ctx) error {
	var input CreateEmployeeRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and 4-digit PIN are required"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and 4-digit PIN are required"})
	}

	user := Models.User{
		Name:     input.Name,
		Pin:      input.Pin,
		Role:     Models.RoleEmployee,
		IsActive: true,
	}
	if err := e.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "PIN already in use"})
		}
		log.Println("Create employee error:", err)
		return internalError(ctx)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"employee": user.ToEmployeeView()})
}
