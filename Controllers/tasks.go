package Controllers

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"PalletTrack/Models"
	"PalletTrack/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TaskController handles the task register: role-scoped listing, creation
// and the single pending -> completed transition.
type TaskController struct {
	DB *gorm.DB
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

// scopedTaskQuery builds the task listing for the given session: admins see
// every task, employees only their own. Newest first, ties in insertion
// order.
func (t *TaskController) scopedTaskQuery(sess Models.Session, showCompleted bool) *gorm.DB {
	query := t.DB.Table("tasks").
		Select("tasks.id, tasks.task_type, tasks.task_data, tasks.assigned_to, users.name AS assigned_to_name, tasks.is_completed, tasks.completed_at, tasks.created_at").
		Joins("LEFT JOIN users ON users.id = tasks.assigned_to").
		Order("tasks.created_at DESC, tasks.id ASC")

	if sess.Role != Models.RoleAdmin {
		query = query.Where("tasks.assigned_to = ?", sess.UserID)
	}
	if !showCompleted {
		query = query.Where("tasks.is_completed = ?", false)
	}
	return query
}

// GetTasks lists tasks visible to the caller. Completed tasks are hidden
// unless showCompleted=true.
func (t *TaskController) GetTasks(ctx *fiber.Ctx) error {
	sess := middleware.SessionFrom(ctx)
	showCompleted := ctx.Query("showCompleted") == "true"

	var tasks []Models.TaskView
	if err := t.scopedTaskQuery(sess, showCompleted).Scan(&tasks).Error; err != nil {
		log.Println("Get tasks error:", err)
		return internalError(ctx)
	}
	if tasks == nil {
		tasks = []Models.TaskView{}
	}

	return ctx.JSON(fiber.Map{"tasks": tasks})
}

type CreateTaskRequest struct {
	TaskType   string          `json:"taskType" validate:"required"`
	AssignedTo uint            `json:"assignedTo" validate:"required"`
	TaskData   json.RawMessage `json:"taskData" validate:"required"`
}

// CreateTask inserts a new pending task assigned to an active employee.
// Admin only; createdBy is taken from the session, never the request.
func (t *TaskController) CreateTask(ctx *fiber.Ctx) error {
	sess := middleware.SessionFrom(ctx)

	var input CreateTaskRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}
	if err := validateTaskData(input.TaskType, input.TaskData); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var assignee Models.User
	result := t.DB.Where("id = ? AND role = ? AND is_active = ?",
		input.AssignedTo, Models.RoleEmployee, true).First(&assignee)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignee"})
		}
		log.Println("Create task error:", result.Error)
		return internalError(ctx)
	}

	task := Models.Task{
		TaskType:   input.TaskType,
		TaskData:   datatypes.JSON(input.TaskData),
		AssignedTo: input.AssignedTo,
		CreatedBy:  sess.UserID,
	}
	if err := t.DB.Create(&task).Error; err != nil {
		log.Println("Create task error:", err)
		return internalError(ctx)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"task": task})
}

// validateTaskData checks the payload variant for the given task type.
// Unknown types get presence-only validation so new variants can be rolled
// out ahead of the server knowing their shape.
func validateTaskData(taskType string, raw json.RawMessage) error {
	switch taskType {
	case Models.TaskTypePalletBuilder:
		var data Models.PalletBuilderData
		if err := json.Unmarshal(raw, &data); err != nil {
			return errors.New("Invalid task data")
		}
		if err := validate.Struct(data); err != nil {
			return errors.New(validationMessage(err))
		}
	}
	return nil
}

// CompleteTask marks a task completed. Employees can only complete their own
// tasks; a task that exists but belongs to someone else answers the same 404
// as one that does not exist. The update itself is unconditional, so
// re-completing an already-completed task re-stamps completedAt while the
// completed state stands.
func (t *TaskController) CompleteTask(ctx *fiber.Ctx) error {
	sess := middleware.SessionFrom(ctx)

	taskID, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	if sess.Role != Models.RoleAdmin {
		var owned Models.Task
		result := t.DB.Where("id = ? AND assigned_to = ?", taskID, sess.UserID).First(&owned)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
			}
			log.Println("Complete task error:", result.Error)
			return internalError(ctx)
		}
	}

	now := time.Now()
	result := t.DB.Model(&Models.Task{}).Where("id = ?", taskID).Updates(map[string]interface{}{
		"is_completed": true,
		"completed_at": now,
	})
	if result.Error != nil {
		log.Println("Complete task error:", result.Error)
		return internalError(ctx)
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}

	var task Models.Task
	if err := t.DB.First(&task, taskID).Error; err != nil {
		log.Println("Complete task error:", err)
		return internalError(ctx)
	}

	return ctx.JSON(fiber.Map{"task": task})
}
