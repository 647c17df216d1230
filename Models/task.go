package Models

import (
	"time"

	"gorm.io/datatypes"
)

const TaskTypePalletBuilder = "pallet_builder"

// Task is a unit of work an admin hands to an employee. TaskData is a
// schema-flexible JSON payload whose shape is keyed by TaskType; a task is
// immutable after creation except for the single pending -> completed
// transition.
type Task struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	TaskType    string         `json:"taskType" gorm:"size:50;not null"`
	TaskData    datatypes.JSON `json:"taskData" gorm:"not null"`
	AssignedTo  uint           `json:"assignedTo" gorm:"not null;index"`
	CreatedBy   uint           `json:"createdBy" gorm:"not null"`
	IsCompleted bool           `json:"isCompleted" gorm:"not null;default:false"`
	CompletedAt *time.Time     `json:"completedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// PalletBuilderData is the payload for pallet_builder tasks, today the only
// task type. New task types add their own payload struct here.
type PalletBuilderData struct {
	JobNumber    string `json:"jobNumber" validate:"required"`
	PalletNumber string `json:"palletNumber" validate:"required"`
	PalletWidth  string `json:"palletWidth" validate:"required"`
	PalletLength string `json:"palletLength" validate:"required"`
	Material     string `json:"material" validate:"required"`
}

// TaskView is a task joined with the assignee's display name, the shape both
// dashboards render.
type TaskView struct {
	ID             uint           `json:"id"`
	TaskType       string         `json:"taskType"`
	TaskData       datatypes.JSON `json:"taskData"`
	AssignedTo     uint           `json:"assignedTo"`
	AssignedToName string         `json:"assignedToName"`
	IsCompleted    bool           `json:"isCompleted"`
	CompletedAt    *time.Time     `json:"completedAt"`
	CreatedAt      time.Time      `json:"createdAt"`
}
