package Controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"PalletTrack/Models"
	"PalletTrack/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ExportTasks writes the full task register (pending and completed) to an
// Excel workbook for offline review. Admin only.
func (t *TaskController) ExportTasks(ctx *fiber.Ctx) error {
	sess := middleware.SessionFrom(ctx)

	var tasks []Models.TaskView
	if err := t.scopedTaskQuery(sess, true).Scan(&tasks).Error; err != nil {
		log.Println("Export tasks error:", err)
		return internalError(ctx)
	}

	buf, err := tasksToExcel(tasks)
	if err != nil {
		log.Println("Export tasks error:", err)
		return internalError(ctx)
	}

	filename := fmt.Sprintf("tasks-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Send(buf.Bytes())
}

func tasksToExcel(tasks []Models.TaskView) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Tasks"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"ID", "Type", "Assigned To", "Job Number", "Pallet Number",
		"Pallet Width", "Pallet Length", "Material", "Completed",
		"Completed At", "Created At",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, task := range tasks {
		row := rowIndex + 2

		// Pallet detail columns stay blank for task types the exporter
		// does not know.
		var data Models.PalletBuilderData
		if task.TaskType == Models.TaskTypePalletBuilder {
			_ = json.Unmarshal(task.TaskData, &data)
		}

		completedAt := ""
		if task.CompletedAt != nil {
			completedAt = task.CompletedAt.Format("2006-01-02 15:04:05")
		}

		values := []interface{}{
			task.ID,
			task.TaskType,
			task.AssignedToName,
			data.JobNumber,
			data.PalletNumber,
			data.PalletWidth,
			data.PalletLength,
			data.Material,
			task.IsCompleted,
			completedAt,
			task.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := 0; i < len(headers); i++ {
		f.SetColWidth(sheetName, string('A'+rune(i)), string('A'+rune(i)), 15)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %v", err)
	}

	return &buf, nil
}
