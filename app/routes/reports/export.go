package reports

import (
	"fmt"

	"github.com/Deepak1064/PragatiPath-Academy/app/config"
	"github.com/Deepak1064/PragatiPath-Academy/app/database"
	"github.com/Deepak1064/PragatiPath-Academy/app/services"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeWorkbook(c *fiber.Ctx, file *excelize.File, filename string) error {
	buffer, err := file.WriteToBuffer()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build export"})
	}

	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Set("Content-Type", xlsxContentType)
	return c.Send(buffer.Bytes())
}

// ExportDailyReportAPI renders one date's report as a spreadsheet.
func ExportDailyReportAPI(c *fiber.Ctx) error {
	dateStr, err := reportDate(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	events, err := database.GetEventsByDate(config.GetDB(), dateStr)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	report := services.BuildDailyReport(dateStr, events)

	file := excelize.NewFile()
	sheet := file.GetSheetName(file.GetActiveSheetIndex())

	headers := []string{"No", "Teacher", "Arrival", "Leaving", "Late", "IP Address"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(sheet, cell, header)
	}

	for index, row := range report.Rows {
		r := index + 2
		late := "No"
		arrival, leaving, ip := "-", "-", ""
		if row.Arrival != nil {
			arrival = row.Arrival.RecordedAt.Format("15:04")
			ip = row.Arrival.IPAddress
			if row.Arrival.IsLate {
				late = "Yes"
			}
		}
		if row.Leaving != nil {
			leaving = row.Leaving.RecordedAt.Format("15:04")
		}
		_ = file.SetCellValue(sheet, fmt.Sprintf("A%d", r), index+1)
		_ = file.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.UserName)
		_ = file.SetCellValue(sheet, fmt.Sprintf("C%d", r), arrival)
		_ = file.SetCellValue(sheet, fmt.Sprintf("D%d", r), leaving)
		_ = file.SetCellValue(sheet, fmt.Sprintf("E%d", r), late)
		_ = file.SetCellValue(sheet, fmt.Sprintf("F%d", r), ip)
	}

	return writeWorkbook(c, file, fmt.Sprintf("attendance-%s.xlsx", dateStr))
}

// ExportMonthlyReportAPI renders the monthly summary as a spreadsheet with
// the working-day denominator alongside each teacher's present days.
func ExportMonthlyReportAPI(c *fiber.Ctx) error {
	month, err := reportMonth(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month format. Use YYYY-MM"})
	}

	db := config.GetDB()
	events, err := database.GetRecentEvents(db, monthlyWindow)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	settings, err := database.GetHolidaySettings(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load settings"})
	}

	stats := services.BuildMonthlySummary(events, services.MonthKey(month))
	working := services.WorkingDays(settings, month.Year(), month.Month())

	file := excelize.NewFile()
	sheet := file.GetSheetName(file.GetActiveSheetIndex())

	headers := []string{"No", "Teacher", "Present Days", "Late Days", "Working Days", "Percentage"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(sheet, cell, header)
	}

	for index, stat := range stats {
		r := index + 2
		pct := 0
		if working > 0 {
			pct = int(float64(stat.Days)/float64(working)*100 + 0.5)
		}
		_ = file.SetCellValue(sheet, fmt.Sprintf("A%d", r), index+1)
		_ = file.SetCellValue(sheet, fmt.Sprintf("B%d", r), stat.Name)
		_ = file.SetCellValue(sheet, fmt.Sprintf("C%d", r), stat.Days)
		_ = file.SetCellValue(sheet, fmt.Sprintf("D%d", r), stat.Late)
		_ = file.SetCellValue(sheet, fmt.Sprintf("E%d", r), working)
		_ = file.SetCellValue(sheet, fmt.Sprintf("F%d", r), fmt.Sprintf("%d%%", pct))
	}

	return writeWorkbook(c, file, fmt.Sprintf("attendance-%s.xlsx", month.Format("2006-01")))
}
