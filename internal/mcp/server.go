package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tedhq/ted/internal/db"
	"github.com/tedhq/ted/internal/report"
	"github.com/tedhq/ted/pkg/models"
)

// NewServer creates a new MCP server exposing the task log and the
// report engine as tools.
func NewServer(database *db.DB) *server.MCPServer {
	s := server.NewMCPServer("TED", "0.1.0")

	s.AddTool(mcp.NewTool("log_task",
		mcp.WithDescription("Log a task for a user. The date defaults to today and may not be in the past."),
		mcp.WithString("user_id", mcp.Description("User the task belongs to"), mcp.Required()),
		mcp.WithString("area_of_effort", mcp.Description("What the effort was spent on"), mcp.Required()),
		mcp.WithNumber("effort_hours", mcp.Description("Whole hours of effort")),
		mcp.WithNumber("effort_minutes", mcp.Description("Minutes of effort on top of the hours")),
		mcp.WithString("effort_towards", mcp.Description("Project or goal the effort counts towards")),
		mcp.WithString("time_log_type", mcp.Description("Kind of time being logged")),
		mcp.WithString("output_file", mcp.Description("Link to the produced file, if any")),
		mcp.WithString("output_location", mcp.Description("Where the output lives, if anywhere")),
		mcp.WithString("task_date", mcp.Description("Task date (YYYY-MM-DD), defaults to today")),
	), logTaskHandler(database))

	s.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks for a user on a date or over an inclusive date range."),
		mcp.WithString("user_id", mcp.Description("Filter by user")),
		mcp.WithString("task_date", mcp.Description("Single date (YYYY-MM-DD)")),
		mcp.WithString("from_date", mcp.Description("Range start (YYYY-MM-DD), used when task_date is absent")),
		mcp.WithString("to_date", mcp.Description("Range end (YYYY-MM-DD)")),
	), listTasksHandler(database))

	s.AddTool(mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task by id."),
		mcp.WithNumber("id", mcp.Description("Task id"), mcp.Required()),
	), deleteTaskHandler(database))

	s.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Compute the effort report for a user over an inclusive date range."),
		mcp.WithString("user_id", mcp.Description("User the report covers"), mcp.Required()),
		mcp.WithString("from_date", mcp.Description("Range start (YYYY-MM-DD)"), mcp.Required()),
		mcp.WithString("to_date", mcp.Description("Range end (YYYY-MM-DD)"), mcp.Required()),
	), getReportHandler(database))

	s.AddTool(mcp.NewTool("get_daily_total",
		mcp.WithDescription("Sum a user's logged effort hours for one date."),
		mcp.WithString("user_id", mcp.Description("User the total covers"), mcp.Required()),
		mcp.WithString("task_date", mcp.Description("Date (YYYY-MM-DD)"), mcp.Required()),
	), getDailyTotalHandler(database))

	return s
}

// Serve starts the MCP server on stdio.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func logTaskHandler(database *db.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID := mcp.ParseString(request, "user_id", "")
		area := mcp.ParseString(request, "area_of_effort", "")
		hours := mcp.ParseInt(request, "effort_hours", 0)
		minutes := mcp.ParseInt(request, "effort_minutes", 0)
		if hours < 0 || minutes < 0 {
			return mcp.NewToolResultError("effort hours and minutes must be non-negative"), nil
		}

		today := models.DateOf(time.Now())
		date := today
		if raw := mcp.ParseString(request, "task_date", ""); raw != "" {
			parsed, err := models.ParseDate(raw)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if parsed.Before(today.Time) {
				return mcp.NewToolResultError("cannot add a task for a previous date"), nil
			}
			date = parsed
		}

		t := &models.TaskRecord{
			UserID:         userID,
			AreaOfEffort:   area,
			EffortHours:    hours,
			EffortMinutes:  minutes,
			EffortTowards:  mcp.ParseString(request, "effort_towards", ""),
			TimeLogType:    mcp.ParseString(request, "time_log_type", ""),
			OutputFile:     mcp.ParseString(request, "output_file", ""),
			OutputLocation: mcp.ParseString(request, "output_location", ""),
			Date:           date,
		}
		if err := database.CreateTask(ctx, t); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Task %d logged for %s on %s", t.ID, userID, date.Key())), nil
	}
}

func listTasksHandler(database *db.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID := mcp.ParseString(request, "user_id", "")

		var tasks []models.TaskRecord
		if raw := mcp.ParseString(request, "task_date", ""); raw != "" {
			date, err := models.ParseDate(raw)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			tasks, err = database.ListTasksForDate(ctx, userID, date)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		} else {
			from, err := models.ParseDate(mcp.ParseString(request, "from_date", ""))
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			to, err := models.ParseDate(mcp.ParseString(request, "to_date", ""))
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			tasks, err = database.ListTasksForRange(ctx, userID, from, to)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		data, err := json.Marshal(map[string]interface{}{"tasks": tasks})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(data)), nil
	}
}

func deleteTaskHandler(database *db.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := mcp.ParseInt(request, "id", 0)

		t, err := database.GetTask(ctx, int64(id))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if t == nil {
			return mcp.NewToolResultError(fmt.Sprintf("Task with id %d not found", id)), nil
		}

		if err := database.DeleteTask(ctx, t.ID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText("Task deleted successfully"), nil
	}
}

func getReportHandler(database *db.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID := mcp.ParseString(request, "user_id", "")

		from, err := models.ParseDate(mcp.ParseString(request, "from_date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		to, err := models.ParseDate(mcp.ParseString(request, "to_date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if to.Before(from.Time) {
			return mcp.NewToolResultError(report.ErrInvalidRange.Error()), nil
		}

		records, err := database.ListTasksForRange(ctx, userID, from, to)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(report.Build(records, from, to))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(data)), nil
	}
}

func getDailyTotalHandler(database *db.DB) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID := mcp.ParseString(request, "user_id", "")

		date, err := models.ParseDate(mcp.ParseString(request, "task_date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		tasks, err := database.ListTasksForDate(ctx, userID, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(map[string]interface{}{
			"user_id":            userID,
			"task_date":          date,
			"total_effort_hours": report.BuildDaily(tasks).TotalEffortHours,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(data)), nil
	}
}
