package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tedhq/ted/pkg/models"
)

const taskColumns = `
	t.id, t.user_id,
	COALESCE(t.area_of_effort, ''),
	COALESCE(t.effort_hours, 0),
	COALESCE(t.effort_minutes, 0),
	COALESCE(t.effort_towards, ''),
	COALESCE(t.time_log_type, ''),
	COALESCE(t.manager_note, ''),
	COALESCE(t.broad_area_of_work, ''),
	COALESCE(t.reviewer_note, ''),
	COALESCE(t.output_file, ''),
	COALESCE(t.output_location, ''),
	t.task_date`

// CreateTask inserts a new task record and fills in its ID.
func (db *DB) CreateTask(ctx context.Context, t *models.TaskRecord) error {
	query := `
		INSERT INTO tasks
			(user_id, area_of_effort, effort_hours, effort_minutes, effort_towards,
			 time_log_type, output_file, output_location, task_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := db.ExecContext(ctx, query,
		t.UserID, t.AreaOfEffort, t.EffortHours, t.EffortMinutes, t.EffortTowards,
		t.TimeLogType, t.OutputFile, t.OutputLocation, t.Date.Key(),
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read task id: %w", err)
	}
	t.ID = id
	return nil
}

// GetTask retrieves a task by ID, or nil if it does not exist.
func (db *DB) GetTask(ctx context.Context, id int64) (*models.TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = ?`
	t := &models.TaskRecord{}
	var date string
	err := db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.AreaOfEffort, &t.EffortHours, &t.EffortMinutes,
		&t.EffortTowards, &t.TimeLogType, &t.ManagerNote, &t.BroadArea,
		&t.ReviewerNote, &t.OutputFile, &t.OutputLocation, &date,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if t.Date, err = models.ParseDate(date); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTask rewrites the employee-editable fields of a task.
func (db *DB) UpdateTask(ctx context.Context, t *models.TaskRecord) error {
	query := `
		UPDATE tasks
		SET area_of_effort = ?, effort_hours = ?, effort_minutes = ?,
		    effort_towards = ?, time_log_type = ?, output_file = ?, output_location = ?
		WHERE id = ?
	`
	_, err := db.ExecContext(ctx, query,
		t.AreaOfEffort, t.EffortHours, t.EffortMinutes, t.EffortTowards,
		t.TimeLogType, t.OutputFile, t.OutputLocation, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// SetManagerNote attaches the manager annotation pair to a task.
func (db *DB) SetManagerNote(ctx context.Context, id int64, note, broadArea string) error {
	query := `UPDATE tasks SET manager_note = ?, broad_area_of_work = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, query, note, broadArea, id); err != nil {
		return fmt.Errorf("failed to set manager note: %w", err)
	}
	return nil
}

func (db *DB) SetReviewerNote(ctx context.Context, id int64, note string) error {
	query := `UPDATE tasks SET reviewer_note = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, query, note, id); err != nil {
		return fmt.Errorf("failed to set reviewer note: %w", err)
	}
	return nil
}

func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ListTasksForDate returns tasks for a single date in insertion order.
// An empty userID matches all users.
func (db *DB) ListTasksForDate(ctx context.Context, userID string, date models.Date) ([]models.TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.task_date = ?`
	args := []any{date.Key()}
	if userID != "" {
		query += ` AND t.user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY t.id ASC`
	return db.queryTasks(ctx, query, args...)
}

// ListTasksForRange returns tasks in [from, to] ordered by date then
// insertion order. An empty userID matches all users.
func (db *DB) ListTasksForRange(ctx context.Context, userID string, from, to models.Date) ([]models.TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.task_date BETWEEN ? AND ?`
	args := []any{from.Key(), to.Key()}
	if userID != "" {
		query += ` AND t.user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY t.task_date ASC, t.id ASC`
	return db.queryTasks(ctx, query, args...)
}

func (db *DB) queryTasks(ctx context.Context, query string, args ...any) ([]models.TaskRecord, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.TaskRecord
	for rows.Next() {
		var t models.TaskRecord
		var date string
		err := rows.Scan(
			&t.ID, &t.UserID, &t.AreaOfEffort, &t.EffortHours, &t.EffortMinutes,
			&t.EffortTowards, &t.TimeLogType, &t.ManagerNote, &t.BroadArea,
			&t.ReviewerNote, &t.OutputFile, &t.OutputLocation, &date,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if t.Date, err = models.ParseDate(date); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return tasks, nil
}
