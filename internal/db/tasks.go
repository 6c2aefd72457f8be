package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tgienger/todo/internal/models"
)

// ErrTaskNotFound is returned when a write targets a task id that does not exist
var ErrTaskNotFound = errors.New("task not found")

// WelcomeTitle is the title of the task seeded into an empty database
const WelcomeTitle = "Press e to rename me, space to complete me"

// CreateTask creates a new task
func (db *DB) CreateTask(title string) (*models.Task, error) {
	result, err := db.Exec(`
		INSERT INTO tasks (title) VALUES (?)
	`, title)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetTask(id)
}

// GetTask retrieves a task by ID
func (db *DB) GetTask(id int64) (*models.Task, error) {
	t := &models.Task{}
	err := db.QueryRow(`
		SELECT id, title, done, created_at, updated_at
		FROM tasks WHERE id = ?
	`, id).Scan(&t.ID, &t.Title, &t.Done, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get task %d: %w", id, ErrTaskNotFound)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasks returns all tasks in creation order
func (db *DB) ListTasks() ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT id, title, done, created_at, updated_at
		FROM tasks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Done, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ToggleTaskDone flips the completion flag of a task
func (db *DB) ToggleTaskDone(id int64) error {
	result, err := db.Exec(`
		UPDATE tasks SET done = NOT done, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, id)
	if err != nil {
		return err
	}
	return requireRow(result, "toggle", id)
}

// RenameTask sets a new title on a task
func (db *DB) RenameTask(id int64, title string) error {
	result, err := db.Exec(`
		UPDATE tasks SET title = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, title, id)
	if err != nil {
		return err
	}
	return requireRow(result, "rename", id)
}

// DeleteTask deletes a task
func (db *DB) DeleteTask(id int64) error {
	result, err := db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(result, "delete", id)
}

// TaskCount returns the number of tasks
func (db *DB) TaskCount() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&count)
	return count, err
}

// SeedWelcome inserts a single welcome task when the database has no tasks.
// It reports whether a task was inserted.
func (db *DB) SeedWelcome() (bool, error) {
	count, err := db.TaskCount()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if _, err := db.CreateTask(WelcomeTitle); err != nil {
		return false, fmt.Errorf("seed welcome task: %w", err)
	}
	return true, nil
}

func requireRow(result sql.Result, op string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s task %d: %w", op, id, ErrTaskNotFound)
	}
	return nil
}
