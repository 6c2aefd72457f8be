package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/todo/internal/db"
	"github.com/tgienger/todo/internal/logging"
	"github.com/tgienger/todo/internal/ui/views"
)

// Options configures the application
type Options struct {
	// CharLimit caps task titles while editing
	CharLimit int
}

type App struct {
	taskList *views.TaskListView
	log      *logging.Logger
}

// Creates a new application
func NewApp(database *db.DB, logger *logging.Logger, opts Options) *App {
	return &App{
		taskList: views.NewTaskListView(database, logger, opts.CharLimit),
		log:      logger,
	}
}

func (a *App) Init() tea.Cmd {
	a.log.Debug("app started")
	return a.taskList.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := a.taskList.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.taskList.View()
}
