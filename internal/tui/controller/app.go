package controller

import (
	"f2bsentinel/internal/tui/model"
	"f2bsentinel/internal/tui/view"

	tea "github.com/charmbracelet/bubbletea"
)

// AppModel wraps the model to handle updates and views
type AppModel struct {
	model *model.Model
}

// NewAppModel creates a new app wrapper
func NewAppModel(m *model.Model) AppModel {
	return AppModel{model: m}
}

// Init implements tea.Model
func (a AppModel) Init() tea.Cmd {
	return a.model.Init()
}

// Update implements tea.Model
func (a AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updatedModel, cmd := mainControllerDispatch(a.model, msg)
	a.model = updatedModel
	return a, cmd
}

// View implements tea.Model
func (a AppModel) View() string {
	return view.Render(a.model)
}

// Model exposes the wrapped state.
func (a AppModel) Model() *model.Model {
	return a.model
}
