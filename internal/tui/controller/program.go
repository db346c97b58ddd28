package controller

import (
	"context"

	"f2bsentinel/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the full-screen dashboard program. The program stops
// when ctx is canceled. Mouse reporting is enabled only when mouse is true.
func NewProgram(ctx context.Context, m *model.Model, mouse bool) *tea.Program {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(NewAppModel(m), opts...)
}
