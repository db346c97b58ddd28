// Package color holds the dashboard palette and the lipgloss styles built
// from it.
//
// Colors are adaptive: each has a light and a dark variant and lipgloss
// picks one from the detected terminal background. Initialize overrides the
// detection, which the dashboard does when F2BSENTINEL_THEME is set to
// "light" or "dark".
//
// Colors are organized into semantic categories:
//   - Primary: titles, focused borders, the selected row
//   - Success: completed actions
//   - Warning: second confirmations and degraded values
//   - Error: failures and destructive buttons
//   - Info: indicators
//   - Subtle: de-emphasized text and unfocused borders
package color
