package app

import "charm.land/lipgloss/v2"

var (
	brandStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Padding(0, 1)
	navbarStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	sectionTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Bold(true)
	categoryStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	categoryActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	categoryCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	cardStyle           = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	cardSelectedStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("75")).Padding(0, 1)
	cardTitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	cardMetaStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	cardSnippetStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	tagStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	editorFrameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1)
	fieldLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	fieldFocusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	buttonStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 1)
	buttonPrimaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Padding(0, 1).Bold(true)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("235")).Padding(0, 1)
	previewFrameStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("237")).Padding(0, 1)
	loginFrameStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 2)
	loginTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
)
