package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/courseflow/courseflow/pkg/prereq"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// CourseListModel - Interactive course selection
// =============================================================================

// CourseSelection holds the result of the course selection.
type CourseSelection struct {
	Course *prereq.CourseMetadata
}

// CourseListModel is the bubbletea model for interactive course selection.
type CourseListModel struct {
	Courses  []prereq.CourseMetadata
	Cursor   int
	Selected *CourseSelection
	Height   int
	Offset   int
}

// NewCourseListModel creates a new course list model.
func NewCourseListModel(courses []prereq.CourseMetadata) CourseListModel {
	return CourseListModel{
		Courses: courses,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m CourseListModel) Init() tea.Cmd {
	return nil
}

func (m CourseListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Courses)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			course := m.Courses[m.Cursor]
			m.Selected = &CourseSelection{Course: &course}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CourseListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Course"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Courses) {
		end = len(m.Courses)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Courses[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		credits := c.Credits
		if credits == "" {
			credits = "—"
		}

		level := "—"
		if c.Level > 0 {
			level = strconv.Itoa(c.Level)
		}

		taught := c.LastTaughtTerm
		if taught == "" {
			taught = "—"
		}

		rows = append(rows, []string{cursor, c.Code, truncate(c.Title, 42), credits, level, c.College, taught})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Code", "Title", "Credits", "Level", "College", "Last taught").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Courses) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorGray)
			}

			if isCurrent {
				if col < 3 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Bold(true)
			}
			if col < 3 {
				return base.Foreground(colorWhite)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Courses))))

	return b.String()
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
