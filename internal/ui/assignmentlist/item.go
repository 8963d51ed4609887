package assignmentlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tpham/study-tracker/internal/derive"
	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/internal/theme"
)

// AssignmentItem wraps a model.Assignment for display in the list.
type AssignmentItem struct {
	Assignment model.Assignment
}

// FilterValue returns the string used for list filtering.
func (i AssignmentItem) FilterValue() string {
	return i.Assignment.Name
}

// AssignmentDelegate renders assignment items with a progress bar and a
// color-coded due countdown.
type AssignmentDelegate struct {
	bar progress.Model
}

// NewDelegate creates the item delegate with its shared progress bar.
func NewDelegate() AssignmentDelegate {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 20
	bar.ShowPercentage = false
	return AssignmentDelegate{bar: bar}
}

// Height returns the height of each list item.
func (d AssignmentDelegate) Height() int { return 2 }

// Spacing returns the spacing between list items.
func (d AssignmentDelegate) Spacing() int { return 0 }

// Update handles item-level messages (none needed).
func (d AssignmentDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws a single assignment item.
func (d AssignmentDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ai, ok := item.(AssignmentItem)
	if !ok {
		return
	}
	a := ai.Assignment

	daysLeft := derive.DaysUntilDue(a.DueDate)
	due := theme.DueStyle(daysLeft).Render(dueLabel(daysLeft))

	title := fmt.Sprintf("%s  %s", a.Name, due)
	detail := fmt.Sprintf("%s %3d%%  due %s",
		d.bar.ViewAs(float64(a.Progress)/100),
		a.Progress,
		derive.FormatDate(a.DueDate),
	)

	block := title + "\n" + theme.DimmedStyle.Render(detail)

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(block))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(block))
}

// dueLabel formats a days-until-due count for display.
func dueLabel(daysLeft int) string {
	switch {
	case daysLeft < 0:
		return fmt.Sprintf("overdue by %dd", -daysLeft)
	case daysLeft == 0:
		return "due today"
	case daysLeft == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("%dd left", daysLeft)
	}
}

var _ list.ItemDelegate = AssignmentDelegate{}
