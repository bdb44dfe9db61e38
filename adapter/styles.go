package adapter

import "taskboard/domain"

// statusMeta and priorityMeta are the closed-set lookup tables for view
// chrome. Adding a status or priority is a table addition here, not a new
// branch in every view.

type statusMeta struct {
	Label string
	Color string
}

var statusTable = map[domain.Status]statusMeta{
	domain.StatusTodo:       {Label: "To Do", Color: "#9e9e9e"},
	domain.StatusInProgress: {Label: "In Progress", Color: "#2196f3"},
	domain.StatusReview:     {Label: "Review", Color: "#ff9800"},
	domain.StatusDone:       {Label: "Done", Color: "#4caf50"},
}

type priorityMeta struct {
	Label string
	Color string
}

var priorityTable = map[domain.Priority]priorityMeta{
	domain.PriorityLow:    {Label: "Low", Color: "#8bc34a"},
	domain.PriorityMedium: {Label: "Medium", Color: "#ffc107"},
	domain.PriorityHigh:   {Label: "High", Color: "#ff5722"},
	domain.PriorityUrgent: {Label: "Urgent", Color: "#f44336"},
}

// StatusLabel returns the display label for a status.
func StatusLabel(s domain.Status) string { return statusTable[s].Label }

// StatusColor returns the display color for a status.
func StatusColor(s domain.Status) string { return statusTable[s].Color }

// PriorityLabel returns the display label for a priority.
func PriorityLabel(p domain.Priority) string { return priorityTable[p].Label }

// PriorityColor returns the display color for a priority.
func PriorityColor(p domain.Priority) string { return priorityTable[p].Color }
