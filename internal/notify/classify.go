package notify

import (
	"fmt"
	"sort"
	"time"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

	"github.com/google/uuid"
)

// Event is one classified domain change, carrying a distinct message per
// audience: the same underlying change is worded differently for assignees,
// for area-permissioned staff, and for admins, not just addressed differently.
type Event struct {
	Type          string
	Priority      string
	ChangedFields []string
	Payload       map[string]interface{}

	// Audience-facing templates.
	Title         string // area/staff-facing
	Body          string
	AssigneeTitle string
	AssigneeBody  string
	AdminTitle    string
	AdminBody     string
}

// ClassifyTask diffs a task's previous vs. next state. prev == nil is a
// creation, next == nil a deletion; those are fixed types, never computed by
// diff. Returns nil when nothing noteworthy changed.
func ClassifyTask(actorName string, prev, next *model.Task) *Event {
	switch {
	case prev == nil && next == nil:
		return nil
	case prev == nil:
		return &Event{
			Type:          model.TypeTaskCreated,
			Priority:      model.PriorityMedium,
			Title:         "New task",
			Body:          fmt.Sprintf("%s created task '%s'", actorName, next.Title),
			AssigneeTitle: "Task assigned to you",
			AssigneeBody:  fmt.Sprintf("%s assigned you the task '%s'", actorName, next.Title),
			AdminTitle:    "Task created",
			AdminBody:     fmt.Sprintf("%s created task '%s'", actorName, next.Title),
			Payload:       map[string]interface{}{"title": next.Title, "status": next.Status},
		}
	case next == nil:
		return &Event{
			Type:       model.TypeTaskDeleted,
			Priority:   model.PriorityMedium,
			Title:      "Task deleted",
			Body:       fmt.Sprintf("%s deleted task '%s'", actorName, prev.Title),
			AdminTitle: "Task deleted",
			AdminBody:  fmt.Sprintf("%s deleted task '%s'", actorName, prev.Title),
			Payload:    map[string]interface{}{"title": prev.Title},
		}
	}

	// Assignment set changed and is non-empty -> reassignment wins.
	if !equalUUIDSets(prev.AssigneeIDs(), next.AssigneeIDs()) && len(next.Assignees) > 0 {
		eventType := model.TypeTaskReassigned
		if len(prev.Assignees) == 0 {
			eventType = model.TypeTaskAssigned
		}
		return &Event{
			Type:          eventType,
			Priority:      model.PriorityHigh,
			Title:         "Task reassigned",
			Body:          fmt.Sprintf("%s reassigned task '%s'", actorName, next.Title),
			AssigneeTitle: "Task assigned to you",
			AssigneeBody:  fmt.Sprintf("%s assigned you the task '%s'", actorName, next.Title),
			AdminTitle:    "Task reassigned",
			AdminBody:     fmt.Sprintf("%s changed the assignees of task '%s'", actorName, next.Title),
			ChangedFields: []string{"assignees"},
			Payload:       map[string]interface{}{"title": next.Title, "assignees": uuidStrings(next.AssigneeIDs())},
		}
	}

	// Status transitioned into the terminal value.
	if prev.Status != model.TaskCompleted && next.Status == model.TaskCompleted {
		return &Event{
			Type:          model.TypeTaskCompleted,
			Priority:      model.PriorityHigh,
			Title:         "Task completed",
			Body:          fmt.Sprintf("Task '%s' was completed by %s", next.Title, actorName),
			AssigneeTitle: "Task completed",
			AssigneeBody:  fmt.Sprintf("Your task '%s' was marked completed by %s", next.Title, actorName),
			AdminTitle:    "Task completed",
			AdminBody:     fmt.Sprintf("Task '%s' was completed by %s", next.Title, actorName),
			ChangedFields: []string{"status"},
			Payload:       map[string]interface{}{"title": next.Title, "from": prev.Status, "to": next.Status},
		}
	}

	changed := taskChangedFields(prev, next)
	if len(changed) == 0 {
		return nil
	}
	return &Event{
		Type:          model.TypeTaskUpdated,
		Priority:      model.PriorityLow,
		Title:         "Task updated",
		Body:          fmt.Sprintf("%s updated task '%s'", actorName, next.Title),
		AssigneeTitle: "Your task was updated",
		AssigneeBody:  fmt.Sprintf("%s updated your task '%s'", actorName, next.Title),
		AdminTitle:    "Task updated",
		AdminBody:     fmt.Sprintf("%s updated task '%s' (%d fields)", actorName, next.Title, len(changed)),
		ChangedFields: changed,
		Payload:       changeDiff(changed, taskFieldValues(prev), taskFieldValues(next)),
	}
}

// ClassifyProject mirrors ClassifyTask for projects.
func ClassifyProject(actorName string, prev, next *model.Project) *Event {
	switch {
	case prev == nil && next == nil:
		return nil
	case prev == nil:
		return &Event{
			Type:          model.TypeProjectCreated,
			Priority:      model.PriorityMedium,
			Title:         "New project",
			Body:          fmt.Sprintf("%s created a %s project", actorName, next.Services),
			AssigneeTitle: "Project assigned to you",
			AssigneeBody:  fmt.Sprintf("%s assigned you to a new %s project", actorName, next.Services),
			AdminTitle:    "Project created",
			AdminBody:     fmt.Sprintf("%s created a %s project", actorName, next.Services),
			Payload:       map[string]interface{}{"services": next.Services, "status": next.Status},
		}
	case next == nil:
		return &Event{
			Type:       model.TypeProjectDeleted,
			Priority:   model.PriorityMedium,
			Title:      "Project deleted",
			Body:       fmt.Sprintf("%s deleted a %s project", actorName, prev.Services),
			AdminTitle: "Project deleted",
			AdminBody:  fmt.Sprintf("%s deleted a %s project", actorName, prev.Services),
			Payload:    map[string]interface{}{"services": prev.Services},
		}
	}

	if !equalUUIDSets(prev.AssignedEmployeeIDs(), next.AssignedEmployeeIDs()) && len(next.AssignedEmployees) > 0 {
		eventType := model.TypeProjectReassigned
		if len(prev.AssignedEmployees) == 0 {
			eventType = model.TypeProjectAssigned
		}
		return &Event{
			Type:          eventType,
			Priority:      model.PriorityHigh,
			Title:         "Project reassigned",
			Body:          fmt.Sprintf("%s reassigned the %s project", actorName, next.Services),
			AssigneeTitle: "Project assigned to you",
			AssigneeBody:  fmt.Sprintf("%s assigned you to the %s project", actorName, next.Services),
			AdminTitle:    "Project reassigned",
			AdminBody:     fmt.Sprintf("%s changed the team on the %s project", actorName, next.Services),
			ChangedFields: []string{"assigned_employees"},
			Payload:       map[string]interface{}{"services": next.Services, "assigned_employees": uuidStrings(next.AssignedEmployeeIDs())},
		}
	}

	if prev.Status != model.ProjectCompleted && next.Status == model.ProjectCompleted {
		return &Event{
			Type:          model.TypeProjectCompleted,
			Priority:      model.PriorityHigh,
			Title:         "Project completed",
			Body:          fmt.Sprintf("The %s project was completed by %s", next.Services, actorName),
			AssigneeTitle: "Project completed",
			AssigneeBody:  fmt.Sprintf("Your %s project was marked completed by %s", next.Services, actorName),
			AdminTitle:    "Project completed",
			AdminBody:     fmt.Sprintf("The %s project was completed by %s", next.Services, actorName),
			ChangedFields: []string{"project_status"},
			Payload:       map[string]interface{}{"services": next.Services, "from": prev.Status, "to": next.Status},
		}
	}

	changed := projectChangedFields(prev, next)
	if len(changed) == 0 {
		return nil
	}
	return &Event{
		Type:          model.TypeProjectUpdated,
		Priority:      model.PriorityLow,
		Title:         "Project updated",
		Body:          fmt.Sprintf("%s updated the %s project", actorName, next.Services),
		AssigneeTitle: "Your project was updated",
		AssigneeBody:  fmt.Sprintf("%s updated your %s project", actorName, next.Services),
		AdminTitle:    "Project updated",
		AdminBody:     fmt.Sprintf("%s updated the %s project (%d fields)", actorName, next.Services, len(changed)),
		ChangedFields: changed,
		Payload:       changeDiff(changed, projectFieldValues(prev), projectFieldValues(next)),
	}
}

// ClassifyProposal covers proposals; proposals carry no assignment set, so
// only created/updated/deleted apply.
func ClassifyProposal(actorName string, prev, next *model.Proposal) *Event {
	switch {
	case prev == nil && next == nil:
		return nil
	case prev == nil:
		return &Event{
			Type:       model.TypeProposalCreated,
			Priority:   model.PriorityMedium,
			Title:      "New proposal",
			Body:       fmt.Sprintf("%s created a %s proposal", actorName, next.Services),
			AdminTitle: "Proposal created",
			AdminBody:  fmt.Sprintf("%s created a %s proposal (%s)", actorName, next.Services, next.Status),
			Payload:    map[string]interface{}{"services": next.Services, "status": next.Status},
		}
	case next == nil:
		return &Event{
			Type:       model.TypeProposalDeleted,
			Priority:   model.PriorityMedium,
			Title:      "Proposal deleted",
			Body:       fmt.Sprintf("%s deleted a %s proposal", actorName, prev.Services),
			AdminTitle: "Proposal deleted",
			AdminBody:  fmt.Sprintf("%s deleted a %s proposal", actorName, prev.Services),
			Payload:    map[string]interface{}{"services": prev.Services},
		}
	}

	changed := proposalChangedFields(prev, next)
	if len(changed) == 0 {
		return nil
	}
	return &Event{
		Type:          model.TypeProposalUpdated,
		Priority:      model.PriorityLow,
		Title:         "Proposal updated",
		Body:          fmt.Sprintf("%s updated the %s proposal", actorName, next.Services),
		AdminTitle:    "Proposal updated",
		AdminBody:     fmt.Sprintf("%s updated the %s proposal (%d fields)", actorName, next.Services, len(changed)),
		ChangedFields: changed,
		Payload:       changeDiff(changed, proposalFieldValues(prev), proposalFieldValues(next)),
	}
}

// ClassifyEmployee covers directory records.
func ClassifyEmployee(actorName string, prev, next *model.Employee) *Event {
	switch {
	case prev == nil && next == nil:
		return nil
	case prev == nil:
		return &Event{
			Type:       model.TypeEmployeeCreated,
			Priority:   model.PriorityMedium,
			Title:      "New employee",
			Body:       fmt.Sprintf("%s added %s to the team", actorName, next.FullName()),
			AdminTitle: "Employee added",
			AdminBody:  fmt.Sprintf("%s added %s (%s)", actorName, next.FullName(), next.Department),
			Payload:    map[string]interface{}{"name": next.FullName(), "department": next.Department},
		}
	case next == nil:
		return &Event{
			Type:       model.TypeEmployeeDeleted,
			Priority:   model.PriorityMedium,
			Title:      "Employee removed",
			Body:       fmt.Sprintf("%s removed %s", actorName, prev.FullName()),
			AdminTitle: "Employee removed",
			AdminBody:  fmt.Sprintf("%s removed %s", actorName, prev.FullName()),
			Payload:    map[string]interface{}{"name": prev.FullName()},
		}
	}

	changed := employeeChangedFields(prev, next)
	if len(changed) == 0 {
		return nil
	}
	return &Event{
		Type:          model.TypeEmployeeUpdated,
		Priority:      model.PriorityLow,
		Title:         "Employee updated",
		Body:          fmt.Sprintf("%s updated %s's record", actorName, next.FullName()),
		AdminTitle:    "Employee updated",
		AdminBody:     fmt.Sprintf("%s updated %s's record (%d fields)", actorName, next.FullName(), len(changed)),
		ChangedFields: changed,
		Payload:       changeDiff(changed, employeeFieldValues(prev), employeeFieldValues(next)),
	}
}

// ---- tracked-field diffing ----

func taskFieldValues(t *model.Task) map[string]interface{} {
	return map[string]interface{}{
		"title":      t.Title,
		"comment":    t.Comment,
		"status":     t.Status,
		"start_date": formatDate(t.StartDate),
		"end_date":   formatDate(t.EndDate),
	}
}

func projectFieldValues(p *model.Project) map[string]interface{} {
	return map[string]interface{}{
		"services":       p.Services,
		"description":    p.Description,
		"amount":         p.Amount,
		"project_status": p.Status,
		"start_date":     formatDate(p.StartDate),
		"end_date":       formatDate(p.EndDate),
	}
}

func proposalFieldValues(p *model.Proposal) map[string]interface{} {
	return map[string]interface{}{
		"services":    p.Services,
		"description": p.Description,
		"amount":      p.Amount,
		"size":        p.Size,
		"status":      p.Status,
		"comment":     p.Comment,
	}
}

func employeeFieldValues(e *model.Employee) map[string]interface{} {
	return map[string]interface{}{
		"first_name":  e.FirstName,
		"last_name":   e.LastName,
		"email":       e.Email,
		"department":  e.Department,
		"designation": e.Designation,
		"status":      e.Status,
		"role_id":     e.RoleID,
	}
}

func taskChangedFields(prev, next *model.Task) []string {
	return diffFields(taskFieldValues(prev), taskFieldValues(next))
}

func projectChangedFields(prev, next *model.Project) []string {
	return diffFields(projectFieldValues(prev), projectFieldValues(next))
}

func proposalChangedFields(prev, next *model.Proposal) []string {
	return diffFields(proposalFieldValues(prev), proposalFieldValues(next))
}

func employeeChangedFields(prev, next *model.Employee) []string {
	return diffFields(employeeFieldValues(prev), employeeFieldValues(next))
}

// diffFields lists tracked fields whose values differ, sorted for stable
// output. Values are scalars or stringified forms, so == is value equality.
func diffFields(prev, next map[string]interface{}) []string {
	var changed []string
	for field, prevValue := range prev {
		if nextValue, ok := next[field]; ok && !equalValues(prevValue, nextValue) {
			changed = append(changed, field)
		}
	}
	sort.Strings(changed)
	return changed
}

func equalValues(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if ap, ok := a.(*uint); ok {
		bp, ok := b.(*uint)
		if !ok {
			return false
		}
		if ap == nil || bp == nil {
			return ap == bp
		}
		return *ap == *bp
	}
	return a == b
}

func changeDiff(fields []string, prev, next map[string]interface{}) map[string]interface{} {
	diff := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		diff[field] = map[string]interface{}{"from": prev[field], "to": next[field]}
	}
	return diff
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func equalUUIDSets(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[uuid.UUID]bool, len(a))
	for _, id := range a {
		seen[id] = true
	}
	for _, id := range b {
		if !seen[id] {
			return false
		}
	}
	return true
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
