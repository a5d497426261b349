package notify

import (
	"testing"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskWith(title, status string, assignees ...model.Employee) *model.Task {
	return &model.Task{Title: title, Status: status, Assignees: assignees}
}

func employeeWithID(id uuid.UUID) model.Employee {
	e := model.Employee{}
	e.ID = id
	return e
}

func TestClassifyTaskCreated(t *testing.T) {
	event := ClassifyTask("Priya", nil, taskWith("Wire rack", model.TaskNew))
	require.NotNil(t, event)
	assert.Equal(t, model.TypeTaskCreated, event.Type)
	assert.Equal(t, model.PriorityMedium, event.Priority)
	assert.Contains(t, event.AssigneeBody, "assigned you")
	assert.Contains(t, event.Body, "Priya")
}

func TestClassifyTaskDeleted(t *testing.T) {
	event := ClassifyTask("Priya", taskWith("Wire rack", model.TaskNew), nil)
	require.NotNil(t, event)
	assert.Equal(t, model.TypeTaskDeleted, event.Type)
}

func TestClassifyTaskNoChange(t *testing.T) {
	prev := taskWith("Wire rack", model.TaskNew)
	next := taskWith("Wire rack", model.TaskNew)
	assert.Nil(t, ClassifyTask("Priya", prev, next))
	assert.Nil(t, ClassifyTask("Priya", nil, nil))
}

func TestClassifyTaskReassignmentWinsOverFieldChanges(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	prev := taskWith("Wire rack", model.TaskNew, employeeWithID(a))
	next := taskWith("Wire rack refit", model.TaskInProgress, employeeWithID(b))

	event := ClassifyTask("Priya", prev, next)
	require.NotNil(t, event)
	assert.Equal(t, model.TypeTaskReassigned, event.Type)
	assert.Equal(t, model.PriorityHigh, event.Priority)
	assert.Equal(t, []string{"assignees"}, event.ChangedFields)
}

func TestClassifyTaskFirstAssignmentIsAssigned(t *testing.T) {
	a := uuid.New()
	prev := taskWith("Wire rack", model.TaskNew)
	next := taskWith("Wire rack", model.TaskNew, employeeWithID(a))

	event := ClassifyTask("Priya", prev, next)
	require.NotNil(t, event)
	assert.Equal(t, model.TypeTaskAssigned, event.Type)
}

func TestClassifyTaskCompletion(t *testing.T) {
	a := uuid.New()
	prev := taskWith("Wire rack", model.TaskInProgress, employeeWithID(a))
	next := taskWith("Wire rack", model.TaskCompleted, employeeWithID(a))

	event := ClassifyTask("Priya", prev, next)
	require.NotNil(t, event)
	assert.Equal(t, model.TypeTaskCompleted, event.Type)
	assert.Equal(t, model.PriorityHigh, event.Priority)
	assert.Contains(t, event.AssigneeBody, "Your task")
}

func TestClassifyTaskUpdatedDiffsFields(t *testing.T) {
	prev := taskWith("Wire rack", model.TaskNew)
	prev.Comment = "old"
	next := taskWith("Wire rack", model.TaskInProgress)
	next.Comment = "new"

	event := ClassifyTask("Priya", prev, next)
	require.NotNil(t, event)
	assert.Equal(t, model.TypeTaskUpdated, event.Type)
	assert.Equal(t, model.PriorityLow, event.Priority)
	assert.Equal(t, []string{"comment", "status"}, event.ChangedFields)

	diff, ok := event.Payload["status"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, model.TaskNew, diff["from"])
	assert.Equal(t, model.TaskInProgress, diff["to"])
}

func TestClassifyProjectCompletion(t *testing.T) {
	prev := &model.Project{Services: "Home Cinema", Status: model.ProjectInProgress}
	next := &model.Project{Services: "Home Cinema", Status: model.ProjectCompleted}

	event := ClassifyProject("Priya", prev, next)
	require.NotNil(t, event)
	assert.Equal(t, model.TypeProjectCompleted, event.Type)
	assert.Equal(t, model.PriorityHigh, event.Priority)
}

func TestClassifyProjectReassignment(t *testing.T) {
	a := uuid.New()
	prev := &model.Project{Services: "Security System"}
	next := &model.Project{Services: "Security System", AssignedEmployees: []model.Employee{employeeWithID(a)}}

	event := ClassifyProject("Priya", prev, next)
	require.NotNil(t, event)
	assert.Equal(t, model.TypeProjectAssigned, event.Type)
}

func TestClassifyProposalUpdated(t *testing.T) {
	prev := &model.Proposal{Services: "Home Cinema", Status: model.ProposalWarm}
	next := &model.Proposal{Services: "Home Cinema", Status: model.ProposalHot}

	event := ClassifyProposal("Priya", prev, next)
	require.NotNil(t, event)
	assert.Equal(t, model.TypeProposalUpdated, event.Type)
	assert.Equal(t, []string{"status"}, event.ChangedFields)
}

func TestClassifyProposalNoChange(t *testing.T) {
	p := &model.Proposal{Services: "Home Cinema", Status: model.ProposalWarm}
	q := *p
	assert.Nil(t, ClassifyProposal("Priya", p, &q))
}

func TestClassifyEmployeeLifecycle(t *testing.T) {
	employee := &model.Employee{FirstName: "Ravi", LastName: "Kumar", Department: "Installation"}

	created := ClassifyEmployee("Priya", nil, employee)
	require.NotNil(t, created)
	assert.Equal(t, model.TypeEmployeeCreated, created.Type)
	assert.Contains(t, created.Body, "Ravi Kumar")

	updated := *employee
	updated.Department = "Service"
	event := ClassifyEmployee("Priya", employee, &updated)
	require.NotNil(t, event)
	assert.Equal(t, model.TypeEmployeeUpdated, event.Type)
	assert.Equal(t, []string{"department"}, event.ChangedFields)

	deleted := ClassifyEmployee("Priya", employee, nil)
	require.NotNil(t, deleted)
	assert.Equal(t, model.TypeEmployeeDeleted, deleted.Type)
}
