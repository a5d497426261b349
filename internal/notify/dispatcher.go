package notify

import (
	"context"
	"encoding/json"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Summary is the aggregate outcome of one fan-out: available to callers that
// care, never surfaced to the HTTP client. Push counts are populated only
// when delivery runs inline; detached delivery reports through logs.
type Summary struct {
	Persisted int
	Push      Result
}

// Dispatcher runs the full pipeline for one domain event: classify, select
// recipients, persist notification records, then deliver pushes. Persistence
// always happens before any push attempt. Nothing here ever propagates an
// error that would change the status code of the triggering domain write.
type Dispatcher struct {
	notifications repository.NotificationRepository
	selector      *Selector
	engine        *Engine
	hub           *ws.Hub

	// DeliverInline forces push delivery onto the calling goroutine. Default
	// is detached delivery after the records are durably persisted; tests set
	// this to observe results synchronously.
	DeliverInline bool
}

func NewDispatcher(notifications repository.NotificationRepository, selector *Selector, engine *Engine, hub *ws.Hub) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		selector:      selector,
		engine:        engine,
		hub:           hub,
	}
}

// entityRefs carries the optional linkage back to the originating entity.
type entityRefs struct {
	TaskID     *uuid.UUID
	ProjectID  *uuid.UUID
	ProposalID *uuid.UUID
	EmployeeID *uuid.UUID
}

// TaskChanged fans out a task mutation. Task events notify three pools: the
// task's assignees, the owning project's assigned employees, and the
// area-permissioned staff/admin sets.
func (d *Dispatcher) TaskChanged(ctx context.Context, actor Actor, prev, next *model.Task, project *model.Project) Summary {
	event := ClassifyTask(actor.Name, prev, next)
	if event == nil {
		return Summary{}
	}

	task := next
	if task == nil {
		task = prev
	}
	pools := [][]uuid.UUID{task.AssigneeIDs()}
	refs := entityRefs{TaskID: &task.ID, ProjectID: &task.ProjectID}
	if project != nil {
		pools = append(pools, project.AssignedEmployeeIDs())
	}

	set := d.selector.SelectRecipients("tasks", model.ActionView, actor, pools...)
	return d.fanOut(ctx, actor, event, set, refs)
}

// ProjectChanged fans out a project mutation; the project's assigned
// employees form the assignee pool.
func (d *Dispatcher) ProjectChanged(ctx context.Context, actor Actor, prev, next *model.Project) Summary {
	event := ClassifyProject(actor.Name, prev, next)
	if event == nil {
		return Summary{}
	}

	project := next
	if project == nil {
		project = prev
	}
	refs := entityRefs{ProjectID: &project.ID}

	set := d.selector.SelectRecipients("projects", model.ActionView, actor, project.AssignedEmployeeIDs())
	return d.fanOut(ctx, actor, event, set, refs)
}

// ProposalChanged fans out a proposal mutation to permissioned staff and
// admins; proposals have no assignee pool.
func (d *Dispatcher) ProposalChanged(ctx context.Context, actor Actor, prev, next *model.Proposal) Summary {
	event := ClassifyProposal(actor.Name, prev, next)
	if event == nil {
		return Summary{}
	}

	proposal := next
	if proposal == nil {
		proposal = prev
	}
	refs := entityRefs{ProposalID: &proposal.ID}

	set := d.selector.SelectRecipients("proposals", model.ActionView, actor)
	return d.fanOut(ctx, actor, event, set, refs)
}

// EmployeeChanged fans out a directory-record mutation.
func (d *Dispatcher) EmployeeChanged(ctx context.Context, actor Actor, prev, next *model.Employee) Summary {
	event := ClassifyEmployee(actor.Name, prev, next)
	if event == nil {
		return Summary{}
	}

	employee := next
	if employee == nil {
		employee = prev
	}
	refs := entityRefs{EmployeeID: &employee.ID}

	set := d.selector.SelectRecipients("employees", model.ActionView, actor)
	return d.fanOut(ctx, actor, event, set, refs)
}

// fanOut persists one record per recipient, audience by audience, then
// broadcasts to the web feed and hands the push batches to the engine.
func (d *Dispatcher) fanOut(ctx context.Context, actor Actor, event *Event, set RecipientSet, refs entityRefs) Summary {
	if set.Empty() {
		log.Debug().Str("type", event.Type).Msg("event had no recipients after exclusion")
		return Summary{}
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("failed to encode change payload")
		payload = nil
	}

	actorID := actor.ID
	template := model.Notification{
		Type:       event.Type,
		Priority:   event.Priority,
		Payload:    payload,
		TaskID:     refs.TaskID,
		ProjectID:  refs.ProjectID,
		ProposalID: refs.ProposalID,
		EmployeeID: refs.EmployeeID,
		ActorID:    &actorID,
		ActorType:  actor.Type(),
	}

	type batch struct {
		recipients []uuid.UUID
		title      string
		body       string
	}
	batches := []batch{
		{set.Assignees, fallback(event.AssigneeTitle, event.Title), fallback(event.AssigneeBody, event.Body)},
		{set.Staff, event.Title, event.Body},
		{set.Admins, fallback(event.AdminTitle, event.Title), fallback(event.AdminBody, event.Body)},
	}

	var summary Summary
	type delivery struct {
		recipients []uuid.UUID
		recordIDs  []uuid.UUID
		msg        Message
	}
	var deliveries []delivery

	for i, b := range batches {
		if len(b.recipients) == 0 {
			continue
		}
		record := template
		record.Title = b.title
		record.Body = b.body
		if i == 2 { // Admin audience gets the admin-targeted type variant.
			record.Type = model.AdminVariant(event.Type)
		}

		created, err := d.notifications.CreateMany(b.recipients, record)
		if err != nil {
			// Swallowed by policy: the domain write already succeeded.
			log.Error().Err(err).Str("type", record.Type).
				Msg("failed to persist notification batch")
			continue
		}
		summary.Persisted += len(created)

		recordIDs := make([]uuid.UUID, len(created))
		for j := range created {
			recordIDs[j] = created[j].ID
		}
		deliveries = append(deliveries, delivery{
			recipients: b.recipients,
			recordIDs:  recordIDs,
			msg: Message{
				Title: record.Title,
				Body:  record.Body,
				Data:  pushData(record, event),
			},
		})
	}

	if summary.Persisted > 0 {
		d.hub.BroadcastJSON(map[string]interface{}{
			"kind":       "notification",
			"type":       event.Type,
			"title":      event.Title,
			"body":       event.Body,
			"priority":   event.Priority,
			"recipients": uuidStrings(set.All()),
		})
	}

	send := func(ctx context.Context) Result {
		var push Result
		for _, dl := range deliveries {
			result := d.engine.Deliver(ctx, dl.recipients, dl.msg)
			push.Sent += result.Sent
			push.Failed += result.Failed
			if err := d.notifications.MarkPushSent(dl.recordIDs); err != nil {
				log.Error().Err(err).Msg("failed to record push attempt")
			}
		}
		return push
	}

	if d.DeliverInline {
		summary.Push = send(ctx)
	} else {
		// Records are durable; delivery is detached so provider latency never
		// stalls the domain write's response. The detached run keeps its own
		// push tally: the summary is returned before delivery starts.
		go send(context.Background())
	}

	return summary
}

// pushData builds the provider data payload; the engine stringifies it.
func pushData(record model.Notification, event *Event) map[string]interface{} {
	data := map[string]interface{}{
		"type":     record.Type,
		"priority": record.Priority,
	}
	if record.TaskID != nil {
		data["task_id"] = record.TaskID.String()
	}
	if record.ProjectID != nil {
		data["project_id"] = record.ProjectID.String()
	}
	if record.ProposalID != nil {
		data["proposal_id"] = record.ProposalID.String()
	}
	if record.EmployeeID != nil {
		data["employee_id"] = record.EmployeeID.String()
	}
	if len(event.ChangedFields) > 0 {
		data["changed_fields"] = event.ChangedFields
	}
	return data
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
