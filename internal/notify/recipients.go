package notify

import (
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RecipientSet is the fan-out target list partitioned by audience, so each
// audience can receive its own wording. The partitions are disjoint: a
// recipient claimed by the assignee pool is never also in the staff or admin
// pool, and the actor is excluded everywhere.
type RecipientSet struct {
	Assignees []uuid.UUID
	Staff     []uuid.UUID
	Admins    []uuid.UUID
}

// All returns the union in assignee, staff, admin order.
func (s RecipientSet) All() []uuid.UUID {
	all := make([]uuid.UUID, 0, len(s.Assignees)+len(s.Staff)+len(s.Admins))
	all = append(all, s.Assignees...)
	all = append(all, s.Staff...)
	all = append(all, s.Admins...)
	return all
}

func (s RecipientSet) Empty() bool {
	return len(s.Assignees)+len(s.Staff)+len(s.Admins) == 0
}

// Selector computes the recipient set for one domain event.
type Selector struct {
	users    repository.UserRepository
	resolver *Resolver
}

func NewSelector(users repository.UserRepository, resolver *Resolver) *Selector {
	return &Selector{users: users, resolver: resolver}
}

// SelectRecipients resolves who gets notified about an event in a functional
// area requiring the given action:
//
//  1. assignee pools (directory ids mapped onto login identities) claim first;
//  2. staff whose permissions case-insensitively contain the area with the
//     action flag set;
//  3. every admin-class identity, unless the actor is itself admin-class:
//     admins performing an action do not notify other admins, but staff
//     actions notify the full admin pool. One-directional on purpose.
//
// De-duplication and actor exclusion apply once across the combined set.
func (s *Selector) SelectRecipients(area, action string, actor Actor, assigneePools ...[]uuid.UUID) RecipientSet {
	var set RecipientSet
	claimed := map[uuid.UUID]bool{actor.ID: true}

	for _, pool := range assigneePools {
		for _, userID := range s.resolver.EmployeeUserIDs(pool) {
			if claimed[userID] {
				continue
			}
			claimed[userID] = true
			set.Assignees = append(set.Assignees, userID)
		}
	}

	staff, err := s.users.FindPermitted(area, action)
	if err != nil {
		log.Error().Err(err).Str("area", area).Str("action", action).
			Msg("permissioned staff lookup failed")
	}
	for _, user := range staff {
		if claimed[user.ID] || user.IsAdminClass() {
			continue
		}
		claimed[user.ID] = true
		set.Staff = append(set.Staff, user.ID)
	}

	if !actor.IsAdminClass {
		admins, err := s.users.FindAdmins()
		if err != nil {
			log.Error().Err(err).Msg("admin pool lookup failed")
		}
		for _, admin := range admins {
			if claimed[admin.ID] {
				continue
			}
			claimed[admin.ID] = true
			set.Admins = append(set.Admins, admin.ID)
		}
	}

	return set
}
