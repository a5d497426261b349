package notify

import (
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Actor is the resolved identity that triggered a domain event.
type Actor struct {
	ID           uuid.UUID
	Name         string
	IsAdminClass bool
}

// Type returns the persisted identity-space discriminator.
func (a Actor) Type() string {
	if a.IsAdminClass {
		return model.ActorAdmin
	}
	return model.ActorStaff
}

// ResolveActor classifies a login identity as admin- or staff-class. The
// admin allow-list check lives on the model so permission checks and actor
// resolution agree.
func ResolveActor(user *model.User) Actor {
	return Actor{
		ID:           user.ID,
		Name:         user.Name,
		IsAdminClass: user.IsAdminClass(),
	}
}

// Resolver maps directory (employee) identities onto login identities.
// Assignment references the HR-style directory record while notification
// delivery and permission checks operate on the login identity; the two are
// linked by the UserID foreign key, with an exact-email join as fallback for
// records created before the link existed.
type Resolver struct {
	employees repository.EmployeeRepository
	users     repository.UserRepository
}

func NewResolver(employees repository.EmployeeRepository, users repository.UserRepository) *Resolver {
	return &Resolver{employees: employees, users: users}
}

// EmployeeUserID returns the login identity behind a directory record, or nil
// when the mapping misses. A miss is logged and means "cannot notify this
// recipient", never an error.
func (r *Resolver) EmployeeUserID(employeeID uuid.UUID) *uuid.UUID {
	employee, err := r.employees.FindByID(employeeID)
	if err != nil {
		log.Warn().Str("employee_id", employeeID.String()).Err(err).
			Msg("directory record lookup failed, dropping recipient")
		return nil
	}

	if employee.UserID != nil {
		return employee.UserID
	}

	// Legacy path: no link yet, join by exact email equality. Email edits on
	// one side silently break this, which is why the FK exists.
	user, err := r.users.FindByEmail(employee.Email)
	if err != nil {
		log.Warn().Str("employee_id", employeeID.String()).Str("email", employee.Email).
			Msg("no login identity for directory record, dropping recipient")
		return nil
	}
	return &user.ID
}

// EmployeeUserIDs maps a set of directory ids, silently dropping misses.
func (r *Resolver) EmployeeUserIDs(employeeIDs []uuid.UUID) []uuid.UUID {
	userIDs := make([]uuid.UUID, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		if userID := r.EmployeeUserID(employeeID); userID != nil {
			userIDs = append(userIDs, *userID)
		}
	}
	return userIDs
}
