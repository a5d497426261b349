package service

import (
	"errors"
	"fmt"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"
	"github.com/asarDigimarketz/3i-smarthome-sub001/pkg/validator"

	"github.com/rs/zerolog/log"
)

var ErrRoleNameExists = errors.New("role name already exists")

type RoleService interface {
	CreateRole(req *RoleRequest) (*model.Role, error)
	UpdateRole(roleID uint, req *RoleRequest) (*model.Role, error)
	DeleteRole(roleID uint) error
	GetAllRoles() ([]model.Role, error)
	GetRoleByID(roleID uint) (*model.Role, error)
}

type PermissionInput struct {
	Area      string `json:"area" validate:"required"`
	URL       string `json:"url"`
	CanView   bool   `json:"view"`
	CanAdd    bool   `json:"add"`
	CanEdit   bool   `json:"edit"`
	CanDelete bool   `json:"delete"`
}

type RoleRequest struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Permissions []PermissionInput `json:"permissions" validate:"dive"`
}

type roleService struct {
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
}

func NewRoleService(roleRepo repository.RoleRepository, userRepo repository.UserRepository) RoleService {
	return &roleService{roleRepo: roleRepo, userRepo: userRepo}
}

func (s *roleService) CreateRole(req *RoleRequest) (*model.Role, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.roleRepo.FindByName(req.Name); existing != nil {
		return nil, ErrRoleNameExists
	}

	role := &model.Role{
		Name:        req.Name,
		Description: req.Description,
		Permissions: toRolePermissions(0, req.Permissions),
	}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, err
	}
	return s.roleRepo.FindByID(role.ID)
}

// UpdateRole saves the role's permission list and cascades it onto every user
// referencing the role: the role is the source of truth, user permission rows
// are a bulk-maintained copy.
func (s *roleService) UpdateRole(roleID uint, req *RoleRequest) (*model.Role, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		return nil, errors.New("role not found")
	}

	if req.Name != role.Name {
		if existing, _ := s.roleRepo.FindByName(req.Name); existing != nil {
			return nil, ErrRoleNameExists
		}
	}

	role.Name = req.Name
	role.Description = req.Description
	role.Permissions = nil
	if err := s.roleRepo.Update(role); err != nil {
		return nil, err
	}
	if err := s.roleRepo.ReplacePermissions(roleID, toRolePermissions(roleID, req.Permissions)); err != nil {
		return nil, err
	}

	// Cascade to every user holding this role.
	users, err := s.userRepo.FindByRoleID(roleID)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if err := s.userRepo.ReplacePermissions(user.ID, toUserPermissions(req.Permissions)); err != nil {
			log.Error().Err(err).Str("user_id", user.ID.String()).Uint("role_id", roleID).
				Msg("role permission cascade failed for user")
			return nil, err
		}
	}
	log.Info().Uint("role_id", roleID).Int("users", len(users)).Msg("role permissions cascaded")

	return s.roleRepo.FindByID(roleID)
}

func (s *roleService) DeleteRole(roleID uint) error {
	users, err := s.userRepo.FindByRoleID(roleID)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return fmt.Errorf("role is still assigned to %d user(s)", len(users))
	}
	return s.roleRepo.Delete(roleID)
}

func (s *roleService) GetAllRoles() ([]model.Role, error) {
	return s.roleRepo.FindAll()
}

func (s *roleService) GetRoleByID(roleID uint) (*model.Role, error) {
	return s.roleRepo.FindByID(roleID)
}

func toRolePermissions(roleID uint, inputs []PermissionInput) []model.RolePermission {
	out := make([]model.RolePermission, len(inputs))
	for i, input := range inputs {
		out[i] = model.RolePermission{
			RoleID: roleID,
			Area:   input.Area,
			URL:    input.URL,
			Actions: model.Actions{
				CanView:   input.CanView,
				CanAdd:    input.CanAdd,
				CanEdit:   input.CanEdit,
				CanDelete: input.CanDelete,
			},
		}
	}
	return out
}

func toUserPermissions(inputs []PermissionInput) []model.Permission {
	out := make([]model.Permission, len(inputs))
	for i, input := range inputs {
		out[i] = model.Permission{
			Area: input.Area,
			URL:  input.URL,
			Actions: model.Actions{
				CanView:   input.CanView,
				CanAdd:    input.CanAdd,
				CanEdit:   input.CanEdit,
				CanDelete: input.CanDelete,
			},
		}
	}
	return out
}
