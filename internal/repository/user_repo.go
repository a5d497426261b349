package repository

import (
	"strings"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	Delete(id uuid.UUID) error
	FindAll() ([]model.User, error)
	FindByRoleID(roleID uint) ([]model.User, error)
	UpdateLastLogin(userID uuid.UUID) error
	ReplacePermissions(userID uuid.UUID, permissions []model.Permission) error

	// Recipient pools for the notification fan-out.
	FindAdmins() ([]model.User, error)
	FindPermitted(area, action string) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Role").Preload("Permissions").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Role").Preload("Permissions").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Preload("Role").Preload("Permissions").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) FindByRoleID(roleID uint) ([]model.User, error) {
	var users []model.User
	if err := r.db.Where("role_id = ?", roleID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) UpdateLastLogin(userID uuid.UUID) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("last_login_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// ReplacePermissions rewrites the user's permission rows in one transaction.
// Used both on user save and by the role cascade.
func (r *userRepo) ReplacePermissions(userID uuid.UUID, permissions []model.Permission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Permission{}).Error; err != nil {
			return err
		}
		for i := range permissions {
			permissions[i].ID = 0
			permissions[i].UserID = userID
		}
		if len(permissions) == 0 {
			return nil
		}
		return tx.Create(&permissions).Error
	})
}

// FindAdmins returns every admin-class login identity: explicit flag or a role
// whose name is on the admin allow-list.
func (r *userRepo) FindAdmins() ([]model.User, error) {
	adminNames := make([]string, len(model.AdminRoleNames))
	copy(adminNames, model.AdminRoleNames)

	var users []model.User
	err := r.db.
		Joins("LEFT JOIN roles ON roles.id = users.role_id").
		Where("users.is_active = ?", true).
		Where("users.is_admin = ? OR LOWER(roles.name) IN ?", true, adminNames).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// FindPermitted returns active staff whose permission rows case-insensitively
// contain the functional area and carry the requested action flag. "Projects"
// matches a lookup for "projects" and vice versa.
func (r *userRepo) FindPermitted(area, action string) ([]model.User, error) {
	column, ok := actionColumn(action)
	if !ok {
		return nil, gorm.ErrInvalidField
	}

	var users []model.User
	err := r.db.
		Preload("Role").
		Joins("JOIN permissions ON permissions.user_id = users.id").
		Where("users.is_active = ?", true).
		Where("LOWER(permissions.area) LIKE ?", "%"+strings.ToLower(area)+"%").
		Where(column+" = ?", true).
		Distinct("users.*").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// actionColumn maps an action name onto its permission column. The column name
// is interpolated into SQL, so the closed mapping here is load-bearing.
func actionColumn(action string) (string, bool) {
	switch action {
	case model.ActionView:
		return "permissions.can_view", true
	case model.ActionAdd:
		return "permissions.can_add", true
	case model.ActionEdit:
		return "permissions.can_edit", true
	case model.ActionDelete:
		return "permissions.can_delete", true
	}
	return "", false
}
