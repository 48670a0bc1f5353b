package roles

import (
	"errors"
	"fmt"
	"strings"

	"auth-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEmptyRoleName = errors.New("role name is empty")

// Engine owns role records and the user-role relation. It is the only
// writer of role membership and the single place role names are
// normalized.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Normalize maps a role name to its canonical uppercase form.
func Normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// EnsureRole returns the role with the given name, creating it if
// absent. Safe under concurrent calls: a duplicate create loses to the
// unique index and falls back to the winner's row.
func (e *Engine) EnsureRole(name string) (*models.Role, error) {
	name = Normalize(name)
	if name == "" {
		return nil, ErrEmptyRoleName
	}

	var role models.Role
	err := e.db.Where(models.Role{Name: name}).
		Attrs(models.Role{ID: uuid.NewString()}).
		FirstOrCreate(&role).Error
	if err != nil {
		// lost a create race, the row exists now
		if ferr := e.db.Where("name = ?", name).First(&role).Error; ferr == nil {
			return &role, nil
		}
		return nil, fmt.Errorf("ensure role %s: %w", name, err)
	}
	return &role, nil
}

// SetUserRole replaces whatever roles the user currently holds with the
// single named role. Removal and add run in one transaction, so a
// failure leaves the previous assignment intact.
func (e *Engine) SetUserRole(user *models.User, roleName string) error {
	role, err := e.EnsureRole(roleName)
	if err != nil {
		return err
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("remove current roles: %w", err)
		}
		link := models.UserRole{UserID: user.ID, RoleID: role.ID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("assign role %s: %w", role.Name, err)
		}
		return nil
	})
}

// GetUserRole returns the user's role, or nil when the user holds none.
// If the single-role invariant is ever transiently broken, the oldest
// assignment wins.
func (e *Engine) GetUserRole(user *models.User) (*models.Role, error) {
	var link models.UserRole
	err := e.db.Where("user_id = ?", user.ID).Order("id").First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up role assignment: %w", err)
	}

	var role models.Role
	if err := e.db.Where("id = ?", link.RoleID).First(&role).Error; err != nil {
		return nil, fmt.Errorf("look up role: %w", err)
	}
	return &role, nil
}
