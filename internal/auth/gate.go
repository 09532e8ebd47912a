package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
)

// Role is the privilege level an operation demands.
type Role int

const (
	RoleAnonymous Role = iota
	RoleAuthenticated
	RoleStaff
	RoleSuperuser
)

// ContextCallerKey is the echo context key under which the gate stores the
// resolved caller record.
const ContextCallerKey = "caller"

// Operation identifiers, one per guarded endpoint.
const (
	OpProfile        = "auth.profile"
	OpChangePassword = "auth.change_password"
	OpAdminAccess    = "admin.access"
	OpAdminStats     = "admin.stats"
	OpAdminUsers     = "admin.users"
	OpAdminContent   = "admin.content"
)

// permissions is the static table mapping operations to the minimum role
// required. Unknown operations fail closed.
var permissions = map[string]Role{
	OpProfile:        RoleAuthenticated,
	OpChangePassword: RoleAuthenticated,
	OpAdminAccess:    RoleSuperuser,
	OpAdminStats:     RoleStaff,
	OpAdminUsers:     RoleStaff,
	OpAdminContent:   RoleStaff,
}

// UserLoader resolves an account by primary key.
type UserLoader interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// Gate decides allow/deny for each operation before any handler logic runs.
type Gate struct {
	users UserLoader
}

// NewGate creates a permission gate backed by the given user loader.
func NewGate(users UserLoader) *Gate {
	return &Gate{users: users}
}

// Require returns middleware enforcing the role the operation declares.
// It expects the JWT middleware to have already parsed the bearer token;
// unauthenticated callers are rejected with 401 before any 403 decision.
func (g *Gate) Require(op string) echo.MiddlewareFunc {
	required, ok := permissions[op]
	if !ok {
		required = RoleSuperuser
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := g.resolveCaller(c)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			if !allowed(user, required) {
				var denied error
				if required == RoleSuperuser {
					denied = apperrors.ErrSuperuserRequired
				} else {
					denied = apperrors.ErrStaffRequired
				}
				httpErr := apperrors.MapErrorToHTTP(denied)
				return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(ContextCallerKey, user)
			return next(c)
		}
	}
}

// resolveCaller extracts the user ID from the parsed token and loads the
// account, rejecting deactivated accounts.
func (g *Gate) resolveCaller(c echo.Context) (*model.User, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := g.users.FindByID(c.Request().Context(), uint(userIDFloat))
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	if !user.IsActive {
		return nil, apperrors.ErrUnauthenticated
	}

	return user, nil
}

func allowed(user *model.User, required Role) bool {
	switch required {
	case RoleAnonymous, RoleAuthenticated:
		return true
	case RoleStaff:
		return user.IsStaff
	case RoleSuperuser:
		return user.IsSuperuser
	default:
		return false
	}
}

// Caller returns the account the gate stored for this request.
func Caller(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextCallerKey).(*model.User)
	return user, ok
}
