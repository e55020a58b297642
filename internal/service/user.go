package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/repository"
	"github.com/iliyamo/cinema-management/internal/utils"
)

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByUserName(ctx context.Context, userName string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ExistsByUserName(ctx context.Context, userName string) (bool, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id uint64) error
}

// UserTicketChecker reports whether a user has purchased tickets, which
// blocks account deletion.
type UserTicketChecker interface {
	ExistsForUser(ctx context.Context, userID uint64) (bool, error)
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	UserName  string
	FirstName string
	LastName  string
	Password  string
	Role      string
}

// UpdateUserInput carries the mutable user fields.
type UpdateUserInput struct {
	FirstName string
	LastName  string
	Role      string
}

// UserService validates and executes user operations.
type UserService struct {
	store      UserStore
	tickets    UserTicketChecker
	msgs       *domain.Catalog
	bcryptCost int
}

// NewUserService constructs a UserService. bcryptCost comes from config.
func NewUserService(store UserStore, tickets UserTicketChecker, msgs *domain.Catalog, bcryptCost int) *UserService {
	return &UserService{store: store, tickets: tickets, msgs: msgs, bcryptCost: bcryptCost}
}

func validRole(role string) bool {
	switch role {
	case model.RoleAdmin, model.RoleSuperUser, model.RoleUser:
		return true
	}
	return false
}

// GetAll returns every user.
func (s *UserService) GetAll(ctx context.Context) ([]model.User, error) {
	return s.store.List(ctx)
}

// GetByID wraps a single user, or a not-found envelope.
func (s *UserService) GetByID(ctx context.Context, id uint64) (domain.Result[model.User], error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.NotFound[model.User](s.msgs.Get(domain.MsgUserNotFound)), nil
		}
		return domain.Result[model.User]{}, err
	}
	return domain.OK(*u), nil
}

// GetByUserName looks up a user for login. Unlike the envelope
// operations this returns the raw record because the auth handler needs
// the password hash.
func (s *UserService) GetByUserName(ctx context.Context, userName string) (*model.User, error) {
	return s.store.GetByUserName(ctx, strings.ToLower(strings.TrimSpace(userName)))
}

// Register validates and creates a new account. The password is stored
// as a bcrypt hash only.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.Result[model.User], error) {
	userName := strings.ToLower(strings.TrimSpace(in.UserName))
	if userName == "" {
		return domain.Invalid[model.User](s.msgs.Get(domain.MsgUserNameRequired)), nil
	}
	if in.Password == "" {
		return domain.Invalid[model.User](s.msgs.Get(domain.MsgUserPasswordRequired)), nil
	}
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	if !validRole(role) {
		return domain.Invalid[model.User](s.msgs.Get(domain.MsgUserRoleUnknown)), nil
	}
	taken, err := s.store.ExistsByUserName(ctx, userName)
	if err != nil {
		return domain.Result[model.User]{}, err
	}
	if taken {
		return domain.Conflict[model.User](s.msgs.Get(domain.MsgUserNameTaken)), nil
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return domain.Result[model.User]{}, err
	}
	u := &model.User{
		UserName:     userName,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Conflict[model.User](s.msgs.Get(domain.MsgUserNameTaken)), nil
		}
		return domain.Result[model.User]{}, err
	}
	return domain.OK(*u), nil
}

// Update rewrites a user's names and role.
func (s *UserService) Update(ctx context.Context, id uint64, in UpdateUserInput) (domain.Result[model.User], error) {
	if !validRole(in.Role) {
		return domain.Invalid[model.User](s.msgs.Get(domain.MsgUserRoleUnknown)), nil
	}
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.NotFound[model.User](s.msgs.Get(domain.MsgUserNotFound)), nil
		}
		return domain.Result[model.User]{}, err
	}
	existing.FirstName = strings.TrimSpace(in.FirstName)
	existing.LastName = strings.TrimSpace(in.LastName)
	existing.Role = in.Role
	if err := s.store.Update(ctx, existing); err != nil {
		return domain.Result[model.User]{}, err
	}
	return domain.OK(*existing), nil
}

// Delete removes an account together with its refresh tokens. Accounts
// holding purchased tickets cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id uint64) (domain.Result[model.User], error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.NotFound[model.User](s.msgs.Get(domain.MsgUserNotFound)), nil
		}
		return domain.Result[model.User]{}, err
	}
	has, err := s.tickets.ExistsForUser(ctx, id)
	if err != nil {
		return domain.Result[model.User]{}, err
	}
	if has {
		return domain.Conflict[model.User](s.msgs.Get(domain.MsgUserHasTickets)), nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return domain.Result[model.User]{}, err
	}
	return domain.OK(*existing), nil
}
