package roles

import (
	"context"
	"errors"
	"strings"

	"staffpanel/internal/domain/auth"
)

var (
	ErrInvalidName        = errors.New("role name is required")
	ErrInvalidPermissions = errors.New("permission value contains undefined bits")
	ErrOutsideHierarchy   = errors.New("role is outside your hierarchy")
	ErrRoleInUse          = errors.New("role is still assigned")
	ErrNotFound           = errors.New("role not found")
)

type StoreAPI interface {
	List(ctx context.Context) ([]Role, error)
	Get(ctx context.Context, roleID string) (*Role, error)
	NextIndex(ctx context.Context) (int, error)
	Create(ctx context.Context, role Role) (string, error)
	Update(ctx context.Context, role Role) (bool, error)
	Delete(ctx context.Context, roleID string) error
	InUse(ctx context.Context, roleID string) (bool, error)
}

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.Store.List(ctx)
}

func (s *Service) Get(ctx context.Context, roleID string) (*Role, error) {
	return s.Store.Get(ctx, roleID)
}

func (s *Service) Create(ctx context.Context, actor *auth.Principal, input RoleInput) (*Role, error) {
	role, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if input.Index == nil {
		next, err := s.Store.NextIndex(ctx)
		if err != nil {
			return nil, err
		}
		role.Index = next
	}

	if err := s.enforceHierarchy(ctx, actor, role.Index); err != nil {
		return nil, err
	}

	id, err := s.Store.Create(ctx, role)
	if err != nil {
		return nil, err
	}
	role.ID = id
	return &role, nil
}

func (s *Service) Update(ctx context.Context, actor *auth.Principal, roleID string, input RoleInput) (*Role, error) {
	role, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	if input.Index == nil {
		return nil, errors.New("role index is required")
	}

	existing, err := s.Store.Get(ctx, roleID)
	if err != nil {
		return nil, ErrNotFound
	}

	// Both the slot the role occupies and the slot it moves to must sit
	// below the actor.
	if err := s.enforceHierarchy(ctx, actor, existing.Index); err != nil {
		return nil, err
	}
	if err := s.enforceHierarchy(ctx, actor, role.Index); err != nil {
		return nil, err
	}

	role.ID = roleID
	updated, err := s.Store.Update(ctx, role)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}
	return &role, nil
}

func (s *Service) Delete(ctx context.Context, actor *auth.Principal, roleID string) error {
	existing, err := s.Store.Get(ctx, roleID)
	if err != nil {
		return ErrNotFound
	}

	if err := s.enforceHierarchy(ctx, actor, existing.Index); err != nil {
		return err
	}

	inUse, err := s.Store.InUse(ctx, roleID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrRoleInUse
	}

	return s.Store.Delete(ctx, roleID)
}

func (s *Service) validate(input RoleInput) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(input.Name))
	if name == "" {
		return Role{}, ErrInvalidName
	}
	if input.Permissions < 0 || auth.Bits(input.Permissions)&^auth.AllBits() != 0 {
		return Role{}, ErrInvalidPermissions
	}
	role := Role{Name: name, Permissions: input.Permissions}
	if input.Index != nil {
		role.Index = *input.Index
	}
	return role, nil
}

// enforceHierarchy allows superusers everywhere and otherwise requires the
// target index to be strictly below (greater than) the actor's own role
// index.
func (s *Service) enforceHierarchy(ctx context.Context, actor *auth.Principal, targetIndex int) error {
	if actor == nil {
		return ErrOutsideHierarchy
	}
	if actor.Superuser {
		return nil
	}
	if actor.RoleID == "" {
		return ErrOutsideHierarchy
	}
	actorRole, err := s.Store.Get(ctx, actor.RoleID)
	if err != nil {
		return err
	}
	if targetIndex <= actorRole.Index {
		return ErrOutsideHierarchy
	}
	return nil
}
