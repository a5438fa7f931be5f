package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrEmailTaken is returned when a profile update targets an email
// already registered to another user
var ErrEmailTaken = errors.New("email already in use")

type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	ListUsers(ctx context.Context, query ListUsersQuery) (*UserListResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *service) ListUsers(ctx context.Context, query ListUsersQuery) (*UserListResponse, error) {
	list, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(list))
	for i := range list {
		responses = append(responses, list[i].ToResponse())
	}

	return &UserListResponse{
		Users: responses,
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	}, nil
}

func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.repo.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = *req.Email
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
