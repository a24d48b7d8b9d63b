package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/efficience-dental/agenda-api/internal/model"
	"github.com/efficience-dental/agenda-api/internal/repository"
	"github.com/efficience-dental/agenda-api/pkg/auth"
	apperrors "github.com/efficience-dental/agenda-api/pkg/errors"
	"github.com/efficience-dental/agenda-api/pkg/security"
)

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
	tokens auth.JWTService
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher, tokens auth.JWTService) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		// Do not leak whether the account exists.
		return nil, apperrors.Unauthorized(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		User:        user,
	}, nil
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}
