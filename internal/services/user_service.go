package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
	"github.com/SIH-2025/edusafe-service/internal/validator"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 50
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *userService) Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	students, err := s.repo.User().TopStudents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	out := make([]*LeaderboardEntry, len(students))
	for i, u := range students {
		out[i] = &LeaderboardEntry{
			Rank:     i + 1,
			ID:       u.ID,
			Username: u.Username,
			Points:   u.Points,
			Role:     string(u.Role),
		}
	}
	return out, nil
}

func (s *userService) GetProfile(ctx context.Context, actor *models.User) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, actor.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "user", ID: actor.ID}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req *UpdateProfileRequest, actor *models.User) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, actor.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "user", ID: actor.ID}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var dobErr *validator.ValidationError
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.BloodGroup != nil {
		user.BloodGroup = req.BloodGroup
	}
	if req.ParentMobile != nil {
		user.ParentMobile = req.ParentMobile
	}
	if req.DateOfBirth != nil {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			dobErr = &validator.ValidationError{Field: "dateOfBirth", Message: "Valid date of birth is required", Value: *req.DateOfBirth}
		} else {
			user.DateOfBirth = &parsed
		}
	}
	if req.ProfilePhoto != nil {
		user.ProfilePhoto = req.ProfilePhoto
	}

	// Students must end up with a complete, valid profile; other roles take
	// the patch as-is. Every violated constraint is reported, not just the
	// first.
	if user.Role == models.RoleStudent {
		errs := validateStudentProfile(user)
		if dobErr != nil {
			errs = append(errs, *dobErr)
		}
		if len(errs) > 0 {
			return nil, errs
		}
	} else if dobErr != nil {
		return nil, ValidationErrors{*dobErr}
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("Profile updated", "user_id", user.ID)

	return user, nil
}

// validateStudentProfile checks the merged profile against the student
// requirements, aggregating every violation.
func validateStudentProfile(user *models.User) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(user.Username) == "" {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "Valid username is required"})
	}
	if user.Age == nil || *user.Age < 1 || *user.Age > 120 {
		errs = append(errs, validator.ValidationError{Field: "age", Message: "Valid age is required"})
	}
	if user.BloodGroup == nil || !models.IsValidBloodGroup(*user.BloodGroup) {
		errs = append(errs, validator.ValidationError{Field: "bloodGroup", Message: "Valid blood group is required"})
	}
	if user.ParentMobile == nil || !validator.IsValidParentMobile(*user.ParentMobile) {
		errs = append(errs, validator.ValidationError{Field: "parentMobile", Message: "Valid parent mobile is required"})
	}
	if user.DateOfBirth == nil {
		errs = append(errs, validator.ValidationError{Field: "dateOfBirth", Message: "Valid date of birth is required"})
	}

	return errs
}
