package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/repositories"
)

func testSlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo backs the auth middleware tests with a static user set.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error { return nil }

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := map[string]*models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (r *fakeUserRepo) AwardPoints(ctx context.Context, userID string, points int) (int, error) {
	u, ok := r.users[userID]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	u.Points += points
	return u.Points, nil
}

func (r *fakeUserRepo) TopStudents(ctx context.Context, limit int) ([]*models.User, error) {
	return nil, nil
}
