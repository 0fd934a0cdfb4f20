package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/justsurfingit/chamba-match/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu      sync.Mutex
	entries []models.SystemLog
}

func (r *recordingPublisher) PublishLog(_ context.Context, e models.SystemLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func TestSavedJobs(t *testing.T) {
	s := NewJobService(newTestDB(t))
	ctx := context.Background()
	owner := "juan.perez@student.edu"

	j1 := job("Dev", "Acme")
	j1.ID = "ai-job-1-0"
	j1.Tags = []string{"Go"}
	j2 := job("QA", "Beta")
	j2.ID = "ai-job-1-1"

	_, err := s.SaveJob(ctx, owner, j1)
	require.NoError(t, err)
	_, err = s.SaveJob(ctx, owner, j2)
	require.NoError(t, err)
	_, err = s.SaveJob(ctx, "otro@student.edu", j1)
	require.NoError(t, err)

	// Saving again overwrites instead of duplicating.
	j1.Title = "Dev Senior"
	_, err = s.SaveJob(ctx, owner, j1)
	require.NoError(t, err)

	jobs, err := s.ListJobs(ctx, owner)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	byID := map[string]models.Job{}
	for _, j := range jobs {
		byID[j.ID] = j
	}
	assert.Equal(t, "Dev Senior", byID["ai-job-1-0"].Title)
	assert.Equal(t, []string{"Go"}, byID["ai-job-1-0"].Tags)

	ok, err := s.IsSaved(ctx, owner, "ai-job-1-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.RemoveJob(ctx, owner, "ai-job-1-1"))
	assert.ErrorIs(t, s.RemoveJob(ctx, owner, "ai-job-1-1"), ErrSavedJobNotFound)

	jobs, err = s.ListJobs(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	other, err := s.ListJobs(ctx, "otro@student.edu")
	require.NoError(t, err)
	assert.Len(t, other, 1)

	done, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.ListJobs(done, owner)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdminSources(t *testing.T) {
	pub := &recordingPublisher{}
	a := NewAdminService(newTestDB(t), pub, nil)
	ctx := context.Background()

	sources, err := a.Sources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 3)
	assert.Equal(t, []string{"s1", "s2", "s3"}, []string{sources[0].ID, sources[1].ID, sources[2].ID})

	src, err := a.AddSource(ctx, "  getOnBoard ")
	require.NoError(t, err)
	assert.Equal(t, "getOnBoard", src.Name)
	assert.Equal(t, "G", src.Icon)
	assert.Equal(t, "Pendiente", src.LastRun)
	assert.True(t, src.Active)
	assert.True(t, strings.HasPrefix(src.ID, "s-"))

	_, err = a.AddSource(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidSourceName)

	toggled, err := a.ToggleSource(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, toggled.Active)

	active, err := a.ActiveSources(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 4)

	_, err = a.ToggleSource(ctx, "nope")
	assert.ErrorIs(t, err, ErrSourceNotFound)

	require.NoError(t, a.DeleteSource(ctx, "s1"))
	assert.ErrorIs(t, a.DeleteSource(ctx, "s1"), ErrSourceNotFound)

	require.NoError(t, a.MarkSourceRun(ctx, "s3", "2026-01-01 10:00"))
	sources, err = a.Sources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 3)

	logs, err := a.Logs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "Fuente eliminada ID: s1", logs[0].Message)
	assert.Equal(t, "Fuente añadida: getOnBoard", logs[1].Message)

	require.Len(t, pub.entries, 2)
	assert.NotZero(t, pub.entries[0].ID)
}

func TestAdminUsers(t *testing.T) {
	a := NewAdminService(newTestDB(t), nil, nil)
	ctx := context.Background()

	students, err := a.Students(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	for _, u := range students {
		assert.Equal(t, models.RoleStudent, u.Role)
	}

	require.NoError(t, a.DeleteUser(ctx, students[0].ID))
	assert.ErrorIs(t, a.DeleteUser(ctx, students[0].ID), ErrUserNotFound)

	students, err = a.Students(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)

	logs, err := a.Logs(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, logs[0].Message, "Usuario eliminado ID:")
}

func TestAuthLogin(t *testing.T) {
	a := NewAuthService(newTestDB(t))
	ctx := context.Background()

	u, err := a.Login(ctx, "Juan.Perez@student.edu")
	require.NoError(t, err)
	assert.Equal(t, "Juan Perez", u.Name)
	assert.Equal(t, models.RoleStudent, u.Role)

	admin, err := a.Login(ctx, "ops-admin@chamba.pe")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "ops-admin", admin.Name)

	again, err := a.Login(ctx, "ops-admin@chamba.pe")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	_, err = a.Login(ctx, "not an email")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestAuthRegisterAndProfile(t *testing.T) {
	a := NewAuthService(newTestDB(t))
	ctx := context.Background()

	u, err := a.Register(ctx, "Rosa Quispe", "rosa@uni.edu.pe")
	require.NoError(t, err)
	assert.Equal(t, "Rosa Quispe", u.Name)

	phone, gender := "987654321", "Femenino"
	u, err = a.UpdateProfile(ctx, "rosa@uni.edu.pe", ProfileUpdate{Phone: &phone, Gender: &gender})
	require.NoError(t, err)
	assert.Equal(t, "987654321", u.Phone)
	assert.Equal(t, "Femenino", u.Gender)
	assert.Equal(t, "Rosa Quispe", u.Name)

	_, err = a.UpdateProfile(ctx, "ghost@uni.edu.pe", ProfileUpdate{Phone: &phone})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRoleForEmail(t *testing.T) {
	assert.Equal(t, models.RoleAdmin, RoleForEmail("ADMIN@x.pe"))
	assert.Equal(t, models.RoleStudent, RoleForEmail("maria.lopez@student.edu"))
}

func TestNotifications(t *testing.T) {
	n := NewNotificationService(newTestDB(t))
	ctx := context.Background()
	juan, maria := "juan.perez@student.edu", "maria.lopez@student.edu"

	list, err := n.List(ctx, juan)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Entrevista Agendada", list[0].Title)
	assert.False(t, list[0].Read)
	assert.True(t, list[1].Read)

	require.NoError(t, n.MarkRead(ctx, juan, list[0].ID))
	require.NoError(t, n.MarkRead(ctx, juan, list[0].ID))
	list, err = n.List(ctx, juan)
	require.NoError(t, err)
	assert.True(t, list[0].Read)

	// Other owners keep their own read state.
	list, err = n.List(ctx, maria)
	require.NoError(t, err)
	assert.False(t, list[0].Read)

	assert.ErrorIs(t, n.MarkRead(ctx, juan, 999), ErrNotificationNotFound)
}
