package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptops/platform-api/internal/platform/apierr"
	"github.com/promptops/platform-api/internal/repos"
	"github.com/promptops/platform-api/internal/types"
	"github.com/promptops/platform-api/internal/validate"
)

func newProjectService(t *testing.T) (ProjectService, *gorm.DB) {
	t.Helper()
	log := newTestLogger(t)
	db := newTestDB(t)
	projectRepo := repos.NewProjectRepo(db, log)
	userRepo := repos.NewUserRepo(db, log)
	return NewProjectService(db, log, projectRepo, userRepo), db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *types.User {
	t.Helper()
	user := &types.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Status:       types.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestProjectCreate(t *testing.T) {
	ps, db := newProjectService(t)
	owner := seedUser(t, db, "alice")

	project, err := ps.Create(context.Background(), "My Project", "notes", owner.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if project.Status != types.ProjectStatusActive {
		t.Fatalf("status: want=%s got=%s", types.ProjectStatusActive, project.Status)
	}
	if project.OwnerID != owner.ID {
		t.Fatalf("owner: want=%s got=%s", owner.ID, project.OwnerID)
	}
	if project.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}
}

func TestProjectCreateUnknownOwner(t *testing.T) {
	ps, _ := newProjectService(t)

	_, err := ps.Create(context.Background(), "My Project", "", uuid.New())
	if !apierr.IsStatus(err, 404) {
		t.Fatalf("unknown owner: want=404 got=%d (%v)", apierr.StatusOf(err), err)
	}
}

func TestProjectCreateBlankName(t *testing.T) {
	ps, db := newProjectService(t)
	owner := seedUser(t, db, "alice")

	_, err := ps.Create(context.Background(), "   ", "", owner.ID)
	var fieldErrs validate.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected field errors, got %v", err)
	}
}

func TestProjectListByOwner(t *testing.T) {
	ps, db := newProjectService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if _, err := ps.Create(context.Background(), "Alpha", "", alice.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := ps.Create(context.Background(), "Beta", "", alice.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := ps.Create(context.Background(), "Gamma", "", bob.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}

	projects, err := ps.ListByOwner(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("projects: want=2 got=%d", len(projects))
	}
	for _, p := range projects {
		if p.OwnerID != alice.ID {
			t.Fatalf("foreign project in listing: %s", p.ID)
		}
	}

	empty, err := ps.ListByOwner(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ListByOwner empty: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("want empty slice, got %v", empty)
	}
}

func TestProjectUpdate(t *testing.T) {
	ps, db := newProjectService(t)
	owner := seedUser(t, db, "alice")

	project, err := ps.Create(context.Background(), "Before", "old", owner.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	updated, err := ps.Update(context.Background(), project.ID, "After", "new")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "After" || updated.Description != "new" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.OwnerID != owner.ID {
		t.Fatalf("owner changed on update")
	}

	if _, err := ps.Update(context.Background(), uuid.New(), "X", ""); !apierr.IsStatus(err, 404) {
		t.Fatalf("update missing: want=404 got=%d", apierr.StatusOf(err))
	}
}

func TestProjectDelete(t *testing.T) {
	ps, db := newProjectService(t)
	owner := seedUser(t, db, "alice")

	project, err := ps.Create(context.Background(), "Doomed", "", owner.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := ps.Delete(context.Background(), project.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := ps.GetByID(context.Background(), project.ID); !apierr.IsStatus(err, 404) {
		t.Fatalf("deleted project still readable")
	}
	if err := ps.Delete(context.Background(), project.ID); !apierr.IsStatus(err, 404) {
		t.Fatalf("double delete: want=404 got=%d", apierr.StatusOf(err))
	}
}
