package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptops/platform-api/internal/platform/apierr"
	"github.com/promptops/platform-api/internal/platform/logger"
	"github.com/promptops/platform-api/internal/repos"
	"github.com/promptops/platform-api/internal/types"
	"github.com/promptops/platform-api/internal/validate"
)

type ProjectService interface {
	Create(ctx context.Context, name, description string, ownerID uuid.UUID) (*types.Project, error)
	GetByID(ctx context.Context, projectID uuid.UUID) (*types.Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.Project, error)
	Update(ctx context.Context, projectID uuid.UUID, name, description string) (*types.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
}

type projectService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo repos.ProjectRepo
	userRepo    repos.UserRepo
}

func NewProjectService(db *gorm.DB, log *logger.Logger, projectRepo repos.ProjectRepo, userRepo repos.UserRepo) ProjectService {
	return &projectService{
		db:          db,
		log:         log.With("service", "ProjectService"),
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

func (ps *projectService) Create(ctx context.Context, name, description string, ownerID uuid.UUID) (*types.Project, error) {
	name = strings.TrimSpace(name)
	if vErrs := validate.Project(name); len(vErrs) > 0 {
		return nil, vErrs
	}

	owners, err := ps.userRepo.GetByIDs(ctx, nil, []uuid.UUID{ownerID})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if len(owners) == 0 {
		return nil, apierr.NotFound("owner not found with id: %s", ownerID)
	}

	project := &types.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Status:      types.ProjectStatusActive,
	}
	if _, err := ps.projectRepo.Create(ctx, nil, []*types.Project{project}); err != nil {
		return nil, apierr.Internal(err)
	}
	ps.log.Info("Project created", "project_id", project.ID.String(), "owner_id", ownerID.String())
	return project, nil
}

func (ps *projectService) GetByID(ctx context.Context, projectID uuid.UUID) (*types.Project, error) {
	projects, err := ps.projectRepo.GetByIDs(ctx, nil, []uuid.UUID{projectID})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if len(projects) == 0 {
		return nil, apierr.NotFound("project not found with id: %s", projectID)
	}
	return projects[0], nil
}

func (ps *projectService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*types.Project, error) {
	projects, err := ps.projectRepo.GetByOwnerIDs(ctx, nil, []uuid.UUID{ownerID})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if projects == nil {
		projects = []*types.Project{}
	}
	return projects, nil
}

// Update overwrites name and description only; owner and status are never
// touched here.
func (ps *projectService) Update(ctx context.Context, projectID uuid.UUID, name, description string) (*types.Project, error) {
	name = strings.TrimSpace(name)
	if vErrs := validate.Project(name); len(vErrs) > 0 {
		return nil, vErrs
	}

	project, err := ps.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	project.Name = name
	project.Description = description
	if _, err := ps.projectRepo.Update(ctx, nil, project); err != nil {
		return nil, apierr.Internal(err)
	}
	return project, nil
}

// Delete removes the row outright. The DELETED status value exists in the
// enum but the observed contract is a hard delete.
func (ps *projectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	if _, err := ps.GetByID(ctx, projectID); err != nil {
		return err
	}
	if err := ps.projectRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{projectID}); err != nil {
		return apierr.Internal(err)
	}
	ps.log.Info("Project deleted", "project_id", projectID.String())
	return nil
}
