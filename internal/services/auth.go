package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/promptops/platform-api/internal/platform/apierr"
	"github.com/promptops/platform-api/internal/platform/ctxutil"
	"github.com/promptops/platform-api/internal/platform/logger"
	"github.com/promptops/platform-api/internal/repos"
	"github.com/promptops/platform-api/internal/types"
	"github.com/promptops/platform-api/internal/validate"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password, displayName string) (*types.User, error)
	Login(ctx context.Context, username, password string) (string, *types.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() int
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	tokenService TokenService
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, tokenService TokenService) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

func (as *authService) Register(ctx context.Context, username, email, password, displayName string) (*types.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)

	if vErrs := validate.Register(username, email, password, displayName); len(vErrs) > 0 {
		return nil, vErrs
	}

	var created *types.User
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := as.userRepo.UsernameExists(ctx, tx, username)
		if err != nil {
			return apierr.Internal(err)
		}
		if taken {
			return apierr.Conflict("username already taken")
		}
		taken, err = as.userRepo.EmailExists(ctx, tx, email)
		if err != nil {
			return apierr.Internal(err)
		}
		if taken {
			return apierr.Conflict("email already taken")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return apierr.Internal(err)
		}

		user := &types.User{
			ID:           uuid.New(),
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
			DisplayName:  displayName,
			Status:       types.UserStatusActive,
		}
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return apierr.Internal(err)
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("User registered", "user_id", created.ID.String())
	return created, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (string, *types.User, error) {
	username = strings.TrimSpace(username)

	if vErrs := validate.Login(username, password); len(vErrs) > 0 {
		return "", nil, vErrs
	}

	users, err := as.userRepo.GetByUsernames(ctx, nil, []string{username})
	if err != nil {
		return "", nil, apierr.Internal(err)
	}
	// Unknown username and bad password fail identically so the response
	// does not reveal which usernames exist.
	if len(users) == 0 {
		return "", nil, apierr.Unauthorized("invalid username or password")
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apierr.Unauthorized("invalid username or password")
	}

	token, err := as.tokenService.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, apierr.Internal(err)
	}
	as.log.Info("User logged in", "user_id", user.ID.String())
	return token, user, nil
}

// SetContextFromToken verifies the bearer token and attaches the caller's
// identity to the context. The user must still exist and not be banned;
// a token that outlives its user is worthless.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	userID, username, err := as.tokenService.Verify(tokenString)
	if err != nil {
		return ctx, err
	}

	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return ctx, apierr.Internal(err)
	}
	if len(users) == 0 {
		return ctx, apierr.Unauthorized("unknown user")
	}
	if users[0].Status == types.UserStatusBanned {
		return ctx, apierr.Unauthorized("user is banned")
	}

	rd := &ctxutil.RequestData{
		UserID:      userID,
		Username:    username,
		TokenString: tokenString,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) AccessTTL() int {
	return int(as.tokenService.AccessTTL().Seconds())
}
