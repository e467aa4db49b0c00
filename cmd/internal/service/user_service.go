package service

import (
	"context"
	"errors"
	"stickynotes/cmd/internal/contract"
	"stickynotes/cmd/internal/domain/entity"
	"stickynotes/cmd/internal/utils"
	"stickynotes/cmd/internal/utils/apierror"
	"stickynotes/cmd/internal/utils/uid"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

const RoleUser = "user"

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *entity.User) error
}

type TokenIssuer interface {
	Issue(ownerID int64, role string) (string, error)
}

// DefaultUserService is the register/login flow. It only hands out tokens,
// the note endpoints never look a user up again.
type DefaultUserService struct {
	UserRepo UserRepository
	Issuer   TokenIssuer
	Validate *validator.Validate
	HashCost int
}

func NewUserService(userRepo UserRepository, issuer TokenIssuer, validate *validator.Validate) *DefaultUserService {
	return &DefaultUserService{
		UserRepo: userRepo,
		Issuer:   issuer,
		Validate: validate,
		HashCost: bcrypt.DefaultCost,
	}
}

func (u *DefaultUserService) Register(ctx context.Context, req *contract.RegisterRequest) (*contract.AuthResponse, apierror.ErrorResponse) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := u.Validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	found, err := u.UserRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return nil, apierror.InternalServerError
	}

	if found {
		return nil, apierror.ExistingEmailError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), u.HashCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		ID:           uid.Generate(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = u.UserRepo.Create(ctx, user); err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}
	return u.authenticated(user)
}

func (u *DefaultUserService) Login(ctx context.Context, req *contract.LoginRequest) (*contract.AuthResponse, apierror.ErrorResponse) {
	req.Email = normalizeEmail(req.Email)
	if err := u.Validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := u.UserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	// Unknown emails and wrong passwords look the same to the caller.
	if user == nil {
		return nil, apierror.CredentialsMismatchError
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, apierror.CredentialsMismatchError
	}

	if err != nil {
		log.Errorf("failed to compare password hash of user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return u.authenticated(user)
}

func (u *DefaultUserService) authenticated(user *entity.User) (*contract.AuthResponse, apierror.ErrorResponse) {
	token, err := u.Issuer.Issue(user.ID, RoleUser)
	if err != nil {
		log.Errorf("failed to issue token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return &contract.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func toUserResponse(user *entity.User) *contract.UserResponse {
	return &contract.UserResponse{
		ID:        strconv.FormatInt(user.ID, 10),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
