// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/internal/dto"
	"github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"
	"github.com/haierkeys/fast-note-history-service/pkg/logger"
	"github.com/haierkeys/fast-note-history-service/pkg/timex"
	"github.com/haierkeys/fast-note-history-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CredentialVerifier checks login credentials and returns the matching user.
// It returns code.ErrorUserLoginFailed when the credentials do not match.
// CredentialVerifier 登录凭证校验接口
type CredentialVerifier interface {
	Verify(ctx context.Context, credentials, password string) (*domain.User, error)
}

// passwordVerifier looks the user up by email or username and checks the bcrypt hash
type passwordVerifier struct {
	userRepo domain.UserRepository
}

// NewPasswordVerifier 创建默认的密码校验器
func NewPasswordVerifier(userRepo domain.UserRepository) CredentialVerifier {
	return &passwordVerifier{userRepo: userRepo}
}

func (v *passwordVerifier) Verify(ctx context.Context, credentials, password string) (*domain.User, error) {
	var user *domain.User
	var err error
	if util.IsValidEmail(credentials) {
		user, err = v.userRepo.GetByEmail(ctx, credentials)
	} else {
		user, err = v.userRepo.GetByUsername(ctx, credentials)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不暴露用户是否存在
			return nil, code.ErrorUserLoginFailed
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if !util.CheckPasswordHash(user.Password, password) {
		return nil, code.ErrorUserLoginFailed
	}
	return user, nil
}

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册
	Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error)

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)

	// ChangePassword checks the current password and stores the new one
	// ChangePassword 修改密码
	ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error

	// UpdateAvatar 修改头像，返回更新后的用户信息
	UpdateAvatar(ctx context.Context, uid int64, params *dto.UserAvatarRequest) (*dto.UserDTO, error)

	// GetAllUIDs 获取所有用户的 UID
	GetAllUIDs(ctx context.Context) ([]int64, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	verifier     CredentialVerifier
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, verifier CredentialVerifier, tokenManager app.TokenManager, lg *zap.Logger, config *ServiceConfig) UserService {
	if verifier == nil {
		verifier = NewPasswordVerifier(userRepo)
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &userService{
		userRepo:     userRepo,
		verifier:     verifier,
		tokenManager: tokenManager,
		logger:       lg,
		config:       config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       user.UID,
		Email:     user.Email,
		Username:  user.Username,
		Avatar:    user.Avatar,
		UpdatedAt: timex.Time(user.UpdatedAt),
		CreatedAt: timex.Time(user.CreatedAt),
	}
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error) {
	// 检查注册是否启用
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}

	// 验证用户名格式
	if !util.IsValidUsername(params.Username) {
		return nil, code.ErrorUserUsernameNotValid
	}

	// 验证密码一致性
	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorUserPasswordNotMatch
	}

	// 检查邮箱是否已存在
	emailUser, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if emailUser != nil {
		return nil, code.ErrorUserEmailAlreadyExists
	}

	// 检查用户名是否已存在
	nameUser, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if nameUser != nil {
		return nil, code.ErrorUserAlreadyExists
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorPasswordHash.WithDetails(err.Error())
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Username: params.Username,
		Email:    params.Email,
		Password: password,
	})
	if err != nil {
		s.logger.Error("create user failed", zap.String(logger.FieldMethod, "UserService.Register"), zap.Error(err))
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	token, err := s.tokenManager.Generate(user.UID, user.Username, "")
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}

	out := s.domainToDTO(user)
	out.Token = token
	return out, nil
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error) {
	user, err := s.verifier.Verify(ctx, params.Credentials, params.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenManager.Generate(user.UID, user.Username, clientIP)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}

	out := s.domainToDTO(user)
	out.Token = token
	return out, nil
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(user), nil
}

// ChangePassword 修改密码
func (s *userService) ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error {
	if params.Password != params.ConfirmPassword {
		return code.ErrorUserPasswordNotMatch
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if !util.CheckPasswordHash(user.Password, params.OldPassword) {
		return code.ErrorUserOldPasswordFailed
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return code.ErrorPasswordHash.WithDetails(err.Error())
	}

	if err := s.userRepo.UpdatePassword(ctx, uid, password); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotFound
		}
		s.logger.Error("update password failed", zap.String(logger.FieldMethod, "UserService.ChangePassword"), zap.Int64(logger.FieldUID, uid), zap.Error(err))
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// UpdateAvatar 修改头像
func (s *userService) UpdateAvatar(ctx context.Context, uid int64, params *dto.UserAvatarRequest) (*dto.UserDTO, error) {
	if err := s.userRepo.UpdateAvatar(ctx, uid, params.URL); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.GetInfo(ctx, uid)
}

// GetAllUIDs 获取所有用户的 UID
func (s *userService) GetAllUIDs(ctx context.Context) ([]int64, error) {
	uids, err := s.userRepo.GetAllUIDs(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return uids, nil
}

var _ UserService = (*userService)(nil)
var _ CredentialVerifier = (*passwordVerifier)(nil)
