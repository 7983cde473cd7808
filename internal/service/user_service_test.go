package service

import (
	"context"
	"errors"
	"testing"

	"github.com/haierkeys/fast-note-history-service/internal/domain"
	"github.com/haierkeys/fast-note-history-service/internal/dto"
	"github.com/haierkeys/fast-note-history-service/pkg/app"
	"github.com/haierkeys/fast-note-history-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTokenManager struct {
	app.TokenManager
	err error
}

func (f *fakeTokenManager) Generate(uid int64, nickname, ip string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + nickname, nil
}

type stubVerifier struct {
	user *domain.User
}

func (v *stubVerifier) Verify(ctx context.Context, credentials, password string) (*domain.User, error) {
	if v.user == nil {
		return nil, code.ErrorUserLoginFailed
	}
	return v.user, nil
}

func newUserFixture(enabled bool) (*memUserRepo, UserService) {
	repo := newMemUserRepo()
	cfg := &ServiceConfig{User: UserServiceConfig{RegisterIsEnable: enabled}}
	return repo, NewUserService(repo, nil, &fakeTokenManager{}, zap.NewNop(), cfg)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	_, svc := newUserFixture(true)

	req := &dto.UserCreateRequest{Email: "a@example.com", Username: "alice", Password: "pw", ConfirmPassword: "pw"}
	user, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "token-alice", user.Token)
	assert.NotZero(t, user.UID)

	tests := []struct {
		name string
		req  dto.UserCreateRequest
		want *code.Code
	}{
		{"bad username", dto.UserCreateRequest{Email: "b@example.com", Username: "a!", Password: "p", ConfirmPassword: "p"}, code.ErrorUserUsernameNotValid},
		{"password mismatch", dto.UserCreateRequest{Email: "b@example.com", Username: "bob", Password: "p", ConfirmPassword: "q"}, code.ErrorUserPasswordNotMatch},
		{"email taken", dto.UserCreateRequest{Email: "a@example.com", Username: "bob", Password: "p", ConfirmPassword: "p"}, code.ErrorUserEmailAlreadyExists},
		{"username taken", dto.UserCreateRequest{Email: "b@example.com", Username: "alice", Password: "p", ConfirmPassword: "p"}, code.ErrorUserAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, disabled := newUserFixture(false)
	_, err = disabled.Register(ctx, req)
	assert.ErrorIs(t, err, code.ErrorUserRegisterIsDisable)
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	_, svc := newUserFixture(true)
	_, err := svc.Register(ctx, &dto.UserCreateRequest{Email: "a@example.com", Username: "alice", Password: "secret", ConfirmPassword: "secret"})
	require.NoError(t, err)

	for _, credentials := range []string{"alice", "a@example.com"} {
		user, err := svc.Login(ctx, &dto.UserLoginRequest{Credentials: credentials, Password: "secret"}, "127.0.0.1")
		require.NoError(t, err, credentials)
		assert.Equal(t, "token-alice", user.Token)
	}

	_, err = svc.Login(ctx, &dto.UserLoginRequest{Credentials: "alice", Password: "wrong"}, "")
	assert.ErrorIs(t, err, code.ErrorUserLoginFailed)
	_, err = svc.Login(ctx, &dto.UserLoginRequest{Credentials: "nobody", Password: "secret"}, "")
	assert.ErrorIs(t, err, code.ErrorUserLoginFailed)
}

func TestUserService_CustomVerifierAndInfo(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	u, _ := repo.Create(ctx, &domain.User{Username: "sso", Email: "sso@example.com"})

	tm := &fakeTokenManager{}
	svc := NewUserService(repo, &stubVerifier{user: u}, tm, zap.NewNop(), &ServiceConfig{})
	user, err := svc.Login(ctx, &dto.UserLoginRequest{Credentials: "anything", Password: "x"}, "")
	require.NoError(t, err)
	assert.Equal(t, u.UID, user.UID)

	tm.err = errors.New("sign failed")
	_, err = svc.Login(ctx, &dto.UserLoginRequest{Credentials: "anything", Password: "x"}, "")
	assert.ErrorIs(t, err, code.ErrorTokenGenerate)

	info, err := svc.GetInfo(ctx, u.UID)
	require.NoError(t, err)
	assert.Equal(t, "sso", info.Username)
	assert.Empty(t, info.Token)

	_, err = svc.GetInfo(ctx, 42)
	assert.ErrorIs(t, err, code.ErrorUserNotFound)

	uids, err := svc.GetAllUIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{u.UID}, uids)
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	_, svc := newUserFixture(true)
	u, err := svc.Register(ctx, &dto.UserCreateRequest{Email: "a@example.com", Username: "alice", Password: "old", ConfirmPassword: "old"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.UserChangePasswordRequest
		uid  int64
		want *code.Code
	}{
		{"mismatch", dto.UserChangePasswordRequest{OldPassword: "old", Password: "a", ConfirmPassword: "b"}, u.UID, code.ErrorUserPasswordNotMatch},
		{"wrong current password", dto.UserChangePasswordRequest{OldPassword: "nope", Password: "new", ConfirmPassword: "new"}, u.UID, code.ErrorUserOldPasswordFailed},
		{"unknown user", dto.UserChangePasswordRequest{OldPassword: "old", Password: "new", ConfirmPassword: "new"}, 42, code.ErrorUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.ChangePassword(ctx, tt.uid, &tt.req), tt.want)
		})
	}

	require.NoError(t, svc.ChangePassword(ctx, u.UID, &dto.UserChangePasswordRequest{OldPassword: "old", Password: "new", ConfirmPassword: "new"}))

	_, err = svc.Login(ctx, &dto.UserLoginRequest{Credentials: "alice", Password: "old"}, "")
	assert.ErrorIs(t, err, code.ErrorUserLoginFailed)
	_, err = svc.Login(ctx, &dto.UserLoginRequest{Credentials: "alice", Password: "new"}, "")
	assert.NoError(t, err)
}

func TestUserService_UpdateAvatar(t *testing.T) {
	ctx := context.Background()
	_, svc := newUserFixture(true)
	u, err := svc.Register(ctx, &dto.UserCreateRequest{Email: "a@example.com", Username: "alice", Password: "pw", ConfirmPassword: "pw"})
	require.NoError(t, err)

	info, err := svc.UpdateAvatar(ctx, u.UID, &dto.UserAvatarRequest{URL: "https://img.example.com/alice.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/alice.png", info.Avatar)

	_, err = svc.UpdateAvatar(ctx, 42, &dto.UserAvatarRequest{URL: "https://img.example.com/x.png"})
	assert.ErrorIs(t, err, code.ErrorUserNotFound)
}
