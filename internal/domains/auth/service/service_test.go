package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/gateway"
	gatewayMocks "agenda/infras/gateway/mocks"
	"agenda/infras/jwt"
	"agenda/infras/otel/mocks"
	"agenda/internal/domains/auth/model/dto"
	"agenda/internal/domains/auth/service"
	"agenda/shared/failure"
)

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := gatewayMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.Name = "agenda"
	cfg.Session.Secret = "test-secret"
	cfg.Session.ExpireMin = 60

	jwtService := jwt.New(cfg)
	svc := service.New(mockGateway, jwtService, cfg, mockOtel)

	req := dto.LoginRequest{
		Email:    "maria@example.com",
		Password: "secret-password",
	}

	t.Run("successful login issues a session token", func(t *testing.T) {
		mockGateway.EXPECT().
			Login(gomock.Any(), gateway.LoginRequest{
				Email:    req.Email,
				Password: req.Password,
			}).
			Return(gateway.LoginResult{
				AccountID: "account-1",
				Email:     req.Email,
				Name:      "Maria",
			}, nil)

		res, err := svc.Login(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "account-1", res.AccountID)
		assert.Equal(t, "Maria", res.Name)
		assert.NotEmpty(t, res.Token)

		claims, err := jwtService.ValidateSessionToken(res.Token)
		assert.NoError(t, err)
		assert.Equal(t, "account-1", claims.AccountID)
		assert.Equal(t, req.Email, claims.Email)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		mockGateway.EXPECT().
			Login(gomock.Any(), gomock.Any()).
			Return(gateway.LoginResult{}, failure.Gateway(http.StatusUnauthorized, "invalid credentials"))

		_, err := svc.Login(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("gateway unreachable", func(t *testing.T) {
		mockGateway.EXPECT().
			Login(gomock.Any(), gomock.Any()).
			Return(gateway.LoginResult{}, failure.GatewayUnavailable)

		_, err := svc.Login(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := gatewayMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.ExpireMin = 60

	svc := service.New(mockGateway, jwt.New(cfg), cfg, mockOtel)

	req := dto.ResetPasswordRequest{
		Email:       "maria@example.com",
		Code:        "12345678",
		NewPassword: "new-password",
	}

	t.Run("forwards the code and new password", func(t *testing.T) {
		mockGateway.EXPECT().
			ResetPassword(gomock.Any(), gateway.ResetPasswordRequest{
				Email:       req.Email,
				Code:        req.Code,
				NewPassword: req.NewPassword,
			}).
			Return(nil)

		err := svc.ResetPassword(context.Background(), req)

		assert.NoError(t, err)
	})

	t.Run("rejected code keeps the backend status", func(t *testing.T) {
		mockGateway.EXPECT().
			ResetPassword(gomock.Any(), gomock.Any()).
			Return(failure.Gateway(http.StatusBadRequest, "invalid verification code"))

		err := svc.ResetPassword(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
