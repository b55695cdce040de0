package service

import (
	"context"
	"fmt"

	"agenda/config"
	"agenda/infras/gateway"
	"agenda/infras/jwt"
	"agenda/infras/otel"
	"agenda/internal/domains/auth/model/dto"
	"agenda/shared/constant"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

type serviceImpl struct {
	gateway gateway.Gateway
	jwt     jwt.JWT
	cfg     *config.Config
	otel    otel.Otel
}

func New(gw gateway.Gateway, jwtService jwt.JWT, cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		gateway: gw,
		jwt:     jwtService,
		cfg:     cfg,
		otel:    otel,
	}
}

// Login verifies credentials against the remote backend and issues the local
// session token the middleware reads on every request.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	result, err := s.gateway.Login(ctx, gateway.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to log in")

		return res, fmt.Errorf("failed to log in: %w", err)
	}

	token, err := s.jwt.GenerateSessionToken(result.AccountID, result.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session token")

		return res, fmt.Errorf("failed to generate session token: %w", err)
	}

	res.Token = token
	res.AccountID = result.AccountID
	res.Email = result.Email
	res.Name = result.Name

	return res, nil
}

// ResetPassword forwards the mailed verification code and the replacement
// password to the remote backend, which owns the credential store.
func (s *serviceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResetPassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.gateway.ResetPassword(ctx, gateway.ResetPasswordRequest{
		Email:       req.Email,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	}); err != nil {
		log.Error().Err(err).Msg("failed to reset password")

		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}
