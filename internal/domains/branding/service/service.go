package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/infras/s3"
	"agenda/internal/domains/branding/model/dto"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const logoDirectory = "logos"

// Branding manages the account's logo on object storage.
type Branding interface {
	UploadLogo(ctx context.Context, file multipart.File, header *multipart.FileHeader) (dto.UploadLogoResponse, error)
	DeleteLogo(ctx context.Context, req dto.DeleteLogoRequest) error
}

type serviceImpl struct {
	s3   s3.S3
	cfg  *config.Config
	otel otel.Otel
}

func New(storage s3.S3, cfg *config.Config, otel otel.Otel) Branding {
	return &serviceImpl{
		s3:   storage,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) UploadLogo(ctx context.Context, file multipart.File, header *multipart.FileHeader) (res dto.UploadLogoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadLogo")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	if accountID == constant.Empty {
		return res, failure.MissingSession //nolint:wrapcheck
	}

	req := dto.UploadLogoRequest{File: *header}
	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	fileName := uuid.New().String() + filepath.Ext(header.Filename)
	directory := path.Join(logoDirectory, accountID)

	url, err := s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, directory, file, header, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload logo")

		return res, fmt.Errorf("failed to upload logo: %w", err)
	}

	res.URL = url

	return res, nil
}

func (s *serviceImpl) DeleteLogo(ctx context.Context, req dto.DeleteLogoRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteLogo")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	if accountID == constant.Empty {
		return failure.MissingSession //nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName

	objectName := s.s3.GetObjectNameFromURL(bucketName, req.URL)
	if objectName == constant.Empty {
		return failure.BadRequestFromString("url does not belong to this storage") //nolint:wrapcheck
	}

	if err = s.s3.DeleteFile(ctx, bucketName, constant.Empty, objectName); err != nil {
		log.Error().Err(err).Msg("failed to delete logo")

		return fmt.Errorf("failed to delete logo: %w", err)
	}

	return nil
}
