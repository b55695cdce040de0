package service

import (
	"context"
	"fmt"

	"agenda/config"
	"agenda/infras/gateway"
	"agenda/infras/otel"
	"agenda/internal/domains/servicetype/model"
	"agenda/internal/domains/servicetype/model/dto"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	"agenda/shared/failure"

	"github.com/rs/zerolog/log"
)

const cacheGetAllServiceTypes = "servicetype:gets"

type ServiceType interface {
	GetAll(ctx context.Context) (dto.ListServiceTypesResponse, error)
	Create(ctx context.Context, req dto.CreateServiceTypeRequest) (dto.ServiceTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	gateway gateway.Gateway
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(gw gateway.Gateway, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) ServiceType {
	return &serviceImpl{
		gateway: gw,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.ListServiceTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllServiceTypes")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	cacheKey := shared.BuildCacheKey(cacheGetAllServiceTypes, accountID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service types")

		return res, nil
	}

	remote, err := s.gateway.ListServiceTypes(ctx, accountID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list service types")

		return res, fmt.Errorf("failed to list service types: %w", err)
	}

	res.FromModels(model.FromGatewayList(remote))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service types to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceTypeRequest) (res dto.ServiceTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateServiceType")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	if accountID == constant.Empty {
		return res, failure.MissingSession //nolint:wrapcheck
	}

	created, err := s.gateway.CreateServiceType(ctx, accountID, req.Name)
	if err != nil {
		log.Error().Err(err).Msg("failed to create service type")

		return res, fmt.Errorf("failed to create service type: %w", err)
	}

	res.FromModel(model.FromGateway(created))

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllServiceTypes)
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteServiceType")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.gateway.DeleteServiceType(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete service type")

		return fmt.Errorf("failed to delete service type: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllServiceTypes)
	}()

	return nil
}
