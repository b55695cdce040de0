package service

import (
	"context"
	"fmt"

	"agenda/config"
	"agenda/infras/gateway"
	"agenda/infras/otel"
	"agenda/internal/domains/client/model"
	"agenda/internal/domains/client/model/dto"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	"agenda/shared/failure"

	"github.com/rs/zerolog/log"
)

const cacheGetAllClients = "client:gets"

type Client interface {
	GetAll(ctx context.Context) (dto.ListClientsResponse, error)
	Register(ctx context.Context, req dto.RegisterClientRequest) (dto.ClientResponse, error)
	Update(ctx context.Context, req dto.UpdateClientRequest, id string) (dto.ClientResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	gateway gateway.Gateway
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(gw gateway.Gateway, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Client {
	return &serviceImpl{
		gateway: gw,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.ListClientsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllClients")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	cacheKey := shared.BuildCacheKey(cacheGetAllClients, accountID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for clients")

		return res, nil
	}

	remote, err := s.gateway.ListClients(ctx, accountID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list clients")

		return res, fmt.Errorf("failed to list clients: %w", err)
	}

	res.FromModels(model.FromGatewayList(remote))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save clients to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterClientRequest) (res dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RegisterClient")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	if accountID == constant.Empty {
		return res, failure.MissingSession //nolint:wrapcheck
	}

	created, err := s.gateway.RegisterClient(ctx, gateway.Client{
		AccountID: accountID,
		Name:      req.Name,
		Contact:   req.Contact,
		Whatsapp:  req.Whatsapp,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to register client")

		return res, fmt.Errorf("failed to register client: %w", err)
	}

	res.FromModel(model.FromGateway(created))

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllClients)
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateClientRequest, id string) (res dto.ClientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateClient")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	if accountID == constant.Empty {
		return res, failure.MissingSession //nolint:wrapcheck
	}

	updated, err := s.gateway.UpdateClient(ctx, id, gateway.Client{
		ID:        id,
		AccountID: accountID,
		Name:      req.Name,
		Contact:   req.Contact,
		Whatsapp:  req.Whatsapp,
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update client")

		return res, fmt.Errorf("failed to update client: %w", err)
	}

	res.FromModel(model.FromGateway(updated))

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllClients)
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteClient")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.gateway.DeleteClient(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete client")

		return fmt.Errorf("failed to delete client: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllClients)
	}()

	return nil
}
