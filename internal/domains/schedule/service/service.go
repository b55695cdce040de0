package service

import (
	"context"
	"fmt"

	"agenda/config"
	"agenda/infras/gateway"
	"agenda/infras/otel"
	"agenda/internal/domains/schedule/model"
	"agenda/internal/domains/schedule/model/dto"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"

	"github.com/rs/zerolog/log"
)

const cacheGetSchedule = "schedule:get"

type Schedule interface {
	Get(ctx context.Context) (dto.ScheduleResponse, error)
	Offerable(ctx context.Context) ([]string, error)
}

type serviceImpl struct {
	gateway gateway.Gateway
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(gw gateway.Gateway, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Schedule {
	return &serviceImpl{
		gateway: gw,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSchedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	schedule, err := s.fetch(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(schedule)

	return res, nil
}

// Offerable returns the slot labels the account can offer on any day,
// generated from the configured working hours.
func (s *serviceImpl) Offerable(ctx context.Context) (slots []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Offerable")
	defer scope.End()
	defer scope.TraceIfError(err)

	schedule, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return schedule.GenerateSlots(), nil
}

func (s *serviceImpl) fetch(ctx context.Context) (schedule model.Schedule, err error) {
	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	cacheKey := shared.BuildCacheKey(cacheGetSchedule, accountID)

	err = s.cache.Get(ctx, cacheKey, &schedule)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedule")

		return schedule, nil
	}

	remote, err := s.gateway.FetchSchedule(ctx, accountID)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch schedule")

		return schedule, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	schedule = model.FromGateway(remote)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, schedule, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule to cache")
		}
	}()

	return schedule, nil
}
