package service

import (
	"context"
	"fmt"
	"time"

	"agenda/config"
	"agenda/infras/gateway"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/internal/domains/appointment/model"
	"agenda/internal/domains/appointment/model/dto"
	"agenda/internal/domains/appointment/repository"
	scheduleService "agenda/internal/domains/schedule/service"
	"agenda/shared"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Appointment interface {
	Refresh(ctx context.Context) error
	Upsert(ctx context.Context, appointment model.Appointment)
	List(ctx context.Context) (dto.ListAppointmentsResponse, error)
	DayView(ctx context.Context, date string) (dto.DayViewResponse, error)
	Availability(ctx context.Context, date string) (dto.AvailabilityResponse, error)
	Find(ctx context.Context, id string) (model.Appointment, error)
	DeleteSlot(ctx context.Context, id, slot string) error
}

type serviceImpl struct {
	gateway  gateway.Gateway
	repo     repository.Appointment
	schedule scheduleService.Schedule
	kafka    kafka.Client
	cfg      *config.Config
	otel     otel.Otel
}

func New(gw gateway.Gateway, repo repository.Appointment, schedule scheduleService.Schedule, kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Appointment {
	return &serviceImpl{
		gateway:  gw,
		repo:     repo,
		schedule: schedule,
		kafka:    kafkaClient,
		cfg:      cfg,
		otel:     otel,
	}
}

// Refresh replaces the account's mirror with the current state of the remote
// backend. The backend lists appointments across accounts, so the result is
// narrowed to the session account before it lands in the mirror.
func (s *serviceImpl) Refresh(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	remote, err := s.gateway.ListAppointments(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list appointments")

		return fmt.Errorf("failed to list appointments: %w", err)
	}

	owned := make([]gateway.Appointment, 0, len(remote))
	for _, appointment := range remote {
		if appointment.AccountID == accountID {
			owned = append(owned, appointment)
		}
	}

	s.repo.Replace(accountID, model.FromGatewayList(owned))

	return nil
}

// Upsert writes one record straight into the mirror, so reads landing between
// a successful backend write and its reconciling re-fetch already see it.
func (s *serviceImpl) Upsert(ctx context.Context, appointment model.Appointment) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()

	s.repo.Upsert(appointment.AccountID, appointment)
}

func (s *serviceImpl) List(ctx context.Context) (res dto.ListAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.Refresh(ctx); err != nil {
		return res, err
	}

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)

	res.FromModels(s.repo.GetAll(accountID))

	return res, nil
}

func (s *serviceImpl) DayView(ctx context.Context, date string) (res dto.DayViewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DayView")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := timezone.Parse(constant.DateFormat, date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be in YYYY-MM-DD format") //nolint:wrapcheck
	}

	accountID, err := s.ensureLoaded(ctx)
	if err != nil {
		return res, err
	}

	res.FromModels(date, s.repo.ByDate(accountID, day))

	return res, nil
}

// Availability computes the free slots of one day: the offerable set from the
// working hours minus whatever the mirror already holds as booked. A day with
// no appointments simply offers the full set.
func (s *serviceImpl) Availability(ctx context.Context, date string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := timezone.Parse(constant.DateFormat, date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be in YYYY-MM-DD format") //nolint:wrapcheck
	}

	accountID, err := s.ensureLoaded(ctx)
	if err != nil {
		return res, err
	}

	offerable, err := s.schedule.Offerable(ctx)
	if err != nil {
		return res, err
	}

	booked := s.repo.BookedSlots(accountID, day)

	free := make([]string, 0, len(offerable))
	for _, slot := range offerable {
		if !shared.Contains(booked, slot) {
			free = append(free, slot)
		}
	}

	res.Date = date
	res.Offerable = offerable
	res.Booked = booked
	res.Free = free

	return res, nil
}

func (s *serviceImpl) Find(ctx context.Context, id string) (appointment model.Appointment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Find")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, err := s.ensureLoaded(ctx)
	if err != nil {
		return appointment, err
	}

	appointment, found := s.repo.Get(accountID, id)
	if !found {
		return appointment, failure.NotFound("appointment not found") //nolint:wrapcheck
	}

	return appointment, nil
}

// DeleteSlot removes one booked time from an appointment on the remote
// backend. The removal lands in the mirror immediately; the re-fetch that
// follows reconciles it with what the backend actually stored.
func (s *serviceImpl) DeleteSlot(ctx context.Context, id, slot string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, err := s.ensureLoaded(ctx)
	if err != nil {
		return err
	}

	appointment, found := s.repo.Get(accountID, id)
	if !found {
		return failure.NotFound("appointment not found") //nolint:wrapcheck
	}

	if !shared.Contains(appointment.Slots, slot) {
		return failure.BadRequestFromString("slot is not booked on this appointment") //nolint:wrapcheck
	}

	if err = s.gateway.DeleteSlot(ctx, id, slot); err != nil {
		log.Error().Err(err).Str("id", id).Str("slot", slot).Msg("failed to delete slot")

		return fmt.Errorf("failed to delete slot: %w", err)
	}

	s.repo.RemoveSlot(accountID, id, slot)

	s.publishEvent(ctx, model.Event{
		Type:          model.EventTypeSlotDeleted,
		AppointmentID: id,
		AccountID:     accountID,
		Date:          appointment.Date,
		Slots:         []string{slot},
		OccurredAt:    timezone.Now(),
	})

	if err = s.Refresh(ctx); err != nil {
		return err
	}

	return nil
}

func (s *serviceImpl) ensureLoaded(ctx context.Context) (accountID string, err error) {
	accountID, _ = ctx.Value(constant.ContextKeyAccountID).(string)

	if accountID == constant.Empty {
		return constant.Empty, failure.MissingSession //nolint:wrapcheck
	}

	if !s.repo.Loaded(accountID) {
		if err = s.Refresh(ctx); err != nil {
			return constant.Empty, err
		}
	}

	return accountID, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event model.Event) {
	if !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		message := kafka.Message{
			Key:   event.AppointmentID,
			Value: event,
		}

		if err := s.kafka.SendMessages(c, constant.KafkaTopicAppointmentEvents, message); err != nil {
			log.Error().Err(err).Str("type", event.Type).Msg("failed to publish appointment event")
		}
	}()
}
