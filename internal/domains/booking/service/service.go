package service

import (
	"context"
	"fmt"
	"time"

	"agenda/config"
	"agenda/infras/gateway"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	appointmentModel "agenda/internal/domains/appointment/model"
	appointmentService "agenda/internal/domains/appointment/service"
	"agenda/internal/domains/booking/model"
	"agenda/internal/domains/booking/model/dto"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const cacheBookingSession = "booking:session"

type Booking interface {
	Start(ctx context.Context, req dto.StartSessionRequest) (dto.SessionResponse, error)
	BeginEdit(ctx context.Context, req dto.EditSessionRequest) (dto.SessionResponse, error)
	Current(ctx context.Context) (dto.SessionResponse, error)
	Toggle(ctx context.Context, req dto.ToggleSlotRequest) (dto.SessionResponse, error)
	ConfirmTimes(ctx context.Context) (dto.SessionResponse, error)
	Reselect(ctx context.Context) (dto.SessionResponse, error)
	Submit(ctx context.Context, req dto.SubmitRequest) (dto.SubmitResponse, error)
	Cancel(ctx context.Context) error
}

type serviceImpl struct {
	gateway      gateway.Gateway
	appointments appointmentService.Appointment
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(gw gateway.Gateway, appointments appointmentService.Appointment, kafkaClient kafka.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		gateway:      gw,
		appointments: appointments,
		kafka:        kafkaClient,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Start opens a fresh session for one calendar day. The free slots of that
// day are captured as the session's offerable set, so later toggles validate
// against a stable snapshot. When availability cannot be computed the session
// still opens, with nothing offerable.
func (s *serviceImpl) Start(ctx context.Context, req dto.StartSessionRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StartSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	if accountID == constant.Empty {
		return res, failure.MissingSession //nolint:wrapcheck
	}

	day, err := timezone.Parse(constant.DateFormat, req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be in YYYY-MM-DD format") //nolint:wrapcheck
	}

	offerable := []string{}

	availability, availErr := s.appointments.Availability(ctx, req.Date)
	if availErr != nil {
		log.Error().Err(availErr).Str("date", req.Date).Msg("failed to compute availability, session starts with no offerable slots")
	} else if availability.Free != nil {
		offerable = availability.Free
	}

	now := timezone.Now()
	session := model.Session{
		ID:        uuid.New().String(),
		AccountID: accountID,
		State:     model.StateSelectingTimes,
		Date:      day,
		Offerable: offerable,
		Selected:  []string{},
		StartedAt: now,
		UpdatedAt: now,
	}

	if err = s.saveSession(ctx, session); err != nil {
		return res, err
	}

	res.FromModel(session)

	return res, nil
}

// BeginEdit opens a session over an existing appointment. The draft and
// selection are pre-populated from the record, and the appointment's own
// slots stay offerable even though the mirror counts them as booked.
func (s *serviceImpl) BeginEdit(ctx context.Context, req dto.EditSessionRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BeginEdit")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	if accountID == constant.Empty {
		return res, failure.MissingSession //nolint:wrapcheck
	}

	appointment, err := s.appointments.Find(ctx, req.AppointmentID)
	if err != nil {
		return res, err
	}

	date := timezone.Format(appointment.Date, constant.DateFormat)

	availability, err := s.appointments.Availability(ctx, date)
	if err != nil {
		return res, err
	}

	offerable := availability.Free
	for _, slot := range appointment.Slots {
		if !shared.Contains(offerable, slot) {
			offerable = shared.SortedInsert(offerable, slot)
		}
	}

	now := timezone.Now()
	session := model.Session{
		ID:        uuid.New().String(),
		AccountID: accountID,
		State:     model.StateFillingDetails,
		Date:      appointment.Date,
		Offerable: offerable,
		Selected:  appointment.Slots,
		Draft: model.Draft{
			ClientName:    appointment.ClientName,
			Contact:       appointment.Contact,
			Whatsapp:      appointment.Whatsapp,
			ServiceTypeID: appointment.ServiceTypeID,
		},
		EditingID: appointment.ID,
		StartedAt: now,
		UpdatedAt: now,
	}

	if err = s.saveSession(ctx, session); err != nil {
		return res, err
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Current(ctx context.Context) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CurrentSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.loadSession(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Toggle(ctx context.Context, req dto.ToggleSlotRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.loadSession(ctx)
	if err != nil {
		return res, err
	}

	if err = session.Toggle(req.Slot); err != nil {
		return res, err
	}

	if err = s.saveSession(ctx, session); err != nil {
		return res, err
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) ConfirmTimes(ctx context.Context) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmTimes")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.loadSession(ctx)
	if err != nil {
		return res, err
	}

	if err = session.ConfirmTimes(); err != nil {
		return res, err
	}

	if err = s.saveSession(ctx, session); err != nil {
		return res, err
	}

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Reselect(ctx context.Context) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reselect")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.loadSession(ctx)
	if err != nil {
		return res, err
	}

	if err = session.Reselect(); err != nil {
		return res, err
	}

	if err = s.saveSession(ctx, session); err != nil {
		return res, err
	}

	res.FromModel(session)

	return res, nil
}

// Submit writes the session to the backend. Editing updates the one existing
// record; a fresh session books every selected slot as its own appointment,
// in parallel, and reports the outcome per slot. Slots that fail stay
// selected so the operator can retry without losing the draft.
func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitRequest) (res dto.SubmitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.loadSession(ctx)
	if err != nil {
		return res, err
	}

	session.Draft = req.ToDraft()

	if err = session.BeginSubmit(); err != nil {
		return res, err
	}

	if err = s.saveSession(ctx, session); err != nil {
		return res, err
	}

	if session.IsEdit() {
		return s.submitEdit(ctx, session)
	}

	return s.submitCreate(ctx, session)
}

func (s *serviceImpl) Cancel(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	if accountID == constant.Empty {
		return failure.MissingSession //nolint:wrapcheck
	}

	if err = s.cache.Delete(ctx, shared.BuildCacheKey(cacheBookingSession, accountID)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking session")

		return fmt.Errorf("failed to delete booking session: %w", err)
	}

	return nil
}

func (s *serviceImpl) submitEdit(ctx context.Context, session model.Session) (res dto.SubmitResponse, err error) {
	updated, err := s.gateway.UpdateAppointment(ctx, session.EditingID, gateway.UpdateAppointmentRequest{
		Date:          session.Date,
		Slots:         session.Selected,
		ClientName:    session.Draft.ClientName,
		Contact:       session.Draft.Contact,
		Whatsapp:      session.Draft.Whatsapp,
		ServiceTypeID: session.Draft.ServiceTypeID,
	})
	if err != nil {
		log.Error().Err(err).Str("id", session.EditingID).Msg("failed to update appointment")

		session.FailSubmit(session.Selected)

		if saveErr := s.saveSession(ctx, session); saveErr != nil {
			log.Error().Err(saveErr).Msg("failed to save booking session after failed update")
		}

		var sessionRes dto.SessionResponse
		sessionRes.FromModel(session)

		res.Completed = false
		res.Session = &sessionRes
		res.FromOutcomes([]model.SlotOutcome{{AppointmentID: session.EditingID, Error: err.Error()}})

		return res, nil
	}

	record := appointmentModel.FromGateway(updated)
	record.AccountID = session.AccountID
	s.appointments.Upsert(ctx, record)

	s.publishEvent(ctx, appointmentModel.Event{
		Type:          appointmentModel.EventTypeUpdated,
		AppointmentID: updated.ID,
		AccountID:     session.AccountID,
		Date:          updated.Date,
		Slots:         updated.Slots,
		OccurredAt:    timezone.Now(),
	})

	s.finishSession(ctx, session.AccountID)

	res.Completed = true
	res.FromOutcomes([]model.SlotOutcome{{AppointmentID: updated.ID}})

	return res, nil
}

func (s *serviceImpl) submitCreate(ctx context.Context, session model.Session) (res dto.SubmitResponse, err error) {
	outcomes := make([]model.SlotOutcome, len(session.Selected))

	var group errgroup.Group

	for i, slot := range session.Selected {
		group.Go(func() error {
			created, createErr := s.gateway.CreateAppointment(ctx, gateway.CreateAppointmentRequest{
				AccountID:     session.AccountID,
				Date:          session.Date,
				Slots:         []string{slot},
				ClientName:    session.Draft.ClientName,
				Contact:       session.Draft.Contact,
				Whatsapp:      session.Draft.Whatsapp,
				ServiceTypeID: session.Draft.ServiceTypeID,
			})
			if createErr != nil {
				log.Error().Err(createErr).Str("slot", slot).Msg("failed to create appointment")

				outcomes[i] = model.SlotOutcome{Slot: slot, Error: createErr.Error()}

				return fmt.Errorf("failed to create appointment for %s: %w", slot, createErr)
			}

			outcomes[i] = model.SlotOutcome{Slot: slot, AppointmentID: created.ID}

			record := appointmentModel.FromGateway(created)
			record.AccountID = session.AccountID
			s.appointments.Upsert(ctx, record)

			s.publishEvent(ctx, appointmentModel.Event{
				Type:          appointmentModel.EventTypeCreated,
				AppointmentID: created.ID,
				AccountID:     session.AccountID,
				Date:          created.Date,
				Slots:         created.Slots,
				OccurredAt:    timezone.Now(),
			})

			return nil
		})
	}

	if groupErr := group.Wait(); groupErr != nil {
		log.Error().Err(groupErr).Msg("submit finished with failed slots")
	}

	res.FromOutcomes(outcomes)

	remaining := []string{}
	for _, outcome := range outcomes {
		if outcome.Error != constant.Empty {
			remaining = append(remaining, outcome.Slot)
		}
	}

	if len(remaining) == 0 {
		s.finishSession(ctx, session.AccountID)

		res.Completed = true

		return res, nil
	}

	session.FailSubmit(remaining)

	if saveErr := s.saveSession(ctx, session); saveErr != nil {
		log.Error().Err(saveErr).Msg("failed to save booking session after partial submit")
	}

	if refreshErr := s.appointments.Refresh(ctx); refreshErr != nil {
		log.Error().Err(refreshErr).Msg("failed to refresh appointments after partial submit")
	}

	var sessionRes dto.SessionResponse
	sessionRes.FromModel(session)

	res.Completed = false
	res.Session = &sessionRes

	return res, nil
}

// finishSession closes out a completed submit: the session is dropped and the
// mirror re-fetched so reads reflect what the backend actually stored.
func (s *serviceImpl) finishSession(ctx context.Context, accountID string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheBookingSession, accountID)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking session")
	}

	if err := s.appointments.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("failed to refresh appointments after submit")
	}
}

func (s *serviceImpl) loadSession(ctx context.Context) (session model.Session, err error) {
	accountID, _ := ctx.Value(constant.ContextKeyAccountID).(string)
	if accountID == constant.Empty {
		return session, failure.MissingSession //nolint:wrapcheck
	}

	err = s.cache.Get(ctx, shared.BuildCacheKey(cacheBookingSession, accountID), &session)
	if err != nil {
		return session, failure.NotFound("no active booking session") //nolint:wrapcheck
	}

	return session, nil
}

func (s *serviceImpl) saveSession(ctx context.Context, session model.Session) error {
	session.UpdatedAt = timezone.Now()

	key := shared.BuildCacheKey(cacheBookingSession, session.AccountID)

	if err := s.cache.Save(ctx, key, session, s.cfg.Booking.SessionTTLSeconds); err != nil {
		log.Error().Err(err).Msg("failed to save booking session")

		return fmt.Errorf("failed to save booking session: %w", err)
	}

	return nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event appointmentModel.Event) {
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
