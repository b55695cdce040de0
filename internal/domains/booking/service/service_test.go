package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/gateway"
	gatewayMocks "agenda/infras/gateway/mocks"
	kafkaMocks "agenda/infras/kafka/mocks"
	"agenda/infras/otel/mocks"
	appointmentMocks "agenda/internal/domains/appointment/mocks"
	appointmentModel "agenda/internal/domains/appointment/model"
	appointmentDto "agenda/internal/domains/appointment/model/dto"
	"agenda/internal/domains/booking/model"
	"agenda/internal/domains/booking/model/dto"
	"agenda/internal/domains/booking/service"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/timezone"
)

type bookingFixture struct {
	gateway      *gatewayMocks.MockGateway
	appointments *appointmentMocks.MockAppointment
	kafka        *kafkaMocks.MockClient
	cache        *cacheMocks.MockRedisCache
	svc          service.Booking
}

func newBookingFixture(ctrl *gomock.Controller) bookingFixture {
	mockGateway := gatewayMocks.NewMockGateway(ctrl)
	mockAppointments := appointmentMocks.NewMockAppointment(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Booking.SessionTTLSeconds = 1800
	cfg.Kafka.Enable = false

	return bookingFixture{
		gateway:      mockGateway,
		appointments: mockAppointments,
		kafka:        mockKafka,
		cache:        mockCache,
		svc:          service.New(mockGateway, mockAppointments, mockKafka, cfg, mockCache, mockOtel),
	}
}

func sessionContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyAccountID, "account-id")
}

func expectLoadedSession(cache *cacheMocks.MockRedisCache, session model.Session) {
	cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*model.Session) = session
			return nil
		})
}

func selectingSession() model.Session {
	day, _ := timezone.Parse(constant.DateFormat, "2025-03-10")

	return model.Session{
		ID:        "session-id",
		AccountID: "account-id",
		State:     model.StateSelectingTimes,
		Date:      day,
		Offerable: []string{"09:00", "09:30", "10:00"},
		Selected:  []string{},
	}
}

func TestBookingService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name          string
		ctx           context.Context
		req           dto.StartSessionRequest
		setupMock     func()
		wantErr       bool
		wantCode      int
		wantOfferable []string
	}{
		{
			name: "successful start captures free slots",
			ctx:  sessionContext(),
			req:  dto.StartSessionRequest{Date: "2025-03-10"},
			setupMock: func() {
				f.appointments.EXPECT().
					Availability(gomock.Any(), "2025-03-10").
					Return(appointmentDto.AvailabilityResponse{
						Date:      "2025-03-10",
						Offerable: []string{"09:00", "09:30", "10:00"},
						Booked:    []string{"09:30"},
						Free:      []string{"09:00", "10:00"},
					}, nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), 1800).
					Return(nil)
			},
			wantOfferable: []string{"09:00", "10:00"},
		},
		{
			name:      "malformed date",
			ctx:       sessionContext(),
			req:       dto.StartSessionRequest{Date: "10/03/2025"},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "missing account",
			ctx:       context.Background(),
			req:       dto.StartSessionRequest{Date: "2025-03-10"},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "schedule fetch failure still opens, with nothing offerable",
			ctx:  sessionContext(),
			req:  dto.StartSessionRequest{Date: "2025-03-10"},
			setupMock: func() {
				f.appointments.EXPECT().
					Availability(gomock.Any(), "2025-03-10").
					Return(appointmentDto.AvailabilityResponse{}, errors.New("failed to fetch schedule: gateway down"))

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), 1800).
					Return(nil)
			},
			wantOfferable: []string{},
		},
		{
			name: "session save error",
			ctx:  sessionContext(),
			req:  dto.StartSessionRequest{Date: "2025-03-10"},
			setupMock: func() {
				f.appointments.EXPECT().
					Availability(gomock.Any(), "2025-03-10").
					Return(appointmentDto.AvailabilityResponse{Free: []string{"09:00"}}, nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("redis down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Start(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, string(model.StateSelectingTimes), res.State)
				assert.Equal(t, "2025-03-10", res.Date)
				assert.Equal(t, tt.wantOfferable, res.Offerable)
				assert.Empty(t, res.Selected)
			}
		})
	}
}

func TestBookingService_Toggle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name         string
		slot         string
		setupMock    func()
		wantErr      bool
		wantCode     int
		wantSelected []string
	}{
		{
			name: "select a free slot",
			slot: "09:30",
			setupMock: func() {
				expectLoadedSession(f.cache, selectingSession())

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantSelected: []string{"09:30"},
		},
		{
			name: "deselect a selected slot",
			slot: "09:30",
			setupMock: func() {
				session := selectingSession()
				session.Selected = []string{"09:00", "09:30"}
				expectLoadedSession(f.cache, session)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantSelected: []string{"09:00"},
		},
		{
			name: "slot not offerable",
			slot: "23:00",
			setupMock: func() {
				expectLoadedSession(f.cache, selectingSession())
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "no active session",
			slot: "09:00",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Toggle(sessionContext(), dto.ToggleSlotRequest{Slot: tt.slot})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantSelected, res.Selected)
			}
		})
	}
}

func TestBookingService_ConfirmTimes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	t.Run("moves to filling details", func(t *testing.T) {
		session := selectingSession()
		session.Selected = []string{"09:00"}
		expectLoadedSession(f.cache, session)

		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.ConfirmTimes(sessionContext())

		assert.NoError(t, err)
		assert.Equal(t, string(model.StateFillingDetails), res.State)
	})

	t.Run("empty selection is rejected", func(t *testing.T) {
		expectLoadedSession(f.cache, selectingSession())

		_, err := f.svc.ConfirmTimes(sessionContext())

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Reselect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	session := selectingSession()
	session.State = model.StateFillingDetails
	session.Selected = []string{"09:00"}
	session.Draft = model.Draft{ClientName: "Maria"}
	expectLoadedSession(f.cache, session)

	f.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	res, err := f.svc.Reselect(sessionContext())

	assert.NoError(t, err)
	assert.Equal(t, string(model.StateSelectingTimes), res.State)
	assert.Equal(t, "Maria", res.Draft.ClientName)
}

func TestBookingService_Current(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	t.Run("returns the active session", func(t *testing.T) {
		session := selectingSession()
		session.Selected = []string{"09:30"}
		expectLoadedSession(f.cache, session)

		res, err := f.svc.Current(sessionContext())

		assert.NoError(t, err)
		assert.Equal(t, "session-id", res.ID)
		assert.Equal(t, []string{"09:30"}, res.Selected)
	})

	t.Run("idle account has no session", func(t *testing.T) {
		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		_, err := f.svc.Current(sessionContext())

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Submit_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	req := dto.SubmitRequest{
		ClientName: "Maria",
		Contact:    "11 99999-0000",
		Whatsapp:   true,
	}

	t.Run("every slot books as its own appointment", func(t *testing.T) {
		session := selectingSession()
		session.State = model.StateFillingDetails
		session.Selected = []string{"09:00", "09:30"}
		expectLoadedSession(f.cache, session)

		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.gateway.EXPECT().
			CreateAppointment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r gateway.CreateAppointmentRequest) (gateway.Appointment, error) {
				assert.Len(t, r.Slots, 1)
				assert.Equal(t, "Maria", r.ClientName)

				return gateway.Appointment{
					ID:    "apt-" + r.Slots[0],
					Date:  r.Date,
					Slots: r.Slots,
				}, nil
			}).
			Times(2)

		f.appointments.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, record appointmentModel.Appointment) {
				assert.Equal(t, "account-id", record.AccountID)
			}).
			Times(2)

		f.cache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		f.appointments.EXPECT().
			Refresh(gomock.Any()).
			Return(nil)

		res, err := f.svc.Submit(sessionContext(), req)

		assert.NoError(t, err)
		assert.True(t, res.Completed)
		assert.Nil(t, res.Session)
		assert.Len(t, res.Outcomes, 2)
		assert.Equal(t, "apt-09:00", res.Outcomes[0].AppointmentID)
		assert.Equal(t, "apt-09:30", res.Outcomes[1].AppointmentID)
	})

	t.Run("failed slots stay selected with the draft", func(t *testing.T) {
		session := selectingSession()
		session.State = model.StateFillingDetails
		session.Selected = []string{"09:00", "09:30", "10:00"}
		expectLoadedSession(f.cache, session)

		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			Times(2)

		f.gateway.EXPECT().
			CreateAppointment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r gateway.CreateAppointmentRequest) (gateway.Appointment, error) {
				if r.Slots[0] == "09:30" {
					return gateway.Appointment{}, failure.Gateway(http.StatusConflict, "slot already booked")
				}

				return gateway.Appointment{ID: "apt-" + r.Slots[0], Date: r.Date, Slots: r.Slots}, nil
			}).
			Times(3)

		f.appointments.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			Times(2)

		f.appointments.EXPECT().
			Refresh(gomock.Any()).
			Return(nil)

		res, err := f.svc.Submit(sessionContext(), req)

		assert.NoError(t, err)
		assert.False(t, res.Completed)
		assert.Len(t, res.Outcomes, 3)
		assert.Equal(t, "apt-09:00", res.Outcomes[0].AppointmentID)
		assert.Equal(t, "slot already booked", res.Outcomes[1].Error)
		assert.Equal(t, "apt-10:00", res.Outcomes[2].AppointmentID)

		assert.NotNil(t, res.Session)
		assert.Equal(t, string(model.StateFillingDetails), res.Session.State)
		assert.Equal(t, []string{"09:30"}, res.Session.Selected)
		assert.Equal(t, "Maria", res.Session.Draft.ClientName)
	})

	t.Run("submit before confirming times is a conflict", func(t *testing.T) {
		expectLoadedSession(f.cache, selectingSession())

		_, err := f.svc.Submit(sessionContext(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Submit_Edit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	req := dto.SubmitRequest{
		ClientName: "Maria",
		Contact:    "11 99999-0000",
	}

	editSession := func() model.Session {
		session := selectingSession()
		session.State = model.StateFillingDetails
		session.Selected = []string{"09:00", "10:00"}
		session.EditingID = "apt-1"

		return session
	}

	t.Run("successful edit updates the one record", func(t *testing.T) {
		session := editSession()
		expectLoadedSession(f.cache, session)

		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		f.gateway.EXPECT().
			UpdateAppointment(gomock.Any(), "apt-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, id string, r gateway.UpdateAppointmentRequest) (gateway.Appointment, error) {
				assert.Equal(t, []string{"09:00", "10:00"}, r.Slots)

				return gateway.Appointment{ID: id, Date: r.Date, Slots: r.Slots}, nil
			})

		f.appointments.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, record appointmentModel.Appointment) {
				assert.Equal(t, "apt-1", record.ID)
				assert.Equal(t, "account-id", record.AccountID)
			})

		f.cache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		f.appointments.EXPECT().
			Refresh(gomock.Any()).
			Return(nil)

		res, err := f.svc.Submit(sessionContext(), req)

		assert.NoError(t, err)
		assert.True(t, res.Completed)
		assert.Len(t, res.Outcomes, 1)
		assert.Equal(t, "apt-1", res.Outcomes[0].AppointmentID)
	})

	t.Run("failed edit keeps the session", func(t *testing.T) {
		session := editSession()
		expectLoadedSession(f.cache, session)

		f.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			Times(2)

		f.gateway.EXPECT().
			UpdateAppointment(gomock.Any(), "apt-1", gomock.Any()).
			Return(gateway.Appointment{}, failure.GatewayUnavailable)

		res, err := f.svc.Submit(sessionContext(), req)

		assert.NoError(t, err)
		assert.False(t, res.Completed)
		assert.NotNil(t, res.Session)
		assert.Equal(t, string(model.StateFillingDetails), res.Session.State)
		assert.Equal(t, []string{"09:00", "10:00"}, res.Session.Selected)
	})
}

func TestBookingService_BeginEdit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	day, _ := timezone.Parse(constant.DateFormat, "2025-03-10")

	f.appointments.EXPECT().
		Find(gomock.Any(), "apt-1").
		Return(appointmentModel.Appointment{
			ID:         "apt-1",
			AccountID:  "account-id",
			Date:       day,
			Slots:      []string{"09:30"},
			ClientName: "Maria",
			Contact:    "11 99999-0000",
			Whatsapp:   true,
		}, nil)

	f.appointments.EXPECT().
		Availability(gomock.Any(), "2025-03-10").
		Return(appointmentDto.AvailabilityResponse{Free: []string{"09:00", "10:00"}}, nil)

	f.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	res, err := f.svc.BeginEdit(sessionContext(), dto.EditSessionRequest{AppointmentID: "apt-1"})

	assert.NoError(t, err)
	assert.Equal(t, string(model.StateFillingDetails), res.State)
	assert.Equal(t, "apt-1", res.EditingID)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, res.Offerable)
	assert.Equal(t, []string{"09:30"}, res.Selected)
	assert.Equal(t, "Maria", res.Draft.ClientName)
	assert.True(t, res.Draft.Whatsapp)
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful cancel",
			ctx:  sessionContext(),
			setupMock: func() {
				f.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache error",
			ctx:  sessionContext(),
			setupMock: func() {
				f.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("redis down"))
			},
			wantErr: true,
		},
		{
			name:      "missing account",
			ctx:       context.Background(),
			setupMock: func() {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := f.svc.Cancel(tt.ctx)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
