package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/gateway"
	gatewayMocks "agenda/infras/gateway/mocks"
	kafkaMocks "agenda/infras/kafka/mocks"
	"agenda/infras/otel/mocks"
	"agenda/internal/domains/appointment/model"
	"agenda/internal/domains/appointment/repository"
	"agenda/internal/domains/appointment/service"
	scheduleMocks "agenda/internal/domains/schedule/mocks"
	"agenda/shared/constant"
	"agenda/shared/failure"
	"agenda/shared/timezone"
)

type appointmentFixture struct {
	gateway  *gatewayMocks.MockGateway
	repo     repository.Appointment
	schedule *scheduleMocks.MockSchedule
	svc      service.Appointment
}

func newAppointmentFixture(ctrl *gomock.Controller) appointmentFixture {
	mockGateway := gatewayMocks.NewMockGateway(ctrl)
	mockSchedule := scheduleMocks.NewMockSchedule(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()
	repo := repository.New()

	cfg := &config.Config{}
	cfg.Kafka.Enable = false

	return appointmentFixture{
		gateway:  mockGateway,
		repo:     repo,
		schedule: mockSchedule,
		svc:      service.New(mockGateway, repo, mockSchedule, mockKafka, cfg, mockOtel),
	}
}

func sessionContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyAccountID, "account-1")
}

func day(value string) time.Time {
	t, _ := timezone.Parse(constant.DateFormat, value)

	return t
}

func remoteAppointments() []gateway.Appointment {
	return []gateway.Appointment{
		{ID: "apt-1", AccountID: "account-1", Date: day("2025-03-10"), Slots: []string{"09:00", "09:30"}, ClientName: "Maria"},
		{ID: "apt-2", AccountID: "account-1", Date: day("2025-03-11"), Slots: []string{"10:00"}, ClientName: "Joao"},
		{ID: "apt-9", AccountID: "account-2", Date: day("2025-03-10"), Slots: []string{"09:00"}, ClientName: "Other"},
	}
}

func TestAppointmentService_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("mirror keeps only the session account", func(t *testing.T) {
		f := newAppointmentFixture(ctrl)

		f.gateway.EXPECT().
			ListAppointments(gomock.Any()).
			Return(remoteAppointments(), nil)

		err := f.svc.Refresh(sessionContext())

		assert.NoError(t, err)
		assert.True(t, f.repo.Loaded("account-1"))

		all := f.repo.GetAll("account-1")
		assert.Len(t, all, 2)
		for _, appointment := range all {
			assert.Equal(t, "account-1", appointment.AccountID)
		}
	})

	t.Run("gateway error leaves the mirror untouched", func(t *testing.T) {
		f := newAppointmentFixture(ctrl)

		f.gateway.EXPECT().
			ListAppointments(gomock.Any()).
			Return(nil, failure.GatewayUnavailable)

		err := f.svc.Refresh(sessionContext())

		assert.Error(t, err)
		assert.False(t, f.repo.Loaded("account-1"))
	})
}

func TestAppointmentService_Upsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAppointmentFixture(ctrl)

	f.svc.Upsert(context.Background(), model.Appointment{
		ID:        "apt-5",
		AccountID: "account-1",
		Date:      day("2025-03-12"),
		Slots:     []string{"11:00"},
	})

	got, found := f.repo.Get("account-1", "apt-5")
	assert.True(t, found)
	assert.Equal(t, []string{"11:00"}, got.Slots)

	f.svc.Upsert(context.Background(), model.Appointment{
		ID:        "apt-5",
		AccountID: "account-1",
		Date:      day("2025-03-12"),
		Slots:     []string{"11:00", "11:30"},
	})

	got, _ = f.repo.Get("account-1", "apt-5")
	assert.Equal(t, []string{"11:00", "11:30"}, got.Slots)
	assert.Len(t, f.repo.GetAll("account-1"), 1)
}

func TestAppointmentService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAppointmentFixture(ctrl)

	f.gateway.EXPECT().
		ListAppointments(gomock.Any()).
		Return(remoteAppointments(), nil)

	res, err := f.svc.List(sessionContext())

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
}

func TestAppointmentService_DayView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAppointmentFixture(ctrl)

	t.Run("one row per booked slot, sorted by time", func(t *testing.T) {
		f.gateway.EXPECT().
			ListAppointments(gomock.Any()).
			Return(remoteAppointments(), nil)

		res, err := f.svc.DayView(sessionContext(), "2025-03-10")

		assert.NoError(t, err)
		assert.Equal(t, "2025-03-10", res.Date)
		assert.Len(t, res.Rows, 2)
		assert.Equal(t, "09:00", res.Rows[0].Slot)
		assert.Equal(t, "09:30", res.Rows[1].Slot)
		assert.Equal(t, "Maria", res.Rows[0].ClientName)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := f.svc.DayView(sessionContext(), "not-a-date")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := f.svc.DayView(context.Background(), "2025-03-10")

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAppointmentService_Availability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAppointmentFixture(ctrl)

	offerable := []string{"09:00", "09:30", "10:00", "10:30"}

	t.Run("free is offerable minus booked", func(t *testing.T) {
		f.gateway.EXPECT().
			ListAppointments(gomock.Any()).
			Return(remoteAppointments(), nil)

		f.schedule.EXPECT().
			Offerable(gomock.Any()).
			Return(offerable, nil)

		res, err := f.svc.Availability(sessionContext(), "2025-03-10")

		assert.NoError(t, err)
		assert.Equal(t, offerable, res.Offerable)
		assert.Equal(t, []string{"09:00", "09:30"}, res.Booked)
		assert.Equal(t, []string{"10:00", "10:30"}, res.Free)
	})

	t.Run("a day with no appointments offers everything", func(t *testing.T) {
		f.schedule.EXPECT().
			Offerable(gomock.Any()).
			Return(offerable, nil)

		res, err := f.svc.Availability(sessionContext(), "2025-04-01")

		assert.NoError(t, err)
		assert.Empty(t, res.Booked)
		assert.Equal(t, offerable, res.Free)
	})

	t.Run("schedule error propagates", func(t *testing.T) {
		f.schedule.EXPECT().
			Offerable(gomock.Any()).
			Return(nil, errors.New("gateway down"))

		_, err := f.svc.Availability(sessionContext(), "2025-03-10")

		assert.Error(t, err)
	})
}

func TestAppointmentService_Find(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAppointmentFixture(ctrl)

	f.gateway.EXPECT().
		ListAppointments(gomock.Any()).
		Return(remoteAppointments(), nil)

	appointment, err := f.svc.Find(sessionContext(), "apt-1")

	assert.NoError(t, err)
	assert.Equal(t, "Maria", appointment.ClientName)

	_, err = f.svc.Find(sessionContext(), "missing")

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestAppointmentService_DeleteSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		id        string
		slot      string
		setupMock func(f appointmentFixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful delete re-fetches the mirror",
			id:   "apt-1",
			slot: "09:00",
			setupMock: func(f appointmentFixture) {
				f.gateway.EXPECT().
					DeleteSlot(gomock.Any(), "apt-1", "09:00").
					Return(nil)

				f.gateway.EXPECT().
					ListAppointments(gomock.Any()).
					Return([]gateway.Appointment{
						{ID: "apt-1", AccountID: "account-1", Date: day("2025-03-10"), Slots: []string{"09:30"}},
					}, nil)
			},
			wantErr: false,
		},
		{
			name:      "appointment not found",
			id:        "missing",
			slot:      "09:00",
			setupMock: func(f appointmentFixture) {},
			wantErr:   true,
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "slot not booked",
			id:        "apt-1",
			slot:      "23:00",
			setupMock: func(f appointmentFixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "gateway error",
			id:   "apt-1",
			slot: "09:00",
			setupMock: func(f appointmentFixture) {
				f.gateway.EXPECT().
					DeleteSlot(gomock.Any(), "apt-1", "09:00").
					Return(failure.GatewayUnavailable)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(ctrl)

			f.gateway.EXPECT().
				ListAppointments(gomock.Any()).
				Return(remoteAppointments(), nil)

			tt.setupMock(f)

			err := f.svc.DeleteSlot(sessionContext(), tt.id, tt.slot)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)

				got, found := f.repo.Get("account-1", "apt-1")
				assert.True(t, found)
				assert.Equal(t, []string{"09:30"}, got.Slots)
			}
		})
	}
}

func TestAppointmentService_DeleteSlot_MirrorUpdatedWhenRefetchFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newAppointmentFixture(ctrl)

	f.gateway.EXPECT().
		ListAppointments(gomock.Any()).
		Return(remoteAppointments(), nil)

	f.gateway.EXPECT().
		DeleteSlot(gomock.Any(), "apt-1", "09:00").
		Return(nil)

	f.gateway.EXPECT().
		ListAppointments(gomock.Any()).
		Return(nil, failure.GatewayUnavailable)

	err := f.svc.DeleteSlot(sessionContext(), "apt-1", "09:00")

	assert.Error(t, err)

	got, found := f.repo.Get("account-1", "apt-1")
	assert.True(t, found)
	assert.Equal(t, []string{"09:30"}, got.Slots)
}
