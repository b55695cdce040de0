package gateway

//go:generate go run go.uber.org/mock/mockgen -source=./gateway.go -destination=./mocks/gateway_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/shared/constant"
	"agenda/shared/failure"

	"github.com/rs/zerolog/log"
)

const requestHeaderAPIKey = "X-Api-Key"

// Appointment is the wire shape of one appointment record on the remote
// booking backend. Date carries the calendar day, Slots the booked time
// labels for that day.
type Appointment struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	Date          time.Time `json:"date"`
	Slots         []string  `json:"slots"`
	ClientName    string    `json:"client_name"`
	Contact       string    `json:"contact"`
	Whatsapp      bool      `json:"whatsapp"`
	ServiceTypeID string    `json:"service_type_id"`
	ServiceType   string    `json:"service_type"`
}

type CreateAppointmentRequest struct {
	AccountID     string    `json:"account_id"`
	Date          time.Time `json:"date"`
	Slots         []string  `json:"slots"`
	ClientName    string    `json:"client_name"`
	Contact       string    `json:"contact"`
	Whatsapp      bool      `json:"whatsapp"`
	ServiceTypeID string    `json:"service_type_id"`
}

type UpdateAppointmentRequest struct {
	Date          time.Time `json:"date"`
	Slots         []string  `json:"slots"`
	ClientName    string    `json:"client_name"`
	Contact       string    `json:"contact"`
	Whatsapp      bool      `json:"whatsapp"`
	ServiceTypeID string    `json:"service_type_id"`
}

// Schedule describes the working hours of an account as configured on the
// remote backend.
type Schedule struct {
	AccountID       string `json:"account_id"`
	OpeningTime     string `json:"opening_time"`
	ClosingTime     string `json:"closing_time"`
	IntervalMinutes int    `json:"interval_minutes"`
}

type ServiceType struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

type Client struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Whatsapp  bool   `json:"whatsapp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
}

// ResetPasswordRequest carries the verification code the backend mailed to
// the account owner together with the replacement password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Gateway is the HTTP client for the remote booking backend. All persistence
// goes through it; this service never talks to a database of its own.
type Gateway interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	ListAppointments(ctx context.Context) ([]Appointment, error)
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (Appointment, error)
	UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (Appointment, error)
	DeleteSlot(ctx context.Context, id, slot string) error

	FetchSchedule(ctx context.Context, accountID string) (Schedule, error)

	ListServiceTypes(ctx context.Context, accountID string) ([]ServiceType, error)
	CreateServiceType(ctx context.Context, accountID, name string) (ServiceType, error)
	DeleteServiceType(ctx context.Context, id string) error

	ListClients(ctx context.Context, accountID string) ([]Client, error)
	RegisterClient(ctx context.Context, client Client) (Client, error)
	UpdateClient(ctx context.Context, id string, client Client) (Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type gatewayImpl struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	otel       otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Gateway {
	return &gatewayImpl{
		baseURL: cfg.Gateway.BaseURL,
		apiKey:  cfg.Gateway.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second,
		},
		otel: ot,
	}
}

func (g *gatewayImpl) Login(ctx context.Context, req LoginRequest) (result LoginResult, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = g.do(ctx, http.MethodPost, "/auth/login", req, &result)

	return result, err
}

func (g *gatewayImpl) ResetPassword(ctx context.Context, req ResetPasswordRequest) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".ResetPassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	return g.do(ctx, http.MethodPost, "/auth/reset-password", req, nil)
}

func (g *gatewayImpl) ListAppointments(ctx context.Context) (appointments []Appointment, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".ListAppointments")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = g.do(ctx, http.MethodGet, "/appointments", nil, &appointments)

	return appointments, err
}

func (g *gatewayImpl) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (appointment Appointment, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".CreateAppointment")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = g.do(ctx, http.MethodPost, "/appointments", req, &appointment)

	return appointment, err
}

func (g *gatewayImpl) UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (appointment Appointment, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".UpdateAppointment")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = g.do(ctx, http.MethodPut, "/appointments/"+url.PathEscape(id), req, &appointment)

	return appointment, err
}

func (g *gatewayImpl) DeleteSlot(ctx context.Context, id, slot string) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".DeleteSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	endpoint := fmt.Sprintf("/appointments/%s/slots/%s", url.PathEscape(id), url.PathEscape(slot))

	return g.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (g *gatewayImpl) FetchSchedule(ctx context.Context, accountID string) (schedule Schedule, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".FetchSchedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	endpoint := fmt.Sprintf("/accounts/%s/schedule", url.PathEscape(accountID))

	err = g.do(ctx, http.MethodGet, endpoint, nil, &schedule)

	return schedule, err
}

func (g *gatewayImpl) ListServiceTypes(ctx context.Context, accountID string) (serviceTypes []ServiceType, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".ListServiceTypes")
	defer scope.End()
	defer scope.TraceIfError(err)

	endpoint := fmt.Sprintf("/accounts/%s/service-types", url.PathEscape(accountID))

	err = g.do(ctx, http.MethodGet, endpoint, nil, &serviceTypes)

	return serviceTypes, err
}

func (g *gatewayImpl) CreateServiceType(ctx context.Context, accountID, name string) (serviceType ServiceType, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".CreateServiceType")
	defer scope.End()
	defer scope.TraceIfError(err)

	req := ServiceType{AccountID: accountID, Name: name}

	err = g.do(ctx, http.MethodPost, "/service-types", req, &serviceType)

	return serviceType, err
}

func (g *gatewayImpl) DeleteServiceType(ctx context.Context, id string) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".DeleteServiceType")
	defer scope.End()
	defer scope.TraceIfError(err)

	return g.do(ctx, http.MethodDelete, "/service-types/"+url.PathEscape(id), nil, nil)
}

func (g *gatewayImpl) ListClients(ctx context.Context, accountID string) (clients []Client, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".ListClients")
	defer scope.End()
	defer scope.TraceIfError(err)

	endpoint := fmt.Sprintf("/accounts/%s/clients", url.PathEscape(accountID))

	err = g.do(ctx, http.MethodGet, endpoint, nil, &clients)

	return clients, err
}

func (g *gatewayImpl) RegisterClient(ctx context.Context, client Client) (created Client, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".RegisterClient")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = g.do(ctx, http.MethodPost, "/clients", client, &created)

	return created, err
}

func (g *gatewayImpl) UpdateClient(ctx context.Context, id string, client Client) (updated Client, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".UpdateClient")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = g.do(ctx, http.MethodPut, "/clients/"+url.PathEscape(id), client, &updated)

	return updated, err
}

func (g *gatewayImpl) DeleteClient(ctx context.Context, id string) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".DeleteClient")
	defer scope.End()
	defer scope.TraceIfError(err)

	return g.do(ctx, http.MethodDelete, "/clients/"+url.PathEscape(id), nil, nil)
}

// do performs one round trip against the backend. Responses outside the 2xx
// range become Failure errors; 4xx statuses keep their code so backend
// validation messages reach the caller unchanged.
func (g *gatewayImpl) do(ctx context.Context, method, endpoint string, body, out any) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".do")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelEndpointAttributeKey, method+" "+endpoint)

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			log.Error().Err(err).Str("endpoint", endpoint).Msg("failed to marshal gateway request")

			return fmt.Errorf("failed to marshal gateway request: %w", err)
		}

		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, reqBody)
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("failed to build gateway request")

		return fmt.Errorf("failed to build gateway request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	if g.apiKey != constant.Empty {
		req.Header.Set(requestHeaderAPIKey, g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("failed to reach appointment gateway")

		return failure.GatewayUnavailable //nolint:wrapcheck
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errResp errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr != nil || errResp.Message == constant.Empty {
			errResp.Message = http.StatusText(resp.StatusCode)
		}

		log.Error().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("message", errResp.Message).
			Msg("gateway request rejected")

		return failure.Gateway(resp.StatusCode, errResp.Message) //nolint:wrapcheck
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("failed to decode gateway response")

		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return nil
}
