package model

import (
	"agenda/infras/gateway"
)

const EntityName = "service type"

// ServiceType is one offered kind of service, referenced from appointments by
// its stable id.
type ServiceType struct {
	ID        string
	AccountID string
	Name      string
}

func FromGateway(in gateway.ServiceType) ServiceType {
	return ServiceType{
		ID:        in.ID,
		AccountID: in.AccountID,
		Name:      in.Name,
	}
}

func FromGatewayList(in []gateway.ServiceType) []ServiceType {
	out := make([]ServiceType, 0, len(in))
	for _, serviceType := range in {
		out = append(out, FromGateway(serviceType))
	}

	return out
}
