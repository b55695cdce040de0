package model

import (
	"agenda/infras/gateway"
)

const EntityName = "client"

// Client is one person in the account's client registry.
type Client struct {
	ID        string
	AccountID string
	Name      string
	Contact   string
	Whatsapp  bool
}

func FromGateway(in gateway.Client) Client {
	return Client{
		ID:        in.ID,
		AccountID: in.AccountID,
		Name:      in.Name,
		Contact:   in.Contact,
		Whatsapp:  in.Whatsapp,
	}
}

func FromGatewayList(in []gateway.Client) []Client {
	out := make([]Client, 0, len(in))
	for _, client := range in {
		out = append(out, FromGateway(client))
	}

	return out
}
