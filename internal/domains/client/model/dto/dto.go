package dto

import (
	"agenda/internal/domains/client/model"
)

type RegisterClientRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Contact  string `json:"contact" validate:"required,max=60"`
	Whatsapp bool   `json:"whatsapp"`
}

type UpdateClientRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Contact  string `json:"contact" validate:"required,max=60"`
	Whatsapp bool   `json:"whatsapp"`
}

type ClientResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Whatsapp bool   `json:"whatsapp"`
}

func (r *ClientResponse) FromModel(client model.Client) {
	r.ID = client.ID
	r.Name = client.Name
	r.Contact = client.Contact
	r.Whatsapp = client.Whatsapp
}

type ListClientsResponse struct {
	Data      []ClientResponse `json:"data"`
	TotalData int              `json:"total_data"`
}

func (r *ListClientsResponse) FromModels(clients []model.Client) {
	r.Data = make([]ClientResponse, 0, len(clients))

	for _, client := range clients {
		var res ClientResponse
		res.FromModel(client)

		r.Data = append(r.Data, res)
	}

	r.TotalData = len(r.Data)
}
