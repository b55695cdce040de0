package dto

import (
	"agenda/internal/domains/servicetype/model"
)

type CreateServiceTypeRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

type ServiceTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *ServiceTypeResponse) FromModel(serviceType model.ServiceType) {
	r.ID = serviceType.ID
	r.Name = serviceType.Name
}

type ListServiceTypesResponse struct {
	Data      []ServiceTypeResponse `json:"data"`
	TotalData int                   `json:"total_data"`
}

func (r *ListServiceTypesResponse) FromModels(serviceTypes []model.ServiceType) {
	r.Data = make([]ServiceTypeResponse, 0, len(serviceTypes))

	for _, serviceType := range serviceTypes {
		var res ServiceTypeResponse
		res.FromModel(serviceType)

		r.Data = append(r.Data, res)
	}

	r.TotalData = len(r.Data)
}
