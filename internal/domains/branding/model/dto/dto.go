package dto

import "mime/multipart"

type UploadLogoRequest struct {
	File multipart.FileHeader `validate:"mimetypes=image/png image/jpeg image/webp,maxfilesize=2"`
}

type UploadLogoResponse struct {
	URL string `json:"url"`
}

type DeleteLogoRequest struct {
	URL string `json:"url" validate:"required"`
}
