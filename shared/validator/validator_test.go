package validator_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"agenda/shared/validator"
)

type submitForm struct {
	ClientName string `validate:"required,max=120" json:"client_name"`
	Contact    string `validate:"required,max=60" json:"contact"`
}

type slotForm struct {
	Slot string `validate:"required,slot" json:"slot"`
}

type logoForm struct {
	File multipart.FileHeader `validate:"mimetypes=image/png image/jpeg image/webp,maxfilesize=2"`
}

func fileHeader(contentType string, size int64) multipart.FileHeader {
	return multipart.FileHeader{
		Filename: "logo.png",
		Size:     size,
		Header: textproto.MIMEHeader{
			"Content-Type": []string{contentType},
		},
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *submitForm
		expectError bool
	}{
		{
			name:        "valid form",
			data:        &submitForm{ClientName: "Maria", Contact: "11 99999-0000"},
			expectError: false,
		},
		{
			name:        "missing client name",
			data:        &submitForm{Contact: "11 99999-0000"},
			expectError: true,
		},
		{
			name:        "missing contact",
			data:        &submitForm{ClientName: "Maria"},
			expectError: true,
		},
		{
			name:        "client name too long",
			data:        &submitForm{ClientName: strings.Repeat("a", 121), Contact: "11 99999-0000"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestSlotValidation(t *testing.T) {
	tests := []struct {
		name        string
		slot        string
		expectError bool
	}{
		{name: "valid morning slot", slot: "09:00", expectError: false},
		{name: "valid late slot", slot: "23:30", expectError: false},
		{name: "not zero padded", slot: "9:00", expectError: true},
		{name: "hour out of range", slot: "25:00", expectError: true},
		{name: "free text", slot: "morning", expectError: true},
		{name: "empty", slot: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&slotForm{Slot: tt.slot})
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid json body",
			body:        `{"client_name": "Maria", "contact": "11 99999-0000"}`,
			expectError: false,
		},
		{
			name:        "invalid json",
			body:        `{"client_name": `,
			expectError: true,
		},
		{
			name:        "valid json failing validation",
			body:        `{"client_name": "Maria"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form submitForm

			err := validator.Validate(strings.NewReader(tt.body), &form)
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestFileValidation(t *testing.T) {
	tests := []struct {
		name        string
		file        multipart.FileHeader
		expectError bool
	}{
		{
			name:        "png within the size limit",
			file:        fileHeader("image/png", 1024),
			expectError: false,
		},
		{
			name:        "webp within the size limit",
			file:        fileHeader("image/webp", 1024),
			expectError: false,
		},
		{
			name:        "disallowed content type",
			file:        fileHeader("application/pdf", 1024),
			expectError: true,
		},
		{
			name:        "file too large",
			file:        fileHeader("image/png", 3*1024*1024),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&logoForm{File: tt.file})
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
