package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Validater interface {
	Validate() map[string]string
}

type QueryParams struct {
	TenantID string `json:"tenant_id" validate:"required"`
	Question string `json:"question" validate:"required"`
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

func (params *QueryParams) Validate() map[string]string {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}

type QueryResponse struct {
	Answer          string   `json:"answer"`
	SourceDocuments []string `json:"source_documents"`
}

type UploadResponse struct {
	Message string `json:"message"`
}

type DocumentInfo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ChunkCount int    `json:"chunk_count"`
	CreatedAt  string `json:"created_at"`
}
