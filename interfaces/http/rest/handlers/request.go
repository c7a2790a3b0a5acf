package handlers

import (
	"errors"
	"net/http"

	"moviereviews/domain/core/validators"
	"moviereviews/pkg/common"
	apperrors "moviereviews/pkg/errors"
)

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON object body and checks it against schema. Only the
// listed fields are required when required is non-nil.
func decodeBody(r *http.Request, schema *validators.Schema, required []string) (map[string]any, error) {
	payload, err := common.DecodeObject(r, maxBodyBytes)
	if err != nil {
		return nil, apperrors.NewValidationError("request body must be a JSON object").
			WithSchema(schema).
			WithCause(err)
	}

	if required == nil {
		err = schema.Validate(payload)
	} else {
		err = schema.ValidatePartial(payload, required...)
	}

	var schemaErr *validators.SchemaError
	if errors.As(err, &schemaErr) {
		return nil, apperrors.NewValidationError(schemaErr.Error()).WithSchema(schema)
	}
	return payload, err
}

// paramError turns a parse failure into a 400.
func paramError(err error) error {
	return apperrors.NewValidationError(err.Error()).WithCause(err)
}
