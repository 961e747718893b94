package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// UpdateManagerRequest carries only the fields to change; nil means keep.
type UpdateManagerRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

func (req *UpdateManagerRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Length(2, 50)),
	)
	if err != nil {
		return err
	}

	if req.Password != nil {
		ok, matchErr := passwordExp.MatchString(*req.Password)
		if matchErr != nil || !ok {
			return errInvalidPassword
		}
	}

	return nil
}
