package service

import "errors"

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrPlanNotFound     = errors.New("subscription plan not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrExportDisabled   = errors.New("snapshot export is not configured")
)
