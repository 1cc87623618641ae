package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("Employee not found")
	ErrMetricsNotFound  = errors.New("Performance metrics not found")
)
