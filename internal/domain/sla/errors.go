package sla

import "errors"

var (
	ErrConfigNotFound   = errors.New("SLA config not found")
	ErrMetricNotFound   = errors.New("SLA metric not found")
	ErrMetricFinalized  = errors.New("SLA metric already finalized")
	ErrMetricNotPending = errors.New("SLA metric is not pending")
)
