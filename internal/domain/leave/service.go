package leave

import (
	"context"
)

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)
	Decide(ctx context.Context, req DecideRequest) error
	Edit(ctx context.Context, req EditRequest) error
	Delete(ctx context.Context, tenantID, actorID, requestID string) error

	GetRequest(ctx context.Context, tenantID, requestID string) (RequestResponse, error)
	ListRequests(ctx context.Context, tenantID string, filter RequestFilter) (ListRequestsResponse, error)
	// ListPendingWithSLA joins the tenant's pending requests with their live
	// SLA state, recomputed at call time.
	ListPendingWithSLA(ctx context.Context, tenantID string) ([]PendingRequestSLA, error)
}
