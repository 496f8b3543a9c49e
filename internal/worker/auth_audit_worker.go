package worker

import (
	"github.com/spec-kit/restaurant-service/internal/service"
)

// StartAuthAuditWorker registers the auth audit handlers.
func StartAuthAuditWorker(audit *service.AuthAuditService) {
	if audit == nil {
		return
	}
	audit.RegisterHandlers()
}
