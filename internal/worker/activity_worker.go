package worker

import (
	"github.com/spec-kit/nexushub/internal/service"
)

// StartActivityWorker registers the activity recorder on the dispatcher.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
