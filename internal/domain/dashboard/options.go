package dashboard

import (
	"time"

	"github.com/somoscreators/taskboard/internal/view"
)

// Options configures a Service.
type Options struct {
	// Profiles are the views served. Empty selects view.DefaultProfiles.
	Profiles []view.Profile
	// Location is used for raw dates without an offset.
	Location *time.Location
	// Now overrides the clock, for tests.
	Now func() time.Time
	// Activity, when set, records loads and exports.
	Activity ActivityLogger
}
