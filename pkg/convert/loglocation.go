package convert

import (
	"github.com/stratushq/stratuswire/pkg/logstore"
	"github.com/stratushq/stratuswire/pkg/model"
	"github.com/stratushq/stratuswire/pkg/wire"
)

// ToWireLogLocation composes a task's log location from three independent
// lookups. Only sub-fields the provider returned are set; of the stream
// links only the live link is transmitted. Lookups cannot fail; providers
// report absence instead.
func ToWireLogLocation(task *model.Task, logStore logstore.Provider) wire.LogLocation {
	var out wire.LogLocation

	if url, ok := logStore.UILink(task); ok {
		out.UI = &wire.LogLocationUI{URL: url}
	}

	if live := logStore.Links(task).Live; live != nil {
		out.LiveStream = &wire.LogLocationLiveStream{URL: *live}
	}

	if location, ok := logStore.S3Location(task); ok {
		out.S3 = &wire.LogLocationS3{
			AccountID:   location.AccountID,
			AccountName: location.AccountName,
			Region:      location.Region,
			Bucket:      location.Bucket,
			Key:         location.Key,
		}
	}

	return out
}

// ToWireMigrationDetails renders a service task's migration state.
func ToWireMigrationDetails(d model.MigrationDetails) wire.MigrationDetails {
	return wire.MigrationDetails{
		NeedsMigration: d.NeedsMigration,
		Deadline:       d.DeadlineMs,
	}
}
