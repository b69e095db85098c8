package filelock

import (
	"fmt"
	"net/url"
	"time"
)

// markerContent renders the informational payload written to a freshly
// created lock file. Only the lock file's presence and OS-lock state drive
// protocol decisions; this text exists purely so a human who stumbles on
// the file understands not to touch it.
func markerContent(protectedPath string, at time.Time) string {
	u := url.URL{Scheme: "file", Path: protectedPath}
	return fmt.Sprintf(
		"DO NOT DELETE OR RENAME THIS FILE\n\nThis file is used to prevent concurrent updates of:\n%s\n\nCreated at : %s\n",
		u.String(), at.Format(time.RFC3339),
	)
}
