package registry

import (
	"github.com/denisbrodbeck/machineid"
)

const appID = "e32.go"

// HostID retrieves an app-specific hash of the machine ID, used to tell apart
// announcements of the same node from different hosts.
func HostID() (string, error) {
	return machineid.ProtectedID(appID)
}
