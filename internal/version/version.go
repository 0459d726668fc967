// ABOUTME: Build identity constants
// ABOUTME: Reported in logs and by the remote control UI
package version

const (
	// Version is the release of this build
	Version = "0.1.0"

	// Product is the daemon's name as shown to users
	Product = "Jukebox"

	// Manufacturer identifies the project behind the daemon
	Manufacturer = "Jukebox Protocol"
)
