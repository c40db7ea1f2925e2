package bus

import "github.com/nats-io/nats.go"

// Subjects published by the bridge daemons.
const (
	SubjectMovingObstacles     = "interop.obstacles.moving"
	SubjectStationaryObstacles = "interop.obstacles.stationary"
	SubjectServerInfo          = "interop.server_info"
)

// Subjects the bridge consumes from the vehicle.
const (
	SubjectNavSatFix = "vehicle.navsat"
	SubjectHeading   = "vehicle.heading"
)

// Request/reply subjects for the target submission service.
const (
	SubjectTargetAdd         = "interop.targets.add"
	SubjectTargetGet         = "interop.targets.get"
	SubjectTargetList        = "interop.targets.list"
	SubjectTargetUpdate      = "interop.targets.update"
	SubjectTargetDelete      = "interop.targets.delete"
	SubjectTargetImageAdd    = "interop.targets.image.add"
	SubjectTargetImageGet    = "interop.targets.image.get"
	SubjectTargetImageDelete = "interop.targets.image.delete"
)

// Connect creates a NATS connection to the vehicle bus.
func Connect(url string) (*nats.Conn, error) {
	return nats.Connect(url)
}
