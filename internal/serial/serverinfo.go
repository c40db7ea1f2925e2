package serial

import (
	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/internal/wire"
)

// ServerInfoFromWire parses the judge server's broadcast message and clocks.
func ServerInfoFromWire(w wire.ServerInfo) (geom.ServerInfo, error) {
	messageTime, err := ParseISO8601(w.MessageTimestamp)
	if err != nil {
		return geom.ServerInfo{}, err
	}
	serverTime, err := ParseISO8601(w.ServerTime)
	if err != nil {
		return geom.ServerInfo{}, err
	}
	return geom.ServerInfo{
		Message:     w.Message,
		MessageTime: messageTime,
		ServerTime:  serverTime,
	}, nil
}
