package serial

import (
	"testing"

	"github.com/skyhawk-robotics/interop-bridge/internal/wire"
)

func TestServerInfoFromWire(t *testing.T) {
	t.Parallel()
	w := wire.ServerInfo{
		Message:          "Fly Safe",
		MessageTimestamp: "2015-06-14 18:18:55.642000+00:00",
		ServerTime:       "2015-08-14 03:37:13.331402",
	}

	info, err := ServerInfoFromWire(w)
	if err != nil {
		t.Fatal(err)
	}
	if info.Message != "Fly Safe" {
		t.Fatalf("unexpected message %q", info.Message)
	}

	wantMessageTime, err := ParseISO8601(w.MessageTimestamp)
	if err != nil {
		t.Fatal(err)
	}
	if !info.MessageTime.Equal(wantMessageTime) {
		t.Fatalf("expected message time %v got %v", wantMessageTime, info.MessageTime)
	}
	wantServerTime, err := ParseISO8601(w.ServerTime)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ServerTime.Equal(wantServerTime) {
		t.Fatalf("expected server time %v got %v", wantServerTime, info.ServerTime)
	}
}

func TestServerInfoFromWireBadTimestamp(t *testing.T) {
	t.Parallel()
	w := wire.ServerInfo{Message: "x", MessageTimestamp: "garbage", ServerTime: "2015-08-14T03:37:13Z"}
	if _, err := ServerInfoFromWire(w); err == nil {
		t.Fatal("expected parse error")
	}
}
