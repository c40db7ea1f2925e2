package interop

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/internal/serial"
	"github.com/skyhawk-robotics/interop-bridge/internal/wire"
)

// GetObstacles returns the current obstacle sets as markers. Every marker
// carries the given frame and lifetime.
func (c *Client) GetObstacles(ctx context.Context, frame string, lifetime time.Duration) (moving, stationary []geom.Marker, err error) {
	data, err := c.do(ctx, http.MethodGet, "/api/obstacles", nil, "")
	if err != nil {
		return nil, nil, err
	}
	var w wire.Obstacles
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, nil, fmt.Errorf("decode obstacles: %w", err)
	}
	return serial.ObstaclesFromWire(w, frame, lifetime, c.clock.Now())
}

// PostTelemetry uploads one telemetry snapshot built from a position fix and
// a compass heading in degrees.
func (c *Client) PostTelemetry(ctx context.Context, fix geom.NavSatFix, headingDeg float64) error {
	body, err := json.Marshal(serial.TelemetryToWire(fix, headingDeg))
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, "/api/telemetry", body, "application/json")
	return err
}

// PostTarget submits a new target and returns its server-assigned id.
func (c *Client) PostTarget(ctx context.Context, t geom.Target) (int64, error) {
	body, err := json.Marshal(serial.TargetToWire(t))
	if err != nil {
		return 0, err
	}
	data, err := c.do(ctx, http.MethodPost, "/api/targets", body, "application/json")
	if err != nil {
		return 0, err
	}
	var id wire.TargetID
	if err := json.Unmarshal(data, &id); err != nil {
		return 0, fmt.Errorf("decode target id: %w", err)
	}
	return id.ID, nil
}

// GetTarget returns the target with the given id.
func (c *Client) GetTarget(ctx context.Context, id int64) (geom.Target, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/targets/%d", id), nil, "")
	if err != nil {
		return geom.Target{}, err
	}
	var patch wire.TargetPatch
	if err := json.Unmarshal(data, &patch); err != nil {
		return geom.Target{}, fmt.Errorf("decode target: %w", err)
	}
	return serial.TargetFromWire(patch), nil
}

// GetAllTargets returns submitted targets keyed by id.
func (c *Client) GetAllTargets(ctx context.Context) (map[int64]geom.Target, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/targets", nil, "")
	if err != nil {
		return nil, err
	}
	var patches []wire.TargetPatch
	if err := json.Unmarshal(data, &patches); err != nil {
		return nil, fmt.Errorf("decode targets: %w", err)
	}
	targets := make(map[int64]geom.Target, len(patches))
	for _, patch := range patches {
		t := serial.TargetFromWire(patch)
		targets[t.ID] = t
	}
	return targets, nil
}

// PutTarget replaces the target with the given id.
func (c *Client) PutTarget(ctx context.Context, id int64, t geom.Target) error {
	body, err := json.Marshal(serial.TargetToWire(t))
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPut, fmt.Sprintf("/api/targets/%d", id), body, "application/json")
	return err
}

// DeleteTarget removes the target with the given id.
func (c *Client) DeleteTarget(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/targets/%d", id), nil, "")
	return err
}

// PostTargetImage adds or replaces a target's thumbnail, re-encoded as PNG
// at maximum compression.
func (c *Client) PostTargetImage(ctx context.Context, id int64, img image.Image) error {
	png, err := serial.EncodePNG(img)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, fmt.Sprintf("/api/targets/%d/image", id), png, "image/png")
	return err
}

// GetTargetImage retrieves and decodes a target's thumbnail.
func (c *Client) GetTargetImage(ctx context.Context, id int64) (image.Image, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/targets/%d/image", id), nil, "")
	if err != nil {
		return nil, err
	}
	return serial.DecodeImage(data)
}

// DeleteTargetImage removes a target's thumbnail.
func (c *Client) DeleteTargetImage(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/targets/%d/image", id), nil, "")
	return err
}

// GetActiveMission returns the first mission flagged active, in server
// order, or ErrNoActiveMission.
func (c *Client) GetActiveMission(ctx context.Context, frame string) (geom.Mission, error) {
	missions, err := c.fetchMissions(ctx)
	if err != nil {
		return geom.Mission{}, err
	}
	for _, m := range missions {
		if m.Active {
			return serial.MissionFromWire(m, frame, c.clock.Now())
		}
	}
	return geom.Mission{}, ErrNoActiveMission
}

// GetAllMissions returns every mission keyed by id.
func (c *Client) GetAllMissions(ctx context.Context, frame string) (map[int64]geom.Mission, error) {
	wireMissions, err := c.fetchMissions(ctx)
	if err != nil {
		return nil, err
	}
	missions := make(map[int64]geom.Mission, len(wireMissions))
	for _, m := range wireMissions {
		mission, err := serial.MissionFromWire(m, frame, c.clock.Now())
		if err != nil {
			return nil, err
		}
		missions[m.ID] = mission
	}
	return missions, nil
}

// GetMission returns the mission with the given id.
func (c *Client) GetMission(ctx context.Context, id int64, frame string) (geom.Mission, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/missions/%d", id), nil, "")
	if err != nil {
		return geom.Mission{}, err
	}
	var m wire.Mission
	if err := json.Unmarshal(data, &m); err != nil {
		return geom.Mission{}, fmt.Errorf("decode mission: %w", err)
	}
	return serial.MissionFromWire(m, frame, c.clock.Now())
}

// GetServerInfo returns the judge server's broadcast message and clocks.
func (c *Client) GetServerInfo(ctx context.Context) (geom.ServerInfo, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/server_info", nil, "")
	if err != nil {
		return geom.ServerInfo{}, err
	}
	var w wire.ServerInfo
	if err := json.Unmarshal(data, &w); err != nil {
		return geom.ServerInfo{}, fmt.Errorf("decode server info: %w", err)
	}
	return serial.ServerInfoFromWire(w)
}

func (c *Client) fetchMissions(ctx context.Context) ([]wire.Mission, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/missions", nil, "")
	if err != nil {
		return nil, err
	}
	var missions []wire.Mission
	if err := json.Unmarshal(data, &missions); err != nil {
		return nil, fmt.Errorf("decode missions: %w", err)
	}
	return missions, nil
}
