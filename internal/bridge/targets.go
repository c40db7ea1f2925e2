package bridge

import (
	"context"
	"encoding/json"
	"image"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/internal/serial"
	"github.com/skyhawk-robotics/interop-bridge/internal/targetstore"
	"github.com/skyhawk-robotics/interop-bridge/pkg/bus"
)

// Request and reply documents for the target service. Image bytes travel
// base64-encoded inside the JSON envelope.
type (
	AddTargetRequest struct {
		Target geom.Target `json:"target"`
	}
	AddTargetReply struct {
		Success bool   `json:"success"`
		ID      int64  `json:"id,omitempty"`
		Error   string `json:"error,omitempty"`
	}
	GetTargetRequest struct {
		ID int64 `json:"id"`
	}
	GetTargetReply struct {
		Success bool        `json:"success"`
		Target  geom.Target `json:"target,omitempty"`
		Error   string      `json:"error,omitempty"`
	}
	ListTargetsReply struct {
		Success bool                  `json:"success"`
		Targets map[int64]geom.Target `json:"targets,omitempty"`
		Error   string                `json:"error,omitempty"`
	}
	UpdateTargetRequest struct {
		ID     int64       `json:"id"`
		Target geom.Target `json:"target"`
	}
	StatusReply struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
	TargetImageRequest struct {
		ID  int64  `json:"id"`
		PNG []byte `json:"png,omitempty"`
	}
	TargetImageReply struct {
		Success bool   `json:"success"`
		PNG     []byte `json:"png,omitempty"`
		Error   string `json:"error,omitempty"`
	}
)

// TargetAPI is the slice of the interop client this service needs.
type TargetAPI interface {
	PostTarget(ctx context.Context, t geom.Target) (int64, error)
	GetTarget(ctx context.Context, id int64) (geom.Target, error)
	GetAllTargets(ctx context.Context) (map[int64]geom.Target, error)
	PutTarget(ctx context.Context, id int64, t geom.Target) error
	DeleteTarget(ctx context.Context, id int64) error
	PostTargetImage(ctx context.Context, id int64, img image.Image) error
	GetTargetImage(ctx context.Context, id int64) (image.Image, error)
	DeleteTargetImage(ctx context.Context, id int64) error
}

// Targets serves target submission over bus request/reply, mirroring every
// client call and archiving successful submissions. The archive is
// best-effort: a store failure is logged, never surfaced to the requester.
type Targets struct {
	client TargetAPI
	store  targetstore.Repository
	logger zerolog.Logger
}

func NewTargets(client TargetAPI, store targetstore.Repository, logger zerolog.Logger) *Targets {
	return &Targets{client: client, store: store, logger: logger}
}

// Subscribe attaches the request handlers to the bus. Handlers run under
// ctx so shutdown aborts in-flight server calls.
func (s *Targets) Subscribe(ctx context.Context, nc *nats.Conn) error {
	handlers := map[string]func(context.Context, []byte) []byte{
		bus.SubjectTargetAdd:         s.handleAdd,
		bus.SubjectTargetGet:         s.handleGet,
		bus.SubjectTargetList:        s.handleList,
		bus.SubjectTargetUpdate:      s.handleUpdate,
		bus.SubjectTargetDelete:      s.handleDelete,
		bus.SubjectTargetImageAdd:    s.handleImageAdd,
		bus.SubjectTargetImageGet:    s.handleImageGet,
		bus.SubjectTargetImageDelete: s.handleImageDelete,
	}
	for subject, handler := range handlers {
		handler := handler
		_, err := nc.Subscribe(subject, func(msg *nats.Msg) {
			if reply := handler(ctx, msg.Data); reply != nil {
				if err := msg.Respond(reply); err != nil {
					s.logger.Warn().Err(err).Str("subject", msg.Subject).Msg("respond failed")
				}
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Targets) handleAdd(ctx context.Context, data []byte) []byte {
	var req AddTargetRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(AddTargetReply{Error: err.Error()})
	}
	id, err := s.client.PostTarget(ctx, req.Target)
	if err != nil {
		logFailure(s.logger, "add target", err)
		return mustMarshal(AddTargetReply{Error: err.Error()})
	}
	s.archive(ctx, id, req.Target)
	return mustMarshal(AddTargetReply{Success: true, ID: id})
}

func (s *Targets) handleGet(ctx context.Context, data []byte) []byte {
	var req GetTargetRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(GetTargetReply{Error: err.Error()})
	}
	target, err := s.client.GetTarget(ctx, req.ID)
	if err != nil {
		logFailure(s.logger, "get target", err)
		return mustMarshal(GetTargetReply{Error: err.Error()})
	}
	return mustMarshal(GetTargetReply{Success: true, Target: target})
}

func (s *Targets) handleList(ctx context.Context, _ []byte) []byte {
	targets, err := s.client.GetAllTargets(ctx)
	if err != nil {
		logFailure(s.logger, "list targets", err)
		return mustMarshal(ListTargetsReply{Error: err.Error()})
	}
	return mustMarshal(ListTargetsReply{Success: true, Targets: targets})
}

func (s *Targets) handleUpdate(ctx context.Context, data []byte) []byte {
	var req UpdateTargetRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(StatusReply{Error: err.Error()})
	}
	if err := s.client.PutTarget(ctx, req.ID, req.Target); err != nil {
		logFailure(s.logger, "update target", err)
		return mustMarshal(StatusReply{Error: err.Error()})
	}
	s.archive(ctx, req.ID, req.Target)
	return mustMarshal(StatusReply{Success: true})
}

func (s *Targets) handleDelete(ctx context.Context, data []byte) []byte {
	var req GetTargetRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(StatusReply{Error: err.Error()})
	}
	if err := s.client.DeleteTarget(ctx, req.ID); err != nil {
		logFailure(s.logger, "delete target", err)
		return mustMarshal(StatusReply{Error: err.Error()})
	}
	if s.store != nil {
		if err := s.store.Delete(ctx, req.ID); err != nil {
			s.logger.Warn().Err(err).Int64("id", req.ID).Msg("archive delete failed")
		}
	}
	return mustMarshal(StatusReply{Success: true})
}

func (s *Targets) handleImageAdd(ctx context.Context, data []byte) []byte {
	var req TargetImageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(StatusReply{Error: err.Error()})
	}
	img, err := serial.DecodeImage(req.PNG)
	if err != nil {
		return mustMarshal(StatusReply{Error: err.Error()})
	}
	if err := s.client.PostTargetImage(ctx, req.ID, img); err != nil {
		logFailure(s.logger, "add target image", err)
		return mustMarshal(StatusReply{Error: err.Error()})
	}
	if s.store != nil {
		if err := s.store.SaveImage(ctx, req.ID, req.PNG); err != nil {
			s.logger.Warn().Err(err).Int64("id", req.ID).Msg("archive image failed")
		}
	}
	return mustMarshal(StatusReply{Success: true})
}

func (s *Targets) handleImageGet(ctx context.Context, data []byte) []byte {
	var req GetTargetRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(TargetImageReply{Error: err.Error()})
	}
	img, err := s.client.GetTargetImage(ctx, req.ID)
	if err != nil {
		logFailure(s.logger, "get target image", err)
		return mustMarshal(TargetImageReply{Error: err.Error()})
	}
	png, err := serial.EncodePNG(img)
	if err != nil {
		return mustMarshal(TargetImageReply{Error: err.Error()})
	}
	return mustMarshal(TargetImageReply{Success: true, PNG: png})
}

func (s *Targets) handleImageDelete(ctx context.Context, data []byte) []byte {
	var req GetTargetRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(StatusReply{Error: err.Error()})
	}
	if err := s.client.DeleteTargetImage(ctx, req.ID); err != nil {
		logFailure(s.logger, "delete target image", err)
		return mustMarshal(StatusReply{Error: err.Error()})
	}
	if s.store != nil {
		if err := s.store.DeleteImage(ctx, req.ID); err != nil {
			s.logger.Warn().Err(err).Int64("id", req.ID).Msg("archive image delete failed")
		}
	}
	return mustMarshal(StatusReply{Success: true})
}

func (s *Targets) archive(ctx context.Context, id int64, t geom.Target) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(serial.TargetToWire(t))
	if err != nil {
		return
	}
	if err := s.store.Save(ctx, id, data); err != nil {
		s.logger.Warn().Err(err).Int64("id", id).Msg("archive target failed")
	}
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"success":false,"error":"encode reply failed"}`)
	}
	return data
}
