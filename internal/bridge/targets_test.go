package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyhawk-robotics/interop-bridge/internal/geom"
	"github.com/skyhawk-robotics/interop-bridge/internal/serial"
	"github.com/skyhawk-robotics/interop-bridge/internal/targetstore"
	"github.com/skyhawk-robotics/interop-bridge/internal/testutil"
)

type fakeTargetAPI struct {
	targets map[int64]geom.Target
	images  map[int64]image.Image
	nextID  int64
	err     error
}

func newFakeTargetAPI() *fakeTargetAPI {
	return &fakeTargetAPI{
		targets: map[int64]geom.Target{},
		images:  map[int64]image.Image{},
		nextID:  1,
	}
}

func (f *fakeTargetAPI) PostTarget(_ context.Context, t geom.Target) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	id := f.nextID
	f.nextID++
	t.ID = id
	f.targets[id] = t
	return id, nil
}

func (f *fakeTargetAPI) GetTarget(_ context.Context, id int64) (geom.Target, error) {
	if f.err != nil {
		return geom.Target{}, f.err
	}
	t, ok := f.targets[id]
	if !ok {
		return geom.Target{}, errors.New("no such target")
	}
	return t, nil
}

func (f *fakeTargetAPI) GetAllTargets(_ context.Context) (map[int64]geom.Target, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.targets, nil
}

func (f *fakeTargetAPI) PutTarget(_ context.Context, id int64, t geom.Target) error {
	if f.err != nil {
		return f.err
	}
	f.targets[id] = t
	return nil
}

func (f *fakeTargetAPI) DeleteTarget(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	delete(f.targets, id)
	return nil
}

func (f *fakeTargetAPI) PostTargetImage(_ context.Context, id int64, img image.Image) error {
	if f.err != nil {
		return f.err
	}
	f.images[id] = img
	return nil
}

func (f *fakeTargetAPI) GetTargetImage(_ context.Context, id int64) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	img, ok := f.images[id]
	if !ok {
		return nil, errors.New("no such image")
	}
	return img, nil
}

func (f *fakeTargetAPI) DeleteTargetImage(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	delete(f.images, id)
	return nil
}

type fakeRepository struct {
	saved      map[int64][]byte
	images     map[int64][]byte
	deleted    []int64
	imgDeleted []int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{saved: map[int64][]byte{}, images: map[int64][]byte{}}
}

func (r *fakeRepository) Save(_ context.Context, id int64, data []byte) error {
	r.saved[id] = data
	return nil
}

func (r *fakeRepository) SaveImage(_ context.Context, id int64, png []byte) error {
	r.images[id] = png
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRepository) DeleteImage(_ context.Context, id int64) error {
	r.imgDeleted = append(r.imgDeleted, id)
	return nil
}

func (r *fakeRepository) Get(_ context.Context, id int64) (targetstore.Record, error) {
	data, ok := r.saved[id]
	if !ok {
		return targetstore.Record{}, targetstore.ErrNotFound
	}
	return targetstore.Record{ID: id, Data: data, Image: r.images[id], UpdatedAt: time.Now()}, nil
}

func (r *fakeRepository) List(_ context.Context) ([]targetstore.Record, error) {
	var records []targetstore.Record
	for id, data := range r.saved {
		records = append(records, targetstore.Record{ID: id, Data: data})
	}
	return records, nil
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), A: 255})
		}
	}
	png, err := serial.EncodePNG(img)
	if err != nil {
		t.Fatal(err)
	}
	return png
}

func TestTargetsAddArchivesSubmission(t *testing.T) {
	t.Parallel()
	api := newFakeTargetAPI()
	repo := newFakeRepository()
	svc := NewTargets(api, repo, zerolog.Nop())

	ctx, cancel := testutil.Context(t)
	defer cancel()

	req := mustMarshal(AddTargetRequest{Target: geom.Target{
		Type:            geom.TargetStandard,
		Shape:           geom.ShapeCircle,
		BackgroundColor: geom.ColorWhite,
		Alphanumeric:    "A",
	}})
	var reply AddTargetReply
	if err := json.Unmarshal(svc.handleAdd(ctx, req), &reply); err != nil {
		t.Fatal(err)
	}
	if !reply.Success || reply.ID != 1 {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	data, ok := repo.saved[1]
	if !ok {
		t.Fatal("submission was not archived")
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["type"] != "standard" || doc["shape"] != "circle" {
		t.Fatalf("archive holds wrong document: %v", doc)
	}
}

func TestTargetsAddFailureReply(t *testing.T) {
	t.Parallel()
	api := newFakeTargetAPI()
	api.err = errors.New("server rejected target")
	svc := NewTargets(api, nil, zerolog.Nop())

	ctx, cancel := testutil.Context(t)
	defer cancel()

	var reply AddTargetReply
	if err := json.Unmarshal(svc.handleAdd(ctx, mustMarshal(AddTargetRequest{})), &reply); err != nil {
		t.Fatal(err)
	}
	if reply.Success || reply.Error == "" {
		t.Fatalf("expected failure reply, got %+v", reply)
	}
}

func TestTargetsGetAndList(t *testing.T) {
	t.Parallel()
	api := newFakeTargetAPI()
	api.targets[5] = geom.Target{ID: 5, Type: geom.TargetEmergent, Description: "lost hiker"}
	svc := NewTargets(api, nil, zerolog.Nop())

	ctx, cancel := testutil.Context(t)
	defer cancel()

	var getReply GetTargetReply
	if err := json.Unmarshal(svc.handleGet(ctx, mustMarshal(GetTargetRequest{ID: 5})), &getReply); err != nil {
		t.Fatal(err)
	}
	if !getReply.Success || getReply.Target.Description != "lost hiker" {
		t.Fatalf("unexpected get reply: %+v", getReply)
	}

	var listReply ListTargetsReply
	if err := json.Unmarshal(svc.handleList(ctx, nil), &listReply); err != nil {
		t.Fatal(err)
	}
	if !listReply.Success || len(listReply.Targets) != 1 {
		t.Fatalf("unexpected list reply: %+v", listReply)
	}
}

func TestTargetsDeleteRemovesArchive(t *testing.T) {
	t.Parallel()
	api := newFakeTargetAPI()
	api.targets[3] = geom.Target{ID: 3}
	repo := newFakeRepository()
	repo.saved[3] = []byte(`{}`)
	svc := NewTargets(api, repo, zerolog.Nop())

	ctx, cancel := testutil.Context(t)
	defer cancel()

	var reply StatusReply
	if err := json.Unmarshal(svc.handleDelete(ctx, mustMarshal(GetTargetRequest{ID: 3})), &reply); err != nil {
		t.Fatal(err)
	}
	if !reply.Success {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 3 {
		t.Fatalf("archive delete not forwarded: %v", repo.deleted)
	}
}

func TestTargetsImageRoundTrip(t *testing.T) {
	t.Parallel()
	api := newFakeTargetAPI()
	repo := newFakeRepository()
	svc := NewTargets(api, repo, zerolog.Nop())

	ctx, cancel := testutil.Context(t)
	defer cancel()

	png := smallPNG(t)
	var addReply StatusReply
	if err := json.Unmarshal(svc.handleImageAdd(ctx, mustMarshal(TargetImageRequest{ID: 9, PNG: png})), &addReply); err != nil {
		t.Fatal(err)
	}
	if !addReply.Success {
		t.Fatalf("unexpected add reply: %+v", addReply)
	}
	if _, ok := repo.images[9]; !ok {
		t.Fatal("image was not archived")
	}

	var getReply TargetImageReply
	if err := json.Unmarshal(svc.handleImageGet(ctx, mustMarshal(GetTargetRequest{ID: 9})), &getReply); err != nil {
		t.Fatal(err)
	}
	if !getReply.Success || len(getReply.PNG) == 0 {
		t.Fatalf("unexpected image reply: %+v", getReply)
	}
	if _, err := serial.DecodeImage(getReply.PNG); err != nil {
		t.Fatalf("reply is not a decodable image: %v", err)
	}

	var delReply StatusReply
	if err := json.Unmarshal(svc.handleImageDelete(ctx, mustMarshal(GetTargetRequest{ID: 9})), &delReply); err != nil {
		t.Fatal(err)
	}
	if !delReply.Success {
		t.Fatalf("unexpected delete reply: %+v", delReply)
	}
	if len(repo.imgDeleted) != 1 || repo.imgDeleted[0] != 9 {
		t.Fatalf("archive image delete not forwarded: %v", repo.imgDeleted)
	}
}

func TestTargetsImageAddRejectsGarbage(t *testing.T) {
	t.Parallel()
	svc := NewTargets(newFakeTargetAPI(), nil, zerolog.Nop())

	ctx, cancel := testutil.Context(t)
	defer cancel()

	var reply StatusReply
	req := mustMarshal(TargetImageRequest{ID: 9, PNG: []byte("not an image")})
	if err := json.Unmarshal(svc.handleImageAdd(ctx, req), &reply); err != nil {
		t.Fatal(err)
	}
	if reply.Success || reply.Error == "" {
		t.Fatalf("expected failure reply, got %+v", reply)
	}
}

func TestTargetsMalformedRequest(t *testing.T) {
	t.Parallel()
	svc := NewTargets(newFakeTargetAPI(), nil, zerolog.Nop())

	ctx, cancel := testutil.Context(t)
	defer cancel()

	var reply AddTargetReply
	if err := json.Unmarshal(svc.handleAdd(ctx, []byte(`{garbage`)), &reply); err != nil {
		t.Fatal(err)
	}
	if reply.Success || reply.Error == "" {
		t.Fatalf("expected failure reply, got %+v", reply)
	}
}
