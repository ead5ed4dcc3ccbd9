package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/moftahak/studio-service/internal/models"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCoordinator() (*DragDropCoordinator, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := NewDragDropCoordinator()
	c.nowFn = clock.Now
	return c, clock
}

func libPayload() DragPayload {
	return DragPayload{ItemID: "kitchen-oven", Name: "Oven", DefaultPrice: 1800, Type: "kitchen", Source: "library"}
}

// ------------------------------------------------------------
// (A) Activation rules
// ------------------------------------------------------------

func TestMouseClickNeverActivates(t *testing.T) {
	c, _ := newTestCoordinator()
	c.RegisterTarget(DropTarget{ID: "room", Rect: models.Rect{X: 0, Y: 0, W: 100, H: 100}})

	c.PointerDown(PointerMouse, libPayload(), models.Point{X: 50, Y: 50}, models.Rect{X: 45, Y: 45, W: 10, H: 10})
	require.Equal(t, PhasePending, c.Phase())

	c.PointerMove(models.Point{X: 55, Y: 50}) // 5px, under the threshold
	require.Equal(t, PhasePending, c.Phase())

	require.False(t, c.PointerUp())
	require.Equal(t, PhaseIdle, c.Phase())
}

func TestMouseActivatesAfterTravel(t *testing.T) {
	c, _ := newTestCoordinator()
	c.RegisterTarget(DropTarget{ID: "room", Rect: models.Rect{X: 0, Y: 0, W: 100, H: 100}})

	c.PointerDown(PointerMouse, libPayload(), models.Point{X: 50, Y: 50}, models.Rect{X: 45, Y: 45, W: 10, H: 10})
	c.PointerMove(models.Point{X: 62, Y: 50}) // 12px
	require.Equal(t, PhaseDragging, c.Phase())
}

func TestTouchHoldActivates(t *testing.T) {
	c, clock := newTestCoordinator()
	c.RegisterTarget(DropTarget{ID: "room", Rect: models.Rect{X: 0, Y: 0, W: 100, H: 100}})

	c.PointerDown(PointerTouch, libPayload(), models.Point{X: 50, Y: 50}, models.Rect{X: 45, Y: 45, W: 10, H: 10})

	// small jitter before the hold delay keeps the gesture pending
	c.PointerMove(models.Point{X: 53, Y: 50})
	require.Equal(t, PhasePending, c.Phase())

	clock.Advance(300 * time.Millisecond)
	c.PointerMove(models.Point{X: 53, Y: 51})
	require.Equal(t, PhaseDragging, c.Phase())
}

func TestTouchScrollCancels(t *testing.T) {
	c, _ := newTestCoordinator()
	c.RegisterTarget(DropTarget{ID: "room", Rect: models.Rect{X: 0, Y: 0, W: 100, H: 100}})

	c.PointerDown(PointerTouch, libPayload(), models.Point{X: 50, Y: 50}, models.Rect{X: 45, Y: 45, W: 10, H: 10})
	c.PointerMove(models.Point{X: 50, Y: 58}) // 8px before the delay: a scroll
	require.Equal(t, PhaseIdle, c.Phase())
}

func TestHeldTouchActivatesOnRelease(t *testing.T) {
	c, clock := newTestCoordinator()

	dropped := false
	c.RegisterTarget(DropTarget{
		ID:     "room",
		Rect:   models.Rect{X: 0, Y: 0, W: 100, H: 100},
		OnDrop: func(DragPayload) bool { dropped = true; return true },
	})

	// press inside the target and hold without moving at all
	c.PointerDown(PointerTouch, libPayload(), models.Point{X: 50, Y: 50}, models.Rect{X: 45, Y: 45, W: 10, H: 10})
	clock.Advance(300 * time.Millisecond)

	require.True(t, c.PointerUp())
	require.True(t, dropped)
}

// ------------------------------------------------------------
// (B) Collision tiers
// ------------------------------------------------------------

func TestPointerInsideBeatsLargerOverlap(t *testing.T) {
	c, _ := newTestCoordinator()
	c.RegisterTarget(DropTarget{ID: "a", Rect: models.Rect{X: 0, Y: 0, W: 100, H: 100}})
	c.RegisterTarget(DropTarget{ID: "b", Rect: models.Rect{X: 100, Y: 0, W: 100, H: 100}})

	// item straddles the boundary with most of its area over b, but the
	// pointer itself sits inside a
	c.PointerDown(PointerMouse, libPayload(), models.Point{X: 95, Y: 50}, models.Rect{X: 90, Y: 40, W: 60, H: 20})
	c.PointerMove(models.Point{X: 95, Y: 70})

	id, rejecting, ok := c.CurrentTarget()
	require.True(t, ok)
	require.Equal(t, "a", id)
	require.False(t, rejecting)
}

func TestOverlapFallbackWhenPointerOutside(t *testing.T) {
	c, _ := newTestCoordinator()
	c.RegisterTarget(DropTarget{ID: "a", Rect: models.Rect{X: 0, Y: 100, W: 100, H: 100}})
	c.RegisterTarget(DropTarget{ID: "b", Rect: models.Rect{X: 100, Y: 100, W: 100, H: 100}})

	// pointer above both targets; the item rect dips into b the most
	c.PointerDown(PointerMouse, libPayload(), models.Point{X: 130, Y: 50}, models.Rect{X: 110, Y: 40, W: 80, H: 60}) // grab offset (20,10)
	c.PointerMove(models.Point{X: 130, Y: 72})                                                                      // item now spans y 62..122

	id, _, ok := c.CurrentTarget()
	require.True(t, ok)
	require.Equal(t, "b", id)
}

func TestNearestCenterFallback(t *testing.T) {
	c, _ := newTestCoordinator()
	c.RegisterTarget(DropTarget{ID: "near", Rect: models.Rect{X: 0, Y: 200, W: 50, H: 50}})
	c.RegisterTarget(DropTarget{ID: "far", Rect: models.Rect{X: 500, Y: 200, W: 50, H: 50}})

	c.PointerDown(PointerMouse, libPayload(), models.Point{X: 30, Y: 20}, models.Rect{X: 25, Y: 15, W: 10, H: 10})
	c.PointerMove(models.Point{X: 30, Y: 60})

	id, _, ok := c.CurrentTarget()
	require.True(t, ok)
	require.Equal(t, "near", id)
}

// ------------------------------------------------------------
// (C) Accept lists and cancellation
// ------------------------------------------------------------

func TestRejectingTargetRefusesDrop(t *testing.T) {
	c, _ := newTestCoordinator()

	dropped := false
	c.RegisterTarget(DropTarget{
		ID:      "bathroom",
		Rect:    models.Rect{X: 0, Y: 0, W: 100, H: 100},
		Accepts: []string{"bathroom"},
		OnDrop:  func(DragPayload) bool { dropped = true; return true },
	})

	c.PointerDown(PointerMouse, libPayload(), models.Point{X: 50, Y: 50}, models.Rect{X: 45, Y: 45, W: 10, H: 10})
	c.PointerMove(models.Point{X: 50, Y: 70})

	id, rejecting, ok := c.CurrentTarget()
	require.True(t, ok)
	require.Equal(t, "bathroom", id)
	require.True(t, rejecting) // kitchen payload over a bathroom-only target

	require.False(t, c.PointerUp())
	require.False(t, dropped)
}

func TestCancelDiscardsWithoutCallback(t *testing.T) {
	c, _ := newTestCoordinator()

	dropped := false
	c.RegisterTarget(DropTarget{
		ID:     "room",
		Rect:   models.Rect{X: 0, Y: 0, W: 100, H: 100},
		OnDrop: func(DragPayload) bool { dropped = true; return true },
	})

	c.PointerDown(PointerMouse, libPayload(), models.Point{X: 50, Y: 50}, models.Rect{X: 45, Y: 45, W: 10, H: 10})
	c.PointerMove(models.Point{X: 50, Y: 70})
	require.Equal(t, PhaseDragging, c.Phase())

	c.Cancel()
	require.Equal(t, PhaseIdle, c.Phase())
	require.False(t, dropped)
}

// ------------------------------------------------------------
// (D) End-to-end placement through the slide store
// ------------------------------------------------------------

func newDragFixture(t *testing.T) (*DragDropService, *StudyService, uuid.UUID, string) {
	t.Helper()
	store := NewStudyService()
	library := NewLibraryCacheService(StaticLibraryRegistry{}, time.Minute)
	svc := NewDragDropService(store, library)

	st := store.CreateStudy("Drag fixture")
	_, ok := store.RegenerateRoomSlides(st.ID, models.RoomCounts{Kitchens: 1})
	require.True(t, ok)
	got, _ := store.GetStudy(st.ID)
	kitchen := findSlideByType(t, got, models.SlideTypeKitchen)
	return svc, store, st.ID, kitchen.ID
}

func TestDropPlacesLibraryItem(t *testing.T) {
	svc, store, studyID, kitchenID := newDragFixture(t)
	svc.RegisterRoomTarget(studyID, kitchenID, models.Rect{X: 0, Y: 0, W: 400, H: 300}, nil)

	c := svc.Coordinator(studyID)
	c.PointerDown(PointerMouse, libPayload(), models.Point{X: 50, Y: 50}, models.Rect{X: 45, Y: 45, W: 10, H: 10})
	c.PointerMove(models.Point{X: 120, Y: 120})
	require.True(t, c.PointerUp())

	got, _ := store.GetStudy(studyID)
	kitchen := findSlideByType(t, got, models.SlideTypeKitchen)
	room := kitchen.Data.(*models.RoomData)
	require.Len(t, room.Items, 1)
	require.Equal(t, "Oven", room.Items[0].Name)
	require.Equal(t, 1800.0, room.Items[0].Price)
	require.Equal(t, 1800.0, got.TotalCost)
}

func TestCancelledDragLeavesStoreUntouched(t *testing.T) {
	svc, store, studyID, kitchenID := newDragFixture(t)
	svc.RegisterRoomTarget(studyID, kitchenID, models.Rect{X: 0, Y: 0, W: 400, H: 300}, nil)

	before, _ := store.GetStudy(studyID)

	c := svc.Coordinator(studyID)
	c.PointerDown(PointerMouse, libPayload(), models.Point{X: 50, Y: 50}, models.Rect{X: 45, Y: 45, W: 10, H: 10})
	c.PointerMove(models.Point{X: 120, Y: 120})
	c.Cancel()

	after, _ := store.GetStudy(studyID)
	require.Equal(t, before.TotalCost, after.TotalCost)
	require.Equal(t, before.UpdatedAt, after.UpdatedAt)
	kitchen := findSlideByType(t, after, models.SlideTypeKitchen)
	require.Empty(t, kitchen.Data.(*models.RoomData).Items)
}
