package services

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moftahak/studio-service/internal/models"
	"github.com/moftahak/studio-service/internal/utils"
)

const (
	// mouse drags activate after this much travel, so plain clicks never drag
	mouseActivationDistancePx = 10.0
	// touch drags activate after a press-and-hold with low movement;
	// larger movement before the delay is treated as a scroll
	touchActivationDelay     = 250 * time.Millisecond
	touchMovementTolerancePx = 5.0
)

type PointerKind string

const (
	PointerMouse PointerKind = "mouse"
	PointerTouch PointerKind = "touch"
)

type DragPhase int

const (
	PhaseIdle DragPhase = iota
	PhasePending
	PhaseDragging
)

// DragPayload is the carried half of a drag: a content-library item
// definition on its way into a room.
type DragPayload struct {
	ItemID       string  `json:"item_id"`
	Name         string  `json:"name"`
	Icon         string  `json:"icon"`
	DefaultPrice float64 `json:"default_price"`
	Type         string  `json:"type"`
	Source       string  `json:"source"`
}

// DropTarget is a registered droppable region. An empty Accepts list
// accepts every payload type.
type DropTarget struct {
	ID      string
	Rect    models.Rect
	Accepts []string
	OnDrop  func(DragPayload) bool
}

func (t DropTarget) accepts(payloadType string) bool {
	if len(t.Accepts) == 0 {
		return true
	}
	for _, a := range t.Accepts {
		if a == payloadType {
			return true
		}
	}
	return false
}

// DragDropCoordinator recognizes pointer gestures as drags and resolves
// drop targets. State machine: idle → pending → dragging → idle. It is
// transient interaction state only; a cancelled drag leaves the slide
// store and room payloads completely untouched.
type DragDropCoordinator struct {
	mu    sync.Mutex
	nowFn func() time.Time

	targets map[string]DropTarget

	phase      DragPhase
	kind       PointerKind
	payload    DragPayload
	itemSize   models.Point
	grabOffset models.Point
	startPos   models.Point
	pos        models.Point
	startedAt  time.Time

	hoverID        string
	hoverRejecting bool
}

func NewDragDropCoordinator() *DragDropCoordinator {
	return &DragDropCoordinator{
		nowFn:   time.Now,
		targets: make(map[string]DropTarget),
	}
}

func (c *DragDropCoordinator) RegisterTarget(t DropTarget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.targets[t.ID] = t
}

func (c *DragDropCoordinator) UnregisterTarget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.targets, id)
	if c.hoverID == id {
		c.hoverID = ""
		c.hoverRejecting = false
	}
}

func (c *DragDropCoordinator) Phase() DragPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// CurrentTarget reports the hovered droppable and whether it is
// rejecting the payload.
func (c *DragDropCoordinator) CurrentTarget() (id string, rejecting bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseDragging || c.hoverID == "" {
		return "", false, false
	}
	return c.hoverID, c.hoverRejecting, true
}

// PointerDown arms a potential drag with the payload and the dragged
// item's initial bounding box.
func (c *DragDropCoordinator) PointerDown(kind PointerKind, payload DragPayload, pointer models.Point, itemRect models.Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhasePending
	c.kind = kind
	c.payload = payload
	c.itemSize = models.Point{X: itemRect.W, Y: itemRect.H}
	c.grabOffset = models.Point{X: pointer.X - itemRect.X, Y: pointer.Y - itemRect.Y}
	c.startPos = pointer
	c.pos = pointer
	c.startedAt = c.nowFn()
	c.hoverID = ""
	c.hoverRejecting = false
}

// PointerMove feeds pointer motion through the activation rules and,
// once dragging, re-resolves the hovered droppable.
func (c *DragDropCoordinator) PointerMove(pointer models.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.phase {
	case PhaseIdle:
		return
	case PhasePending:
		c.pos = pointer
		travel := dist(c.startPos, pointer)
		switch c.kind {
		case PointerMouse:
			if travel >= mouseActivationDistancePx {
				c.phase = PhaseDragging
			}
		case PointerTouch:
			if travel > touchMovementTolerancePx {
				// moved too far too soon: this is a scroll, not a drag
				c.reset()
				return
			}
			if c.nowFn().Sub(c.startedAt) >= touchActivationDelay {
				c.phase = PhaseDragging
			}
		}
		if c.phase == PhaseDragging {
			c.resolveHover()
		}
	case PhaseDragging:
		c.pos = pointer
		c.resolveHover()
	}
}

// PointerUp finishes the gesture. A drop on a valid, accepting target
// invokes its place callback; everything else discards the payload.
func (c *DragDropCoordinator) PointerUp() bool {
	c.mu.Lock()
	// a held touch that never travelled still becomes a drag on release
	if c.phase == PhasePending && c.kind == PointerTouch &&
		c.nowFn().Sub(c.startedAt) >= touchActivationDelay {
		c.phase = PhaseDragging
		c.resolveHover()
	}
	if c.phase != PhaseDragging || c.hoverID == "" || c.hoverRejecting {
		c.reset()
		c.mu.Unlock()
		return false
	}
	target := c.targets[c.hoverID]
	payload := c.payload
	c.reset()
	c.mu.Unlock()

	if target.OnDrop == nil {
		return false
	}
	placed := target.OnDrop(payload)
	if placed {
		utils.Logger.Debugf("Placed %q onto %s", payload.Name, target.ID)
	}
	return placed
}

// Cancel (escape / pointer-cancel) discards the drag without invoking
// any callback.
func (c *DragDropCoordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *DragDropCoordinator) reset() {
	c.phase = PhaseIdle
	c.payload = DragPayload{}
	c.hoverID = ""
	c.hoverRejecting = false
}

func (c *DragDropCoordinator) itemRect() models.Rect {
	return models.Rect{
		X: c.pos.X - c.grabOffset.X,
		Y: c.pos.Y - c.grabOffset.Y,
		W: c.itemSize.X,
		H: c.itemSize.Y,
	}
}

// resolveHover applies the three-tier collision policy: exact
// pointer-inside-rectangle, then bounding-box intersection, then
// nearest center. Must be called with the lock held.
func (c *DragDropCoordinator) resolveHover() {
	c.hoverID = ""
	c.hoverRejecting = false
	if len(c.targets) == 0 {
		return
	}

	// tier 1: pointer inside a droppable; ties go to the nearest center
	best := ""
	bestDist := math.MaxFloat64
	for id, t := range c.targets {
		if t.Rect.Contains(c.pos) {
			if d := dist(c.pos, t.Rect.Center()); d < bestDist {
				best, bestDist = id, d
			}
		}
	}

	// tier 2: bounding-box intersection; largest overlap wins
	if best == "" {
		rect := c.itemRect()
		bestArea := 0.0
		for id, t := range c.targets {
			if area := rect.IntersectionArea(t.Rect); area > bestArea {
				best, bestArea = id, area
			}
		}
	}

	// tier 3: nearest center
	if best == "" {
		center := c.itemRect().Center()
		bestDist = math.MaxFloat64
		for id, t := range c.targets {
			if d := dist(center, t.Rect.Center()); d < bestDist {
				best, bestDist = id, d
			}
		}
	}

	c.hoverID = best
	c.hoverRejecting = best != "" && !c.targets[best].accepts(c.payload.Type)
}

func dist(a, b models.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

/* ------------------------------------------------------------------
   Per-study sessions wired to the library and the slide store
------------------------------------------------------------------ */

// DragDropService keys one coordinator per open study and wires drop
// targets so that a successful drop places the library item into the
// target room slide.
type DragDropService struct {
	mu       sync.Mutex
	store    *StudyService
	library  *LibraryCacheService
	sessions map[uuid.UUID]*DragDropCoordinator
}

func NewDragDropService(store *StudyService, library *LibraryCacheService) *DragDropService {
	return &DragDropService{
		store:    store,
		library:  library,
		sessions: make(map[uuid.UUID]*DragDropCoordinator),
	}
}

// Coordinator returns the study's coordinator, creating it on first
// use.
func (s *DragDropService) Coordinator(studyID uuid.UUID) *DragDropCoordinator {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.sessions[studyID]; ok {
		return c
	}
	c := NewDragDropCoordinator()
	s.sessions[studyID] = c
	return c
}

// RegisterRoomTarget declares a room slide as a droppable region. The
// place callback resolves the payload back to its library definition
// (falling back to the payload's own fields for customized items) and
// routes the placement through the slide store.
func (s *DragDropService) RegisterRoomTarget(studyID uuid.UUID, slideID string, rect models.Rect, accepts []string) {
	c := s.Coordinator(studyID)
	c.RegisterTarget(DropTarget{
		ID:      slideID,
		Rect:    rect,
		Accepts: accepts,
		OnDrop: func(p DragPayload) bool {
			def, ok := s.library.FindItem(p.ItemID)
			if !ok {
				def = models.LibraryItem{ID: p.ItemID, Name: p.Name, Icon: p.Icon, DefaultPrice: p.DefaultPrice}
			}
			_, placed := s.store.PlaceItem(studyID, slideID, def)
			return placed
		},
	})
}

func (s *DragDropService) UnregisterTarget(studyID uuid.UUID, slideID string) {
	s.Coordinator(studyID).UnregisterTarget(slideID)
}

// EndSession drops a study's coordinator (e.g. when the study closes).
func (s *DragDropService) EndSession(studyID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, studyID)
}
