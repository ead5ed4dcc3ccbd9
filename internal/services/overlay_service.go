package services

import (
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/moftahak/studio-service/internal/models"
)

const (
	minImageDimension = 50.0
	rotationStepDeg   = 15.0
	minFontSize       = 12.0
	maxFontSize       = 48.0
)

type overlayRef struct {
	studyID   uuid.UUID
	slideID   string
	overlayID string
}

type overlayDragState struct {
	ref    overlayRef
	offset models.Point
	zoom   float64
}

type overlayResizeState struct {
	ref        overlayRef
	origWidth  float64
	origHeight float64
	zoom       float64
}

type overlayRenameState struct {
	ref      overlayRef
	original string
}

// OverlayService is the overlay engine: it owns the transient
// interaction state (selection, drag/resize/rename sessions) and the
// coordinate math, while the overlay records themselves live in the
// slide store. Overlay coordinates are in the slide's fixed logical
// pixel space; pointer positions arrive in screen space and are divided
// by the ambient zoom scale on the way in.
type OverlayService struct {
	mu       sync.Mutex
	store    *StudyService
	selected *overlayRef
	drag     *overlayDragState
	resize   *overlayResizeState
	rename   *overlayRenameState
}

func NewOverlayService(store *StudyService) *OverlayService {
	return &OverlayService{store: store}
}

// AddText drops a new text overlay at a slide-local position.
func (e *OverlayService) AddText(studyID uuid.UUID, slideID string, pos models.Point) (models.OverlayItem, bool) {
	item := &models.TextOverlayItem{
		Kind:       models.OverlayKindText,
		Content:    "New text",
		X:          pos.X,
		Y:          pos.Y,
		FontSize:   16,
		Color:      "#000000",
		FontWeight: "normal",
	}
	return e.store.AddOverlay(studyID, slideID, item)
}

// AddImage drops a new image overlay at a slide-local position.
func (e *OverlayService) AddImage(studyID uuid.UUID, slideID, src string, width, height float64, pos models.Point) (models.OverlayItem, bool) {
	if width <= 0 {
		width = 200
	}
	if height <= 0 {
		height = 150
	}
	item := &models.ImageOverlayItem{
		Kind:   models.OverlayKindImage,
		Src:    src,
		X:      pos.X,
		Y:      pos.Y,
		Width:  width,
		Height: height,
	}
	return e.store.AddOverlay(studyID, slideID, item)
}

// ListForSlide returns a copy of the slide's overlay list.
func (e *OverlayService) ListForSlide(studyID uuid.UUID, slideID string) (models.OverlayList, bool) {
	return e.store.ListOverlays(studyID, slideID)
}

// MoveTo places an overlay directly under the (screen-space) pointer:
// position = pointer / zoom. Interactive drags with a grab offset go
// through BeginDrag / DragTo instead.
func (e *OverlayService) MoveTo(studyID uuid.UUID, slideID, overlayID string, pointer models.Point, zoom float64) (models.OverlayItem, bool) {
	if zoom <= 0 {
		zoom = 1
	}
	item, ok := e.store.GetOverlay(studyID, slideID, overlayID)
	if !ok {
		return nil, false
	}
	item.SetPosition(models.Point{X: pointer.X / zoom, Y: pointer.Y / zoom})
	if !e.store.ReplaceOverlay(studyID, slideID, item) {
		return nil, false
	}
	return item, true
}

// Update fully replaces the overlay record with the same id.
func (e *OverlayService) Update(studyID uuid.UUID, slideID string, item models.OverlayItem) bool {
	return e.store.ReplaceOverlay(studyID, slideID, item)
}

func (e *OverlayService) Delete(studyID uuid.UUID, slideID, overlayID string) bool {
	ok := e.store.DeleteOverlay(studyID, slideID, overlayID)
	if ok {
		e.mu.Lock()
		if e.selected != nil && e.selected.overlayID == overlayID {
			e.selected = nil
		}
		e.mu.Unlock()
	}
	return ok
}

/* ------------------------------------------------------------------
   Selection
------------------------------------------------------------------ */

// Select makes the overlay the single selected element; any previous
// selection is dropped.
func (e *OverlayService) Select(studyID uuid.UUID, slideID, overlayID string) bool {
	if _, ok := e.store.GetOverlay(studyID, slideID, overlayID); !ok {
		return false
	}
	e.mu.Lock()
	e.selected = &overlayRef{studyID: studyID, slideID: slideID, overlayID: overlayID}
	e.mu.Unlock()
	return true
}

// Selected returns the currently selected overlay, if any.
func (e *OverlayService) Selected() (models.OverlayItem, bool) {
	e.mu.Lock()
	ref := e.selected
	e.mu.Unlock()
	if ref == nil {
		return nil, false
	}
	return e.store.GetOverlay(ref.studyID, ref.slideID, ref.overlayID)
}

func (e *OverlayService) ClearSelection() {
	e.mu.Lock()
	e.selected = nil
	e.mu.Unlock()
}

// PressAt handles a pointer press on the slide surface: the topmost
// overlay under the (screen-space) pointer becomes selected and starts
// a drag; a press outside every overlay clears the selection.
func (e *OverlayService) PressAt(studyID uuid.UUID, slideID string, pointer models.Point, zoom float64) (models.OverlayItem, bool) {
	if zoom <= 0 {
		zoom = 1
	}
	local := models.Point{X: pointer.X / zoom, Y: pointer.Y / zoom}

	list, ok := e.store.ListOverlays(studyID, slideID)
	if !ok {
		return nil, false
	}
	for i := len(list) - 1; i >= 0; i-- {
		item := list[i]
		if overlayBounds(item).Contains(local) {
			e.mu.Lock()
			ref := overlayRef{studyID: studyID, slideID: slideID, overlayID: item.GetID()}
			e.selected = &ref
			e.drag = &overlayDragState{
				ref:    ref,
				offset: models.Point{X: local.X - item.GetPosition().X, Y: local.Y - item.GetPosition().Y},
				zoom:   zoom,
			}
			e.mu.Unlock()
			return item, true
		}
	}
	e.ClearSelection()
	return nil, false
}

func overlayBounds(item models.OverlayItem) models.Rect {
	switch v := item.(type) {
	case *models.ImageOverlayItem:
		return models.Rect{X: v.X, Y: v.Y, W: v.Width, H: v.Height}
	case *models.TextOverlayItem:
		// approximate glyph box; good enough for hit-testing
		w := 0.6 * v.FontSize * float64(len([]rune(v.Content)))
		return models.Rect{X: v.X, Y: v.Y, W: w, H: 1.3 * v.FontSize}
	}
	return models.Rect{}
}

/* ------------------------------------------------------------------
   Dragging
------------------------------------------------------------------ */

// BeginDrag captures (pointer / zoom) - position as the drag offset.
func (e *OverlayService) BeginDrag(studyID uuid.UUID, slideID, overlayID string, pointer models.Point, zoom float64) bool {
	if zoom <= 0 {
		zoom = 1
	}
	item, ok := e.store.GetOverlay(studyID, slideID, overlayID)
	if !ok {
		return false
	}
	pos := item.GetPosition()
	e.mu.Lock()
	ref := overlayRef{studyID: studyID, slideID: slideID, overlayID: overlayID}
	e.selected = &ref
	e.drag = &overlayDragState{
		ref:    ref,
		offset: models.Point{X: pointer.X/zoom - pos.X, Y: pointer.Y/zoom - pos.Y},
		zoom:   zoom,
	}
	e.mu.Unlock()
	return true
}

// DragTo moves the dragged overlay so that position = pointer / zoom -
// offset, keeping overlay coordinates zoom-independent.
func (e *OverlayService) DragTo(pointer models.Point) (models.OverlayItem, bool) {
	e.mu.Lock()
	drag := e.drag
	e.mu.Unlock()
	if drag == nil {
		return nil, false
	}
	item, ok := e.store.GetOverlay(drag.ref.studyID, drag.ref.slideID, drag.ref.overlayID)
	if !ok {
		return nil, false
	}
	item.SetPosition(models.Point{
		X: pointer.X/drag.zoom - drag.offset.X,
		Y: pointer.Y/drag.zoom - drag.offset.Y,
	})
	if !e.store.ReplaceOverlay(drag.ref.studyID, drag.ref.slideID, item) {
		return nil, false
	}
	return item, true
}

func (e *OverlayService) EndDrag() {
	e.mu.Lock()
	e.drag = nil
	e.mu.Unlock()
}

/* ------------------------------------------------------------------
   Image resize / rotation
------------------------------------------------------------------ */

// BeginResize opens a resize session for an image overlay, capturing
// its original dimensions as the aspect-ratio reference.
func (e *OverlayService) BeginResize(studyID uuid.UUID, slideID, overlayID string, zoom float64) bool {
	if zoom <= 0 {
		zoom = 1
	}
	item, ok := e.store.GetOverlay(studyID, slideID, overlayID)
	if !ok {
		return false
	}
	img, ok := item.(*models.ImageOverlayItem)
	if !ok {
		return false
	}
	e.mu.Lock()
	e.resize = &overlayResizeState{
		ref:        overlayRef{studyID: studyID, slideID: slideID, overlayID: overlayID},
		origWidth:  img.Width,
		origHeight: img.Height,
		zoom:       zoom,
	}
	e.mu.Unlock()
	return true
}

// ResizeTo applies the cumulative pointer delta since BeginResize: new
// width = original + delta/zoom, height follows the original aspect
// ratio, both floored at the minimum dimension.
func (e *OverlayService) ResizeTo(cumulativeDelta float64) (models.OverlayItem, bool) {
	e.mu.Lock()
	rs := e.resize
	e.mu.Unlock()
	if rs == nil {
		return nil, false
	}
	item, ok := e.store.GetOverlay(rs.ref.studyID, rs.ref.slideID, rs.ref.overlayID)
	if !ok {
		return nil, false
	}
	img, ok := item.(*models.ImageOverlayItem)
	if !ok {
		return nil, false
	}
	aspect := rs.origWidth / rs.origHeight
	width := rs.origWidth + cumulativeDelta/rs.zoom
	if width < minImageDimension {
		width = minImageDimension
	}
	img.Width = width
	img.Height = width / aspect
	if !e.store.ReplaceOverlay(rs.ref.studyID, rs.ref.slideID, img) {
		return nil, false
	}
	return img, true
}

func (e *OverlayService) EndResize() {
	e.mu.Lock()
	e.resize = nil
	e.mu.Unlock()
}

// Rotate advances an image overlay by the fixed step, wrapping at 360°.
func (e *OverlayService) Rotate(studyID uuid.UUID, slideID, overlayID string) (float64, bool) {
	item, ok := e.store.GetOverlay(studyID, slideID, overlayID)
	if !ok {
		return 0, false
	}
	img, ok := item.(*models.ImageOverlayItem)
	if !ok {
		return 0, false
	}
	img.Rotation = math.Mod(img.Rotation+rotationStepDeg, 360)
	if !e.store.ReplaceOverlay(studyID, slideID, img) {
		return 0, false
	}
	return img.Rotation, true
}

/* ------------------------------------------------------------------
   Text: font stepping and inline rename
------------------------------------------------------------------ */

// StepFontSize adjusts a text overlay's font size by delta, clamped to
// the editable range.
func (e *OverlayService) StepFontSize(studyID uuid.UUID, slideID, overlayID string, delta float64) (float64, bool) {
	item, ok := e.store.GetOverlay(studyID, slideID, overlayID)
	if !ok {
		return 0, false
	}
	text, ok := item.(*models.TextOverlayItem)
	if !ok {
		return 0, false
	}
	size := text.FontSize + delta
	if size < minFontSize {
		size = minFontSize
	}
	if size > maxFontSize {
		size = maxFontSize
	}
	text.FontSize = size
	if !e.store.ReplaceOverlay(studyID, slideID, text) {
		return 0, false
	}
	return size, true
}

// BeginRename enters inline edit mode on a text overlay and returns the
// current content, which CancelRename restores.
func (e *OverlayService) BeginRename(studyID uuid.UUID, slideID, overlayID string) (string, bool) {
	item, ok := e.store.GetOverlay(studyID, slideID, overlayID)
	if !ok {
		return "", false
	}
	text, ok := item.(*models.TextOverlayItem)
	if !ok {
		return "", false
	}
	e.mu.Lock()
	e.rename = &overlayRenameState{
		ref:      overlayRef{studyID: studyID, slideID: slideID, overlayID: overlayID},
		original: text.Content,
	}
	e.mu.Unlock()
	return text.Content, true
}

// CommitRename writes the edited content. Empty content is a field
// validation failure: nothing is written and edit mode stays open.
func (e *OverlayService) CommitRename(content string) bool {
	if strings.TrimSpace(content) == "" {
		return false
	}
	e.mu.Lock()
	rn := e.rename
	e.rename = nil
	e.mu.Unlock()
	if rn == nil {
		return false
	}
	item, ok := e.store.GetOverlay(rn.ref.studyID, rn.ref.slideID, rn.ref.overlayID)
	if !ok {
		return false
	}
	text, ok := item.(*models.TextOverlayItem)
	if !ok {
		return false
	}
	text.Content = content
	return e.store.ReplaceOverlay(rn.ref.studyID, rn.ref.slideID, text)
}

// CancelRename leaves edit mode with the prior content intact.
func (e *OverlayService) CancelRename() (string, bool) {
	e.mu.Lock()
	rn := e.rename
	e.rename = nil
	e.mu.Unlock()
	if rn == nil {
		return "", false
	}
	return rn.original, true
}
