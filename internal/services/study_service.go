package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moftahak/studio-service/internal/models"
	"github.com/moftahak/studio-service/internal/utils"
)

var slideTitles = map[models.SlideType]string{
	models.SlideTypeCover:        "Cover",
	models.SlideTypeIntroduction: "Introduction",
	models.SlideTypeRoomSetup:    "Room Setup",
	models.SlideTypeKitchen:      "Kitchen",
	models.SlideTypeBedroom:      "Bedroom",
	models.SlideTypeLivingRoom:   "Living Room",
	models.SlideTypeBathroom:     "Bathroom",
	models.SlideTypeCostSummary:  "Cost Summary",
	models.SlideTypeAreaStudy:    "Area Study",
	models.SlideTypeMap:          "Map",
	models.SlideTypeStatistics:   "Statistics",
	models.SlideTypeFooter:       "Footer",
}

// defaultDeck is the slide sequence every new study starts with.
var defaultDeck = []models.SlideType{
	models.SlideTypeCover,
	models.SlideTypeIntroduction,
	models.SlideTypeRoomSetup,
	models.SlideTypeCostSummary,
	models.SlideTypeAreaStudy,
	models.SlideTypeMap,
	models.SlideTypeStatistics,
	models.SlideTypeFooter,
}

func isLockedType(t models.SlideType) bool {
	switch t {
	case models.SlideTypeCover, models.SlideTypeIntroduction, models.SlideTypeFooter:
		return true
	}
	return false
}

// StudyService is the slide store: the single source of truth for every
// open study document. Consumers receive deep-copied snapshots and
// route all mutations back through these operations. Invariant-guard
// rejections (locked slides, unknown ids) come back as a false return,
// never an error.
type StudyService struct {
	mu       sync.RWMutex
	studies  map[uuid.UUID]*models.Study
	onChange []func(uuid.UUID)
}

func NewStudyService() *StudyService {
	return &StudyService{
		studies: make(map[uuid.UUID]*models.Study),
	}
}

// OnChange registers a hook invoked (outside the store lock) after any
// successful mutation, with the study id. Used to schedule debounced
// persistence. Hooks must not mutate the store synchronously.
func (s *StudyService) OnChange(fn func(uuid.UUID)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *StudyService) notifyChange(id uuid.UUID) {
	s.mu.RLock()
	hooks := make([]func(uuid.UUID), len(s.onChange))
	copy(hooks, s.onChange)
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn(id)
	}
}

// withStudy runs fn on the live document under the write lock. When fn
// reports a change, the study is re-stamped and re-aggregated and the
// change hooks fire.
func (s *StudyService) withStudy(id uuid.UUID, fn func(*models.Study) bool) bool {
	s.mu.Lock()
	st, ok := s.studies[id]
	changed := false
	if ok {
		changed = fn(st)
		if changed {
			st.UpdatedAt = time.Now().UTC()
			st.TotalCost = studyTotalCost(st)
		}
	}
	s.mu.Unlock()
	if changed {
		s.notifyChange(id)
	}
	return changed
}

func studyTotalCost(st *models.Study) float64 {
	total := 0.0
	for i := range st.Slides {
		if room, ok := st.Slides[i].Data.(*models.RoomData); ok {
			total += room.TotalCost
		}
	}
	return total
}

func renumber(st *models.Study) {
	for i := range st.Slides {
		st.Slides[i].Order = i
	}
}

func newSlide(t models.SlideType) (models.Slide, error) {
	data, err := models.NewSlideData(t)
	if err != nil {
		return models.Slide{}, err
	}
	return models.Slide{
		ID:       uuid.NewString(),
		Type:     t,
		Title:    slideTitles[t],
		Data:     data,
		IsLocked: isLockedType(t),
	}, nil
}

// CreateStudy builds a study with the default deck and returns its
// snapshot.
func (s *StudyService) CreateStudy(name string) *models.Study {
	now := time.Now().UTC()
	st := &models.Study{
		ID:        uuid.New(),
		Name:      name,
		Overlays:  make(map[string]models.OverlayList),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, t := range defaultDeck {
		slide, _ := newSlide(t)
		st.Slides = append(st.Slides, slide)
	}
	renumber(st)

	s.mu.Lock()
	s.studies[st.ID] = st
	s.mu.Unlock()

	utils.Logger.Infof("Created study %s (%q) with %d slides", st.ID, name, len(st.Slides))
	s.notifyChange(st.ID)
	return st.Clone()
}

// Restore loads a persisted study document into the store, replacing
// any in-memory copy. Used on boot; does not fire change hooks.
func (s *StudyService) Restore(st *models.Study) {
	c := st.Clone()
	if c.Overlays == nil {
		c.Overlays = make(map[string]models.OverlayList)
	}
	s.mu.Lock()
	s.studies[c.ID] = c
	s.mu.Unlock()
}

// GetStudy returns a deep-copied snapshot; mutating it does not affect
// subsequent reads.
func (s *StudyService) GetStudy(id uuid.UUID) (*models.Study, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.studies[id]
	if !ok {
		return nil, false
	}
	return st.Clone(), true
}

func (s *StudyService) ListStudyIDs() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(s.studies))
	for id := range s.studies {
		ids = append(ids, id)
	}
	return ids
}

// DeleteStudy drops a study from the store. The change hooks still
// fire so the persistence layer can observe the removal.
func (s *StudyService) DeleteStudy(id uuid.UUID) bool {
	s.mu.Lock()
	_, ok := s.studies[id]
	if ok {
		delete(s.studies, id)
	}
	s.mu.Unlock()
	if ok {
		s.notifyChange(id)
	}
	return ok
}

// AddSlide inserts a new slide built from the type's template
// immediately after afterIndex (or at the end), renumbers, and selects
// the new slide as active.
func (s *StudyService) AddSlide(studyID uuid.UUID, t models.SlideType, afterIndex *int) (models.Slide, bool) {
	var created models.Slide
	ok := s.withStudy(studyID, func(st *models.Study) bool {
		slide, err := newSlide(t)
		if err != nil {
			return false
		}
		pos := len(st.Slides)
		if afterIndex != nil && *afterIndex >= 0 && *afterIndex < len(st.Slides) {
			pos = *afterIndex + 1
		}
		st.Slides = append(st.Slides, models.Slide{})
		copy(st.Slides[pos+1:], st.Slides[pos:])
		st.Slides[pos] = slide
		renumber(st)
		st.ActiveIndex = pos
		created = st.Slides[pos].Clone()
		return true
	})
	return created, ok
}

// RemoveSlide fails silently for locked slides. On success it renumbers
// and keeps the cursor off the removed index and inside bounds. The
// slide's overlays are discarded with it.
func (s *StudyService) RemoveSlide(studyID uuid.UUID, slideID string) bool {
	return s.withStudy(studyID, func(st *models.Study) bool {
		idx := slideIndex(st, slideID)
		if idx < 0 || st.Slides[idx].IsLocked {
			return false
		}
		st.Slides = append(st.Slides[:idx], st.Slides[idx+1:]...)
		delete(st.Overlays, slideID)
		renumber(st)
		if st.ActiveIndex > idx {
			st.ActiveIndex--
		} else if st.ActiveIndex >= len(st.Slides) {
			st.ActiveIndex = len(st.Slides) - 1
		}
		return true
	})
}

// ReorderSlides is a no-op when the slide at from is locked; otherwise
// it moves the slide, renumbers, and re-selects it.
func (s *StudyService) ReorderSlides(studyID uuid.UUID, from, to int) bool {
	return s.withStudy(studyID, func(st *models.Study) bool {
		if from < 0 || from >= len(st.Slides) || to < 0 || to >= len(st.Slides) {
			return false
		}
		if st.Slides[from].IsLocked {
			return false
		}
		moved := st.Slides[from]
		st.Slides = append(st.Slides[:from], st.Slides[from+1:]...)
		st.Slides = append(st.Slides, models.Slide{})
		copy(st.Slides[to+1:], st.Slides[to:])
		st.Slides[to] = moved
		renumber(st)
		st.ActiveIndex = to
		return true
	})
}

// DuplicateSlide deep-copies the slide (including its overlay list,
// with fresh ids) and inserts the copy immediately after the original.
// Locked slides are rejected.
func (s *StudyService) DuplicateSlide(studyID uuid.UUID, slideID string) (models.Slide, bool) {
	var created models.Slide
	ok := s.withStudy(studyID, func(st *models.Study) bool {
		idx := slideIndex(st, slideID)
		if idx < 0 || st.Slides[idx].IsLocked {
			return false
		}
		dup := st.Slides[idx].Clone()
		dup.ID = uuid.NewString()
		pos := idx + 1
		st.Slides = append(st.Slides, models.Slide{})
		copy(st.Slides[pos+1:], st.Slides[pos:])
		st.Slides[pos] = dup
		renumber(st)
		st.ActiveIndex = pos

		if src, ok := st.Overlays[slideID]; ok {
			copies := src.Clone()
			for _, item := range copies {
				SetOverlayID(item, uuid.NewString())
			}
			st.Overlays[dup.ID] = copies
		}
		created = dup.Clone()
		return true
	})
	return created, ok
}

// SetActiveSlide moves the active-slide cursor.
func (s *StudyService) SetActiveSlide(studyID uuid.UUID, index int) bool {
	return s.withStudy(studyID, func(st *models.Study) bool {
		if index < 0 || index >= len(st.Slides) {
			return false
		}
		st.ActiveIndex = index
		return true
	})
}

// UpdateSlideData merges patch into the slide's payload one top-level
// key at a time: each supplied key replaces the existing key wholesale.
// Replacing part of a nested object requires supplying the full nested
// object; DeepPatchSlideData exists for the partial case.
func (s *StudyService) UpdateSlideData(studyID uuid.UUID, slideID string, patch map[string]any) error {
	return s.patchSlideData(studyID, slideID, patch, false)
}

// DeepPatchSlideData merges patch recursively: nested maps are merged
// key-by-key instead of replaced.
func (s *StudyService) DeepPatchSlideData(studyID uuid.UUID, slideID string, patch map[string]any) error {
	return s.patchSlideData(studyID, slideID, patch, true)
}

func (s *StudyService) patchSlideData(studyID uuid.UUID, slideID string, patch map[string]any, deep bool) error {
	var opErr error
	found := false
	s.withStudy(studyID, func(st *models.Study) bool {
		idx := slideIndex(st, slideID)
		if idx < 0 {
			return false
		}
		found = true
		slide := &st.Slides[idx]

		current, err := payloadAsMap(slide.Data)
		if err != nil {
			opErr = err
			return false
		}
		for k, v := range patch {
			if deep {
				current[k] = deepMergeValue(current[k], v)
			} else {
				current[k] = v
			}
		}
		merged, err := json.Marshal(current)
		if err != nil {
			opErr = err
			return false
		}
		data, err := models.DecodeSlideData(slide.Type, merged)
		if err != nil {
			opErr = fmt.Errorf("%w: %v", utils.ErrUnknownSlideType, err)
			return false
		}
		// room payloads may have had their item list replaced wholesale
		if room, ok := data.(*models.RoomData); ok {
			RecomputeRoomTotal(room)
		}
		slide.Data = data
		return true
	})
	if opErr != nil {
		return opErr
	}
	if !found {
		return utils.ErrSlideNotFound
	}
	return nil
}

func payloadAsMap(data models.SlideData) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func deepMergeValue(dst, src any) any {
	dstMap, dok := dst.(map[string]any)
	srcMap, sok := src.(map[string]any)
	if !dok || !sok {
		return src
	}
	for k, v := range srcMap {
		dstMap[k] = deepMergeValue(dstMap[k], v)
	}
	return dstMap
}

// RegenerateRoomSlides replaces every room-kind slide with a freshly
// generated run directly after the room-setup slide, in the order
// kitchens, bedrooms, living rooms, bathrooms. All other slides keep
// their relative order. Returns the number of slides inserted.
func (s *StudyService) RegenerateRoomSlides(studyID uuid.UUID, counts models.RoomCounts) (int, bool) {
	inserted := 0
	ok := s.withStudy(studyID, func(st *models.Study) bool {
		setupIdx := -1
		kept := make([]models.Slide, 0, len(st.Slides))
		for _, slide := range st.Slides {
			if slide.Type.IsRoom() {
				delete(st.Overlays, slide.ID)
				continue
			}
			if slide.Type == models.SlideTypeRoomSetup {
				setupIdx = len(kept)
			}
			kept = append(kept, slide)
		}
		if setupIdx < 0 {
			return false
		}
		if setup, ok := kept[setupIdx].Data.(*models.RoomSetupData); ok {
			setup.Counts = counts
		}

		rooms := buildRoomRun(counts)
		out := make([]models.Slide, 0, len(kept)+len(rooms))
		out = append(out, kept[:setupIdx+1]...)
		out = append(out, rooms...)
		out = append(out, kept[setupIdx+1:]...)
		st.Slides = out
		renumber(st)
		inserted = len(rooms)
		if inserted > 0 {
			st.ActiveIndex = setupIdx + 1
		} else if st.ActiveIndex >= len(st.Slides) {
			st.ActiveIndex = len(st.Slides) - 1
		}
		return true
	})
	return inserted, ok
}

func buildRoomRun(counts models.RoomCounts) []models.Slide {
	var out []models.Slide
	add := func(t models.SlideType, n int, alwaysNumbered bool) {
		for i := 1; i <= n; i++ {
			slide, _ := newSlide(t)
			if n > 1 || alwaysNumbered {
				slide.Title = fmt.Sprintf("%s %d", slideTitles[t], i)
			}
			out = append(out, slide)
		}
	}
	add(models.SlideTypeKitchen, counts.Kitchens, false)
	// bedrooms always carry a sequence number
	add(models.SlideTypeBedroom, counts.Bedrooms, true)
	add(models.SlideTypeLivingRoom, counts.LivingRooms, false)
	add(models.SlideTypeBathroom, counts.Bathrooms, false)
	return out
}

func slideIndex(st *models.Study, slideID string) int {
	for i := range st.Slides {
		if st.Slides[i].ID == slideID {
			return i
		}
	}
	return -1
}

/* ------------------------------------------------------------------
   Room item operations
------------------------------------------------------------------ */

// withRoomData runs fn on the room payload of a room-kind slide.
func (s *StudyService) withRoomData(studyID uuid.UUID, slideID string, fn func(*models.RoomData) bool) bool {
	return s.withStudy(studyID, func(st *models.Study) bool {
		idx := slideIndex(st, slideID)
		if idx < 0 {
			return false
		}
		room, ok := st.Slides[idx].Data.(*models.RoomData)
		if !ok {
			return false
		}
		return fn(room)
	})
}

// PlaceItem adds a library-sourced item to a room slide with its
// default price and a quantity of one.
func (s *StudyService) PlaceItem(studyID uuid.UUID, slideID string, def models.LibraryItem) (models.RoomItem, bool) {
	item := models.RoomItem{
		ID:       uuid.NewString(),
		Name:     def.Name,
		Icon:     def.Icon,
		Price:    def.DefaultPrice,
		Quantity: 1,
	}
	ok := s.withRoomData(studyID, slideID, func(room *models.RoomData) bool {
		return AddRoomItem(room, item)
	})
	return item, ok
}

func (s *StudyService) UpdateItemPrice(studyID uuid.UUID, slideID, itemID string, price float64) bool {
	return s.withRoomData(studyID, slideID, func(room *models.RoomData) bool {
		return UpdateRoomItemPrice(room, itemID, price)
	})
}

func (s *StudyService) UpdateItemQuantity(studyID uuid.UUID, slideID, itemID string, quantity int) bool {
	return s.withRoomData(studyID, slideID, func(room *models.RoomData) bool {
		return UpdateRoomItemQuantity(room, itemID, quantity)
	})
}

func (s *StudyService) RemoveItem(studyID uuid.UUID, slideID, itemID string) bool {
	return s.withRoomData(studyID, slideID, func(room *models.RoomData) bool {
		return RemoveRoomItem(room, itemID)
	})
}

/* ------------------------------------------------------------------
   Overlay storage (the engine itself lives in overlay_service.go)
------------------------------------------------------------------ */

func SetOverlayID(item models.OverlayItem, id string) {
	switch v := item.(type) {
	case *models.TextOverlayItem:
		v.ID = id
	case *models.ImageOverlayItem:
		v.ID = id
	}
}

// AddOverlay appends an overlay to the slide's list, assigning an id
// when the caller did not.
func (s *StudyService) AddOverlay(studyID uuid.UUID, slideID string, item models.OverlayItem) (models.OverlayItem, bool) {
	stored := item.Clone()
	if stored.GetID() == "" {
		SetOverlayID(stored, uuid.NewString())
	}
	ok := s.withStudy(studyID, func(st *models.Study) bool {
		if slideIndex(st, slideID) < 0 {
			return false
		}
		st.Overlays[slideID] = append(st.Overlays[slideID], stored)
		return true
	})
	if !ok {
		return nil, false
	}
	return stored.Clone(), true
}

// ReplaceOverlay fully replaces the record with the same id.
func (s *StudyService) ReplaceOverlay(studyID uuid.UUID, slideID string, item models.OverlayItem) bool {
	return s.withStudy(studyID, func(st *models.Study) bool {
		list := st.Overlays[slideID]
		for i := range list {
			if list[i].GetID() == item.GetID() {
				list[i] = item.Clone()
				return true
			}
		}
		return false
	})
}

func (s *StudyService) DeleteOverlay(studyID uuid.UUID, slideID, overlayID string) bool {
	return s.withStudy(studyID, func(st *models.Study) bool {
		list := st.Overlays[slideID]
		for i := range list {
			if list[i].GetID() == overlayID {
				st.Overlays[slideID] = append(list[:i], list[i+1:]...)
				return true
			}
		}
		return false
	})
}

func (s *StudyService) GetOverlay(studyID uuid.UUID, slideID, overlayID string) (models.OverlayItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.studies[studyID]
	if !ok {
		return nil, false
	}
	for _, item := range st.Overlays[slideID] {
		if item.GetID() == overlayID {
			return item.Clone(), true
		}
	}
	return nil, false
}

func (s *StudyService) ListOverlays(studyID uuid.UUID, slideID string) (models.OverlayList, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.studies[studyID]
	if !ok {
		return nil, false
	}
	if slideIndex(st, slideID) < 0 {
		return nil, false
	}
	return st.Overlays[slideID].Clone(), true
}

/* ------------------------------------------------------------------
   Map payload access (used by the pin service)
------------------------------------------------------------------ */

// WithMapData runs fn on the pin sub-document of a map slide.
func (s *StudyService) WithMapData(studyID uuid.UUID, slideID string, fn func(*models.MapData) bool) bool {
	return s.withStudy(studyID, func(st *models.Study) bool {
		idx := slideIndex(st, slideID)
		if idx < 0 {
			return false
		}
		mapData, ok := st.Slides[idx].Data.(*models.MapData)
		if !ok {
			return false
		}
		return fn(mapData)
	})
}

// ReadMapData returns a deep copy of a map slide's payload.
func (s *StudyService) ReadMapData(studyID uuid.UUID, slideID string) (*models.MapData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.studies[studyID]
	if !ok {
		return nil, false
	}
	idx := slideIndex(st, slideID)
	if idx < 0 {
		return nil, false
	}
	mapData, ok := st.Slides[idx].Data.(*models.MapData)
	if !ok {
		return nil, false
	}
	return mapData.Clone().(*models.MapData), true
}
