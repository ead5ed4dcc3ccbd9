package routes

const (
	// Health
	Health = "/health"

	// Studies
	Studies         = "/api/v1/studies"
	Study           = "/api/v1/studies/{studyID}"
	StudySlides     = "/api/v1/studies/{studyID}/slides"
	StudySlide      = "/api/v1/studies/{studyID}/slides/{slideID}"
	SlideDuplicate  = "/api/v1/studies/{studyID}/slides/{slideID}/duplicate"
	SlidesReorder   = "/api/v1/studies/{studyID}/slides/reorder"
	RoomsRegenerate = "/api/v1/studies/{studyID}/rooms/regenerate"
	ActiveSlide     = "/api/v1/studies/{studyID}/active-slide"

	// Room items
	SlideItems = "/api/v1/studies/{studyID}/slides/{slideID}/items"
	SlideItem  = "/api/v1/studies/{studyID}/slides/{slideID}/items/{itemID}"

	// Overlays
	SlideOverlays   = "/api/v1/studies/{studyID}/slides/{slideID}/overlays"
	SlideOverlay    = "/api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}"
	OverlayDrag     = "/api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}/drag"
	OverlayResize   = "/api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}/resize"
	OverlayRotate   = "/api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}/rotate"
	OverlayFontSize = "/api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}/font-size"
	OverlayRename   = "/api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}/rename"

	// Pins
	SlidePins    = "/api/v1/studies/{studyID}/slides/{slideID}/pins"
	SlidePin     = "/api/v1/studies/{studyID}/slides/{slideID}/pins/{pinID}"
	PinStats     = "/api/v1/studies/{studyID}/slides/{slideID}/pins/stats"
	PinLandmarks = "/api/v1/studies/{studyID}/slides/{slideID}/pins/{pinID}/landmarks"

	// Drag & drop session
	DragTargets = "/api/v1/studies/{studyID}/drag/targets"
	DragTarget  = "/api/v1/studies/{studyID}/drag/targets/{slideID}"
	DragDown    = "/api/v1/studies/{studyID}/drag/down"
	DragMove    = "/api/v1/studies/{studyID}/drag/move"
	DragUp      = "/api/v1/studies/{studyID}/drag/up"
	DragCancel  = "/api/v1/studies/{studyID}/drag/cancel"

	// Content library
	Library = "/api/v1/library/{roomType}"
)
