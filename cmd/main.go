package main

import (
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/moftahak/studio-service/internal/app"
	"github.com/moftahak/studio-service/internal/config"
	"github.com/moftahak/studio-service/internal/controllers"
	"github.com/moftahak/studio-service/internal/routes"
	"github.com/moftahak/studio-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (repository, services, flush queue)
	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize app: ", err)
	}
	defer application.Close()

	// 3) Controllers
	healthCtrl := controllers.NewHealthController(application)
	studyCtrl := controllers.NewStudyController(application.StudyService)
	itemCtrl := controllers.NewRoomItemController(application.StudyService, application.LibraryService)
	overlayCtrl := controllers.NewOverlayController(application.OverlayService)
	pinCtrl := controllers.NewPinController(application.PinService)
	dragCtrl := controllers.NewDragDropController(application.DragDropService)
	libraryCtrl := controllers.NewLibraryController(application.LibraryService)

	// 4) Router
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Studies, studyCtrl.ListStudies).Methods(http.MethodGet)
	router.HandleFunc(routes.Studies, studyCtrl.CreateStudy).Methods(http.MethodPost)
	router.HandleFunc(routes.Study, studyCtrl.GetStudy).Methods(http.MethodGet)
	router.HandleFunc(routes.Study, studyCtrl.DeleteStudy).Methods(http.MethodDelete)
	router.HandleFunc(routes.StudySlides, studyCtrl.AddSlide).Methods(http.MethodPost)
	router.HandleFunc(routes.StudySlide, studyCtrl.UpdateSlideData).Methods(http.MethodPatch)
	router.HandleFunc(routes.StudySlide, studyCtrl.RemoveSlide).Methods(http.MethodDelete)
	router.HandleFunc(routes.SlideDuplicate, studyCtrl.DuplicateSlide).Methods(http.MethodPost)
	router.HandleFunc(routes.SlidesReorder, studyCtrl.ReorderSlides).Methods(http.MethodPost)
	router.HandleFunc(routes.RoomsRegenerate, studyCtrl.RegenerateRooms).Methods(http.MethodPost)
	router.HandleFunc(routes.ActiveSlide, studyCtrl.SetActiveSlide).Methods(http.MethodPut)

	router.HandleFunc(routes.SlideItems, itemCtrl.PlaceItem).Methods(http.MethodPost)
	router.HandleFunc(routes.SlideItem, itemCtrl.UpdateItem).Methods(http.MethodPatch)
	router.HandleFunc(routes.SlideItem, itemCtrl.RemoveItem).Methods(http.MethodDelete)

	router.HandleFunc(routes.SlideOverlays, overlayCtrl.ListOverlays).Methods(http.MethodGet)
	router.HandleFunc(routes.SlideOverlays, overlayCtrl.AddOverlay).Methods(http.MethodPost)
	router.HandleFunc(routes.SlideOverlay, overlayCtrl.UpdateOverlay).Methods(http.MethodPut)
	router.HandleFunc(routes.SlideOverlay, overlayCtrl.DeleteOverlay).Methods(http.MethodDelete)
	router.HandleFunc(routes.OverlayDrag, overlayCtrl.DragOverlay).Methods(http.MethodPost)
	router.HandleFunc(routes.OverlayResize, overlayCtrl.ResizeOverlay).Methods(http.MethodPost)
	router.HandleFunc(routes.OverlayRotate, overlayCtrl.RotateOverlay).Methods(http.MethodPost)
	router.HandleFunc(routes.OverlayFontSize, overlayCtrl.StepFontSize).Methods(http.MethodPost)
	router.HandleFunc(routes.OverlayRename, overlayCtrl.RenameOverlay).Methods(http.MethodPost)

	router.HandleFunc(routes.PinStats, pinCtrl.Stats).Methods(http.MethodGet)
	router.HandleFunc(routes.SlidePins, pinCtrl.ListPins).Methods(http.MethodGet)
	router.HandleFunc(routes.SlidePins, pinCtrl.AddPin).Methods(http.MethodPost)
	router.HandleFunc(routes.SlidePin, pinCtrl.UpdatePin).Methods(http.MethodPut)
	router.HandleFunc(routes.SlidePin, pinCtrl.RemovePin).Methods(http.MethodDelete)
	router.HandleFunc(routes.PinLandmarks, pinCtrl.NearestLandmarks).Methods(http.MethodPost)

	router.HandleFunc(routes.DragTargets, dragCtrl.RegisterTarget).Methods(http.MethodPost)
	router.HandleFunc(routes.DragTarget, dragCtrl.UnregisterTarget).Methods(http.MethodDelete)
	router.HandleFunc(routes.DragDown, dragCtrl.PointerDown).Methods(http.MethodPost)
	router.HandleFunc(routes.DragMove, dragCtrl.PointerMove).Methods(http.MethodPost)
	router.HandleFunc(routes.DragUp, dragCtrl.PointerUp).Methods(http.MethodPost)
	router.HandleFunc(routes.DragCancel, dragCtrl.Cancel).Methods(http.MethodPost)

	router.HandleFunc(routes.Library, libraryCtrl.ListItems).Methods(http.MethodGet)

	// 5) CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, c.Handler(router)); err != nil {
		utils.Logger.Fatal("Server error:", err)
	}
}
