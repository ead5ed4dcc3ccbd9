package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/moftahak/studio-service/internal/config"
	"github.com/moftahak/studio-service/internal/repositories"
	"github.com/moftahak/studio-service/internal/services"
	"github.com/moftahak/studio-service/internal/utils"
)

// App holds the config, the persistence layer and every service, wired
// together: study edits schedule a debounced flush, and the flush
// writes the current snapshot through the repository.
type App struct {
	Config *config.Config

	Repository repositories.StudyRepository

	StudyService    *services.StudyService
	OverlayService  *services.OverlayService
	PinService      *services.PinService
	DragDropService *services.DragDropService
	LibraryService  *services.LibraryCacheService
	FlushQueue      *services.FlushQueue
}

// NewApp sets up the core application context.
func NewApp(cfg *config.Config) (*App, error) {
	utils.Logger.Info("Initializing studio-service App")

	repo, err := repositories.NewSQLiteStudyRepository(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	studySvc := services.NewStudyService()
	librarySvc := services.NewLibraryCacheService(services.StaticLibraryRegistry{}, cfg.LibraryCacheTTL)

	a := &App{
		Config:          cfg,
		Repository:      repo,
		StudyService:    studySvc,
		OverlayService:  services.NewOverlayService(studySvc),
		PinService:      services.NewPinService(studySvc),
		DragDropService: services.NewDragDropService(studySvc, librarySvc),
		LibraryService:  librarySvc,
	}

	a.FlushQueue = services.NewFlushQueue(cfg.FlushQuietPeriod, a.flushStudy)
	studySvc.OnChange(a.FlushQueue.Schedule)

	if err := a.restoreStudies(); err != nil {
		repo.Close()
		return nil, err
	}
	return a, nil
}

// flushStudy persists the current snapshot of one study. A study that
// was deleted while the flush was pending is removed instead.
func (a *App) flushStudy(id uuid.UUID) {
	ctx := context.Background()
	st, ok := a.StudyService.GetStudy(id)
	if !ok {
		if err := a.Repository.Delete(ctx, id); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to delete study %s", id)
		}
		return
	}
	if err := a.Repository.Save(ctx, st); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to persist study %s", id)
		return
	}
	utils.Logger.Debugf("Persisted study %s", id)
}

func (a *App) restoreStudies() error {
	studies, err := a.Repository.ListAll(context.Background())
	if err != nil {
		return err
	}
	for _, st := range studies {
		a.StudyService.Restore(st)
	}
	utils.Logger.Infof("Restored %d studies from disk", len(studies))
	return nil
}

// Close drains the pending flushes before releasing the database.
func (a *App) Close() {
	utils.Logger.Info("studio-service app shutting down.")
	a.FlushQueue.Close()
	if err := a.Repository.Close(); err != nil {
		utils.Logger.WithError(err).Error("Failed to close study repository")
	}
}
