package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/moftahak/studio-service/internal/models"
)

func newTestRepo(t *testing.T) StudyRepository {
	t.Helper()
	repo, err := NewSQLiteStudyRepository(filepath.Join(t.TempDir(), "studies.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleStudy() *models.Study {
	now := time.Now().UTC().Truncate(time.Second)
	st := &models.Study{
		ID:        uuid.New(),
		Name:      "Round trip",
		CreatedAt: now,
		UpdatedAt: now,
		Overlays:  make(map[string]models.OverlayList),
	}
	cover := models.Slide{
		ID:    uuid.NewString(),
		Type:  models.SlideTypeCover,
		Title: "Cover",
		Data: &models.CoverData{
			ProjectName: "Marina Tower",
			ClientName:  "ACME",
		},
		IsLocked: true,
	}
	kitchen := models.Slide{
		ID:    uuid.NewString(),
		Type:  models.SlideTypeKitchen,
		Title: "Kitchen",
		Order: 1,
		Data: &models.RoomData{
			Items:     []models.RoomItem{{ID: "i1", Name: "Oven", Price: 1800, Quantity: 1}},
			TotalCost: 1800,
		},
	}
	st.Slides = []models.Slide{cover, kitchen}
	st.TotalCost = 1800
	st.Overlays[cover.ID] = models.OverlayList{
		&models.TextOverlayItem{ID: "o1", Kind: models.OverlayKindText, Content: "Note", FontSize: 16},
		&models.ImageOverlayItem{ID: "o2", Kind: models.OverlayKindImage, Src: "p.png", Width: 200, Height: 150},
	}
	return st
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	st := sampleStudy()

	require.NoError(t, repo.Save(ctx, st))

	got, err := repo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, st.Name, got.Name)
	require.Len(t, got.Slides, 2)

	// typed payloads survive the JSON round trip
	room, ok := got.Slides[1].Data.(*models.RoomData)
	require.True(t, ok)
	require.Equal(t, 1800.0, room.TotalCost)

	overlays := got.Overlays[st.Slides[0].ID]
	require.Len(t, overlays, 2)
	require.IsType(t, &models.TextOverlayItem{}, overlays[0])
	require.IsType(t, &models.ImageOverlayItem{}, overlays[1])
}

func TestSaveUpserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	st := sampleStudy()

	require.NoError(t, repo.Save(ctx, st))
	st.Name = "Renamed"
	require.NoError(t, repo.Save(ctx, st))

	got, err := repo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestGetByIDAbsent(t *testing.T) {
	repo := newTestRepo(t)
	got, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	st := sampleStudy()
	require.NoError(t, repo.Save(ctx, st))

	require.NoError(t, repo.Delete(ctx, st.ID))
	got, err := repo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	// deleting a missing row is not an error
	require.NoError(t, repo.Delete(ctx, st.ID))
}

func TestPing(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Ping(context.Background()))
}
