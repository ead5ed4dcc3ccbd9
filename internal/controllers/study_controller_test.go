package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/moftahak/studio-service/internal/dtos"
	"github.com/moftahak/studio-service/internal/models"
	"github.com/moftahak/studio-service/internal/routes"
	"github.com/moftahak/studio-service/internal/services"
)

type testEnv struct {
	router *mux.Router
	store  *services.StudyService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := services.NewStudyService()
	library := services.NewLibraryCacheService(services.StaticLibraryRegistry{}, time.Minute)

	studyCtrl := NewStudyController(store)
	itemCtrl := NewRoomItemController(store, library)
	pinCtrl := NewPinController(services.NewPinService(store))

	r := mux.NewRouter()
	r.HandleFunc(routes.Studies, studyCtrl.CreateStudy).Methods(http.MethodPost)
	r.HandleFunc(routes.Study, studyCtrl.GetStudy).Methods(http.MethodGet)
	r.HandleFunc(routes.StudySlide, studyCtrl.UpdateSlideData).Methods(http.MethodPatch)
	r.HandleFunc(routes.StudySlide, studyCtrl.RemoveSlide).Methods(http.MethodDelete)
	r.HandleFunc(routes.RoomsRegenerate, studyCtrl.RegenerateRooms).Methods(http.MethodPost)
	r.HandleFunc(routes.SlideItems, itemCtrl.PlaceItem).Methods(http.MethodPost)
	r.HandleFunc(routes.PinStats, pinCtrl.Stats).Methods(http.MethodGet)
	r.HandleFunc(routes.SlidePins, pinCtrl.AddPin).Methods(http.MethodPost)

	return &testEnv{router: r, store: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createStudy(t *testing.T, name string) *models.Study {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/studies", dtos.CreateStudyRequest{Name: name})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dtos.StudyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Study
}

func slideOfType(t *testing.T, st *models.Study, typ models.SlideType) models.Slide {
	t.Helper()
	for _, s := range st.Slides {
		if s.Type == typ {
			return s
		}
	}
	t.Fatalf("no %s slide", typ)
	return models.Slide{}
}

func TestCreateAndFetchStudy(t *testing.T) {
	env := newTestEnv(t)
	st := env.createStudy(t, "HTTP study")
	require.Len(t, st.Slides, 8)

	rec := env.do(t, http.MethodGet, "/api/v1/studies/"+st.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateStudyValidation(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/studies", dtos.CreateStudyRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStudyBadID(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/v1/studies/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveLockedSlideReturns422(t *testing.T) {
	env := newTestEnv(t)
	st := env.createStudy(t, "Locked over HTTP")
	cover := slideOfType(t, st, models.SlideTypeCover)

	rec := env.do(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/studies/%s/slides/%s", st.ID, cover.ID), nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPatchSlideData(t *testing.T) {
	env := newTestEnv(t)
	st := env.createStudy(t, "Patch over HTTP")
	cover := slideOfType(t, st, models.SlideTypeCover)

	rec := env.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/studies/%s/slides/%s", st.ID, cover.ID),
		dtos.UpdateSlideDataRequest{Patch: map[string]any{"project_name": "Palm Villa"}})
	require.Equal(t, http.StatusOK, rec.Code)

	got, _ := env.store.GetStudy(st.ID)
	data := slideOfType(t, got, models.SlideTypeCover).Data.(*models.CoverData)
	require.Equal(t, "Palm Villa", data.ProjectName)
}

func TestRegenerateAndPlaceItemFlow(t *testing.T) {
	env := newTestEnv(t)
	st := env.createStudy(t, "Flow")

	rec := env.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/studies/%s/rooms/regenerate", st.ID),
		dtos.RegenerateRoomsRequest{Kitchens: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	var regen dtos.RegenerateRoomsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&regen))
	require.Equal(t, 1, regen.Inserted)
	kitchen := slideOfType(t, regen.Study, models.SlideTypeKitchen)

	rec = env.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/studies/%s/slides/%s/items", st.ID, kitchen.ID),
		dtos.PlaceItemRequest{LibraryItemID: "kitchen-oven"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var placed dtos.RoomItemResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&placed))
	require.Equal(t, "Oven", placed.Item.Name)
	require.Equal(t, 1800.0, placed.TotalCost)
}

func TestPlaceItemUnknownLibraryID(t *testing.T) {
	env := newTestEnv(t)
	st := env.createStudy(t, "Unknown item")

	rec := env.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/studies/%s/rooms/regenerate", st.ID),
		dtos.RegenerateRoomsRequest{Kitchens: 1})
	require.Equal(t, http.StatusOK, rec.Code)
	var regen dtos.RegenerateRoomsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&regen))
	kitchen := slideOfType(t, regen.Study, models.SlideTypeKitchen)

	rec = env.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/studies/%s/slides/%s/items", st.ID, kitchen.ID),
		dtos.PlaceItemRequest{LibraryItemID: "no-such-item"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPinRoutesIncludeStats(t *testing.T) {
	env := newTestEnv(t)
	st := env.createStudy(t, "Pins over HTTP")
	mapSlide := slideOfType(t, st, models.SlideTypeMap)

	rec := env.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/studies/%s/slides/%s/pins", st.ID, mapSlide.ID),
		dtos.UpsertPinRequest{Lat: 25.0, Lng: 55.0, Apartment: models.Apartment{Name: "A", Price: 300}})
	require.Equal(t, http.StatusCreated, rec.Code)

	// the literal /pins/stats path must not be swallowed by /pins/{pinID}
	rec = env.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/studies/%s/slides/%s/pins/stats", st.ID, mapSlide.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats dtos.ComparableStatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	require.Equal(t, 1, stats.Stats.Count)
	require.Equal(t, 300.0, stats.Stats.AveragePrice)
}
