package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeSlideDataByType(t *testing.T) {
	raw := json.RawMessage(`{"counts":{"kitchens":2,"bedrooms":1}}`)
	data, err := DecodeSlideData(SlideTypeRoomSetup, raw)
	require.NoError(t, err)

	setup, ok := data.(*RoomSetupData)
	require.True(t, ok)
	require.Equal(t, 2, setup.Counts.Kitchens)
	require.Equal(t, 1, setup.Counts.Bedrooms)
}

func TestDecodeSlideDataUnknownType(t *testing.T) {
	_, err := DecodeSlideData(SlideType("garage"), json.RawMessage(`{}`))
	require.Error(t, err)
}

func TestSlideJSONRoundTripKeepsTypedPayload(t *testing.T) {
	slide := Slide{
		ID:    "s1",
		Type:  SlideTypeKitchen,
		Title: "Kitchen",
		Data: &RoomData{
			Items:     []RoomItem{{ID: "i1", Name: "Oven", Price: 1800, Quantity: 2}},
			TotalCost: 3600,
		},
	}
	raw, err := json.Marshal(slide)
	require.NoError(t, err)

	var got Slide
	require.NoError(t, json.Unmarshal(raw, &got))

	room, ok := got.Data.(*RoomData)
	require.True(t, ok)
	require.Len(t, room.Items, 1)
	require.Equal(t, 3600.0, room.TotalCost)
}

func TestOverlayListDecodesByKind(t *testing.T) {
	raw := []byte(`[
		{"kind":"text","id":"t1","content":"Note","font_size":16},
		{"kind":"image","id":"i1","src":"p.png","width":200,"height":150}
	]`)

	var list OverlayList
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 2)
	require.IsType(t, &TextOverlayItem{}, list[0])
	require.IsType(t, &ImageOverlayItem{}, list[1])
}

func TestOverlayListRejectsUnknownKind(t *testing.T) {
	var list OverlayList
	err := json.Unmarshal([]byte(`[{"kind":"video","id":"v1"}]`), &list)
	require.Error(t, err)
}

func TestOverlayMarshalPinsKind(t *testing.T) {
	// a hand-built record with a zero Kind still serializes decodably
	item := &TextOverlayItem{ID: "t1", Content: "x", FontSize: 12}
	raw, err := json.Marshal(item)
	require.NoError(t, err)

	var list OverlayList
	require.NoError(t, json.Unmarshal([]byte("["+string(raw)+"]"), &list))
	require.Equal(t, OverlayKindText, list[0].GetKind())
}

func TestStudyCloneIsDeep(t *testing.T) {
	st := &Study{
		Name: "Deep",
		Slides: []Slide{{
			ID:   "s1",
			Type: SlideTypeKitchen,
			Data: &RoomData{Items: []RoomItem{{ID: "i1", Price: 100, Quantity: 1}}},
		}},
		Overlays: map[string]OverlayList{
			"s1": {&TextOverlayItem{ID: "o1", Kind: OverlayKindText, Content: "x"}},
		},
	}
	c := st.Clone()

	c.Slides[0].Data.(*RoomData).Items[0].Price = 999
	c.Overlays["s1"][0].(*TextOverlayItem).Content = "mutated"

	require.Equal(t, 100.0, st.Slides[0].Data.(*RoomData).Items[0].Price)
	require.Equal(t, "x", st.Overlays["s1"][0].(*TextOverlayItem).Content)
}
