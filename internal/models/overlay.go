package models

import (
	"encoding/json"
	"fmt"
)

type OverlayKind string

const (
	OverlayKindText  OverlayKind = "text"
	OverlayKindImage OverlayKind = "image"
)

// OverlayItem is a free-form element positioned over a rendered slide in
// the slide's own logical pixel space. The concrete types are
// TextOverlayItem and ImageOverlayItem; consumers type-switch.
type OverlayItem interface {
	GetID() string
	GetKind() OverlayKind
	GetPosition() Point
	SetPosition(Point)
	Clone() OverlayItem
}

type TextOverlayItem struct {
	ID         string      `json:"id"`
	Kind       OverlayKind `json:"kind"`
	Content    string      `json:"content"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	FontSize   float64     `json:"font_size"`
	Color      string      `json:"color"`
	FontWeight string      `json:"font_weight"`
}

// MarshalJSON pins the kind tag so a zero Kind field can never produce
// an undecodable record.
func (t *TextOverlayItem) MarshalJSON() ([]byte, error) {
	type alias TextOverlayItem
	a := alias(*t)
	a.Kind = OverlayKindText
	return json.Marshal(a)
}

func (t *TextOverlayItem) GetID() string         { return t.ID }
func (t *TextOverlayItem) GetKind() OverlayKind  { return OverlayKindText }
func (t *TextOverlayItem) GetPosition() Point    { return Point{X: t.X, Y: t.Y} }
func (t *TextOverlayItem) SetPosition(p Point)   { t.X, t.Y = p.X, p.Y }
func (t *TextOverlayItem) Clone() OverlayItem    { c := *t; return &c }

type ImageOverlayItem struct {
	ID       string      `json:"id"`
	Kind     OverlayKind `json:"kind"`
	Src      string      `json:"src"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation float64     `json:"rotation"`
}

func (i *ImageOverlayItem) MarshalJSON() ([]byte, error) {
	type alias ImageOverlayItem
	a := alias(*i)
	a.Kind = OverlayKindImage
	return json.Marshal(a)
}

func (i *ImageOverlayItem) GetID() string        { return i.ID }
func (i *ImageOverlayItem) GetKind() OverlayKind { return OverlayKindImage }
func (i *ImageOverlayItem) GetPosition() Point   { return Point{X: i.X, Y: i.Y} }
func (i *ImageOverlayItem) SetPosition(p Point)  { i.X, i.Y = p.X, p.Y }
func (i *ImageOverlayItem) Clone() OverlayItem   { c := *i; return &c }

// OverlayList is the ordered overlay collection of one slide. It decodes
// the kind-tagged union form.
type OverlayList []OverlayItem

func (l *OverlayList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(OverlayList, 0, len(raws))
	for _, raw := range raws {
		var probe struct {
			Kind OverlayKind `json:"kind"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return err
		}
		switch probe.Kind {
		case OverlayKindText:
			var t TextOverlayItem
			if err := json.Unmarshal(raw, &t); err != nil {
				return err
			}
			out = append(out, &t)
		case OverlayKindImage:
			var i ImageOverlayItem
			if err := json.Unmarshal(raw, &i); err != nil {
				return err
			}
			out = append(out, &i)
		default:
			return fmt.Errorf("unknown overlay kind %q", probe.Kind)
		}
	}
	*l = out
	return nil
}

func (l OverlayList) Clone() OverlayList {
	if l == nil {
		return nil
	}
	out := make(OverlayList, len(l))
	for i, item := range l {
		out[i] = item.Clone()
	}
	return out
}
