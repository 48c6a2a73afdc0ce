package scene

import (
	"encoding/json"
	"fmt"

	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
)

// EntityRecord is the serialized form of an entity. Shape-only and
// group-only fields are omitted from the other type's records.
type EntityRecord struct {
	ID       string     `json:"id"`
	Type     EntityType `json:"type"`
	Name     string     `json:"name,omitempty"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Rotation float64    `json:"rotation"`
	Scale    float64    `json:"scale"`
	Visible  *bool      `json:"visible,omitempty"`
	Locked   bool       `json:"locked,omitempty"`

	Fill         *string        `json:"fill,omitempty"`
	Stroke       *string        `json:"stroke,omitempty"`
	StrokeWeight float64        `json:"strokeWeight,omitempty"`
	Opacity      *float64       `json:"opacity,omitempty"`
	Commands     CommandList    `json:"commands,omitempty"`
	Vertices     []geom.Point   `json:"vertices,omitempty"`
	Rings        [][]geom.Point `json:"rings,omitempty"`

	Children []EntityRecord `json:"children,omitempty"`
}

// CommandList marshals commands as tagged records so each kind carries
// only its own fields plus a "kind" discriminator.
type CommandList []Command

func (l CommandList) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, len(l))
	for i, c := range l {
		enc, err := encodeCommand(c)
		if err != nil {
			return nil, err
		}
		raw[i] = enc
	}
	return json.Marshal(raw)
}

func (l *CommandList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(CommandList, 0, len(raw))
	for _, r := range raw {
		c, err := decodeCommand(r)
		if err != nil {
			return err
		}
		out = append(out, c)
	}
	*l = out
	return nil
}

func encodeCommand(c Command) (json.RawMessage, error) {
	switch v := c.(type) {
	case *Ellipse:
		return json.Marshal(struct {
			Kind CommandKind `json:"kind"`
			*Ellipse
		}{KindEllipse, v})
	case *Rect:
		return json.Marshal(struct {
			Kind CommandKind `json:"kind"`
			*Rect
		}{KindRect, v})
	case *Line:
		return json.Marshal(struct {
			Kind CommandKind `json:"kind"`
			*Line
		}{KindLine, v})
	case *Arc:
		return json.Marshal(struct {
			Kind CommandKind `json:"kind"`
			*Arc
		}{KindArc, v})
	case *Bezier:
		return json.Marshal(struct {
			Kind CommandKind `json:"kind"`
			*Bezier
		}{KindBezier, v})
	case *Text:
		return json.Marshal(struct {
			Kind CommandKind `json:"kind"`
			*Text
		}{KindText, v})
	case *Image:
		return json.Marshal(struct {
			Kind CommandKind `json:"kind"`
			*Image
		}{KindImage, v})
	case *Polyline:
		return json.Marshal(struct {
			Kind CommandKind `json:"kind"`
			*Polyline
		}{KindPolyline, v})
	default:
		return nil, fmt.Errorf("unknown command type %T", c)
	}
}

func decodeCommand(data json.RawMessage) (Command, error) {
	var probe struct {
		Kind CommandKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding command tag: %w", err)
	}

	var c Command
	switch probe.Kind {
	case KindEllipse:
		c = &Ellipse{}
	case KindRect:
		c = &Rect{}
	case KindLine:
		c = &Line{}
	case KindArc:
		c = &Arc{}
	case KindBezier:
		c = &Bezier{}
	case KindText:
		c = &Text{}
	case KindImage:
		c = &Image{}
	case KindPolyline:
		c = &Polyline{}
	default:
		return nil, fmt.Errorf("unknown command kind %q", probe.Kind)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decoding %s command: %w", probe.Kind, err)
	}
	return c, nil
}

// EncodeEntity converts a live entity into its record.
func EncodeEntity(e Entity) EntityRecord {
	switch v := e.(type) {
	case *Shape:
		visible := v.Visible
		opacity := v.Opacity
		rec := EntityRecord{
			ID:           v.ID,
			Type:         TypeShape,
			Name:         v.Name,
			X:            v.X,
			Y:            v.Y,
			Rotation:     v.Rotation,
			Scale:        v.Scale,
			Visible:      &visible,
			Locked:       v.Locked,
			Fill:         cloneColor(v.Fill),
			Stroke:       cloneColor(v.Stroke),
			StrokeWeight: v.StrokeWeight,
			Opacity:      &opacity,
			Vertices:     append([]geom.Point(nil), v.Vertices...),
			Rings:        cloneRings(v.Rings),
		}
		if v.Commands != nil {
			rec.Commands = make(CommandList, len(v.Commands))
			for i, c := range v.Commands {
				rec.Commands[i] = c.clone()
			}
		}
		return rec
	case *Group:
		visible := v.Visible
		rec := EntityRecord{
			ID:       v.ID,
			Type:     TypeGroup,
			Name:     v.Name,
			X:        v.X,
			Y:        v.Y,
			Rotation: v.Rotation,
			Scale:    v.Scale,
			Visible:  &visible,
			Locked:   v.Locked,
		}
		rec.Children = make([]EntityRecord, len(v.Children))
		for i, child := range v.Children {
			rec.Children[i] = EncodeEntity(child)
		}
		return rec
	}
	return EntityRecord{}
}

// DecodeEntity rebuilds a live entity from its record. Missing visibility
// defaults to visible, missing opacity to opaque, and a zero scale (which
// the editor never produces) is normalized to 1.
func DecodeEntity(rec EntityRecord) (Entity, error) {
	scale := rec.Scale
	if scale == 0 {
		scale = 1
	}
	visible := true
	if rec.Visible != nil {
		visible = *rec.Visible
	}

	switch rec.Type {
	case TypeShape:
		opacity := 1.0
		if rec.Opacity != nil {
			opacity = *rec.Opacity
		}
		s := &Shape{
			ID:           rec.ID,
			Name:         rec.Name,
			X:            rec.X,
			Y:            rec.Y,
			Rotation:     rec.Rotation,
			Scale:        scale,
			Fill:         cloneColor(rec.Fill),
			Stroke:       cloneColor(rec.Stroke),
			StrokeWeight: rec.StrokeWeight,
			Opacity:      opacity,
			Visible:      visible,
			Locked:       rec.Locked,
		}
		if rec.Commands != nil {
			s.Commands = make([]Command, len(rec.Commands))
			for i, c := range rec.Commands {
				s.Commands[i] = c.clone()
			}
		}
		if rec.Vertices != nil {
			s.Vertices = append([]geom.Point(nil), rec.Vertices...)
		}
		s.Rings = cloneRings(rec.Rings)
		return s, nil
	case TypeGroup:
		g := &Group{
			ID:       rec.ID,
			Name:     rec.Name,
			X:        rec.X,
			Y:        rec.Y,
			Rotation: rec.Rotation,
			Scale:    scale,
			Visible:  visible,
			Locked:   rec.Locked,
		}
		g.Children = make([]Entity, 0, len(rec.Children))
		for _, childRec := range rec.Children {
			child, err := DecodeEntity(childRec)
			if err != nil {
				return nil, err
			}
			g.Children = append(g.Children, child)
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown entity type %q in record %q", rec.Type, rec.ID)
	}
}

// EncodeScene converts the scene to records in z-order.
func EncodeScene(s *Scene) []EntityRecord {
	recs := make([]EntityRecord, len(s.Entities))
	for i, e := range s.Entities {
		recs[i] = EncodeEntity(e)
	}
	return recs
}

// DecodeScene rebuilds a scene from records.
func DecodeScene(recs []EntityRecord) (*Scene, error) {
	s := NewScene()
	for _, rec := range recs {
		e, err := DecodeEntity(rec)
		if err != nil {
			return nil, err
		}
		s.Add(e)
	}
	return s, nil
}

// MarshalScene serializes the scene as a JSON array of records.
func MarshalScene(s *Scene) ([]byte, error) {
	return json.Marshal(EncodeScene(s))
}

// UnmarshalScene parses a JSON array of records into a scene.
func UnmarshalScene(data []byte) (*Scene, error) {
	var recs []EntityRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return DecodeScene(recs)
}

func cloneRings(rings [][]geom.Point) [][]geom.Point {
	if rings == nil {
		return nil
	}
	out := make([][]geom.Point, len(rings))
	for i, ring := range rings {
		out[i] = append([]geom.Point(nil), ring...)
	}
	return out
}
