package entities

import (
	"github.com/zooyer/parallel/core"
)

type LWPolyline struct {
	BaseEntity
	Elevation float64 // 组码 38，所有顶点共用的 Z
	Vertices  []core.Point
}

func init() {
	Register("LWPOLYLINE", func() Entity { return &LWPolyline{BaseEntity: BaseEntity{TypeName: "LWPOLYLINE"}} })
}

func (l *LWPolyline) Parse(s *core.Scanner) error {
	var x float64
	for {
		t := s.LastTag
		if !l.parseCommon(t) {
			switch t.Code {
			case 38:
				l.Elevation = t.AsFloat()
			case 10:
				x = t.AsFloat()
			case 20:
				l.Vertices = append(l.Vertices, core.Point{X: x, Y: t.AsFloat()})
			}
		}
		if !s.Next() || s.LastTag.Code == 0 {
			break
		}
	}
	// 标高可能出现在顶点之后
	for i := range l.Vertices {
		l.Vertices[i].Z = l.Elevation
	}
	return nil
}

func (l *LWPolyline) BBox() core.BBox {
	if len(l.Vertices) == 0 {
		return core.BBox{}
	}
	box := core.EmptyBBox()
	for _, v := range l.Vertices {
		box = core.Extend(box, v)
	}
	return box
}

func (l *LWPolyline) Clone() Entity {
	c := *l
	c.Vertices = append([]core.Point(nil), l.Vertices...)
	return &c
}

// Rotate 旋转后顶点可能不再共面于原标高，Elevation 取首点 Z
func (l *LWPolyline) Rotate(axis core.Line, angle float64) {
	for i, v := range l.Vertices {
		l.Vertices[i] = axis.Rotate(v, angle)
	}
	if len(l.Vertices) > 0 {
		l.Elevation = l.Vertices[0].Z
	}
}
