package entities

import (
	"github.com/zooyer/parallel/core"
)

// XLine 构造线（双向无限长），作为参照平面的迹线
type XLine struct {
	BaseEntity
	Base      core.Point  // 组码 10/20/30
	Direction core.Vector // 组码 11/21/31，单位方向
}

func init() {
	Register("XLINE", func() Entity { return &XLine{BaseEntity: BaseEntity{TypeName: "XLINE"}} })
}

func (x *XLine) Parse(s *core.Scanner) error {
	for {
		t := s.LastTag
		if !x.parseCommon(t) {
			switch t.Code {
			case 10:
				x.Base.X = t.AsFloat()
			case 20:
				x.Base.Y = t.AsFloat()
			case 30:
				x.Base.Z = t.AsFloat()
			case 11:
				x.Direction.X = t.AsFloat()
			case 21:
				x.Direction.Y = t.AsFloat()
			case 31:
				x.Direction.Z = t.AsFloat()
			}
		}
		if !s.Next() || s.LastTag.Code == 0 {
			break
		}
	}
	return nil
}

// BBox 无限长的线没有有限包围盒，这里只返回基点
func (x *XLine) BBox() core.BBox {
	return core.BBox{Min: x.Base, Max: x.Base}
}

func (x *XLine) Clone() Entity {
	c := *x
	return &c
}

func (x *XLine) Rotate(axis core.Line, angle float64) {
	x.Base = axis.Rotate(x.Base, angle)
	x.Direction = axis.RotateVector(x.Direction, angle)
}
