package entities

import (
	"github.com/zooyer/parallel/core"
)

type Attrib struct {
	BaseEntity
	Location  core.Point // OCS 坐标
	Tag       string     // 属性标签，如 "VIEW"
	Text      string     // 属性值
	Height    float64
	Rotation  float64     // 角度制
	Extrusion core.Vector // 组码 210/220/230，默认 Z 轴
}

func init() {
	Register("ATTRIB", func() Entity {
		return &Attrib{BaseEntity: BaseEntity{TypeName: "ATTRIB"}, Extrusion: core.AxisZ}
	})
}

func (a *Attrib) Parse(scanner *core.Scanner) error {
	for {
		tag := scanner.LastTag
		if !a.parseCommon(tag) {
			switch tag.Code {
			case 10:
				a.Location.X = tag.AsFloat()
			case 20:
				a.Location.Y = tag.AsFloat()
			case 30:
				a.Location.Z = tag.AsFloat()
			case 40:
				a.Height = tag.AsFloat()
			case 50:
				a.Rotation = tag.AsFloat()
			case 1:
				a.Text = tag.AsString()
			case 2:
				a.Tag = tag.AsString()
			case 210:
				a.Extrusion.X = tag.AsFloat()
			case 220:
				a.Extrusion.Y = tag.AsFloat()
			case 230:
				a.Extrusion.Z = tag.AsFloat()
			}
		}
		if !scanner.Next() || scanner.LastTag.Code == 0 {
			break
		}
	}
	return nil
}

func (a *Attrib) BBox() core.BBox {
	// 简化处理：属性文字暂时以位置点作为包围盒
	p := core.OCSToWCS(a.Location, a.Extrusion)
	return core.BBox{Min: p, Max: p}
}

func (a *Attrib) Clone() Entity {
	c := *a
	return &c
}

func (a *Attrib) Rotate(axis core.Line, angle float64) {
	a.Location, a.Rotation, a.Extrusion = rotateOCS(axis, angle, a.Location, a.Rotation, a.Extrusion)
}
