package entities

import (
	"github.com/zooyer/parallel/core"
)

type Insert struct {
	BaseEntity
	BlockName      string
	InsertionPoint core.Point // OCS 坐标
	Scale          core.Point
	Rotation       float64     // 角度制，绕 Extrusion 逆时针
	Extrusion      core.Vector // 组码 210/220/230，默认 Z 轴
	Attributes     []*Attrib
}

func init() {
	Register("INSERT", func() Entity {
		return &Insert{
			BaseEntity: BaseEntity{TypeName: "INSERT"},
			Scale:      core.Point{X: 1, Y: 1, Z: 1}, // 默认缩放为 1
			Extrusion:  core.AxisZ,
			Attributes: []*Attrib{},
		}
	})
}

func (i *Insert) Parse(scanner *core.Scanner) error {
	hasAttributes := false

	for {
		tag := scanner.LastTag
		if !i.parseCommon(tag) {
			switch tag.Code {
			case 2:
				i.BlockName = tag.AsString()
			case 10:
				i.InsertionPoint.X = tag.AsFloat()
			case 20:
				i.InsertionPoint.Y = tag.AsFloat()
			case 30:
				i.InsertionPoint.Z = tag.AsFloat()
			case 41:
				i.Scale.X = tag.AsFloat()
			case 42:
				i.Scale.Y = tag.AsFloat()
			case 43:
				i.Scale.Z = tag.AsFloat()
			case 50:
				i.Rotation = tag.AsFloat()
			case 66:
				if tag.AsInt() == 1 {
					hasAttributes = true
				}
			case 210:
				i.Extrusion.X = tag.AsFloat()
			case 220:
				i.Extrusion.Y = tag.AsFloat()
			case 230:
				i.Extrusion.Z = tag.AsFloat()
			}
		}

		if !scanner.Next() || scanner.LastTag.Code == 0 {
			break
		}
	}

	// 核心逻辑：如果标记了有属性，则继续在当前流中抓取 ATTRIB 直到 SEQEND
	if hasAttributes {
		for {
			tag := scanner.LastTag
			if tag.Code == 0 {
				if tag.Value == "SEQEND" {
					// 消耗掉 SEQEND 及其组码，停在下一个实体的 0 组码上
					for scanner.Next() && scanner.LastTag.Code != 0 {
					}
					break
				}
				// 创建子实体
				subEntity := CreateEntity(tag.Value)
				if attr, ok := subEntity.(*Attrib); ok {
					if err := attr.Parse(scanner); err != nil {
						return err
					}
					i.Attributes = append(i.Attributes, attr)
					continue // Parse 内部已经 Next 了，直接进入下一次判断
				}
			}
			if !scanner.Next() {
				break
			}
		}
	}
	return nil
}

func (i *Insert) BBox() core.BBox {
	// Insert 的包围盒比较特殊，通常需要结合 Block 定义计算
	// 这里先返回插入点
	p := core.OCSToWCS(i.InsertionPoint, i.Extrusion)
	return core.BBox{Min: p, Max: p}
}

func (i *Insert) Clone() Entity {
	c := *i
	c.Attributes = make([]*Attrib, 0, len(i.Attributes))
	for _, a := range i.Attributes {
		c.Attributes = append(c.Attributes, a.Clone().(*Attrib))
	}
	return &c
}

// Rotate 插入点、转角和拉伸方向一起绕轴旋转，属性跟随
func (i *Insert) Rotate(axis core.Line, angle float64) {
	i.InsertionPoint, i.Rotation, i.Extrusion = rotateOCS(axis, angle, i.InsertionPoint, i.Rotation, i.Extrusion)
	for _, a := range i.Attributes {
		a.Rotate(axis, angle)
	}
}
