// Package model 描述与宿主无关的图元模型。
//
// 宿主负责把自己的原始对象归类成下面几种图元之一，
// 方向提取和旋转计算只依赖这里的类型。
package model

import (
	"github.com/zooyer/parallel/core"
)

// Element 图元，只读。具体类型只能是本包定义的几种
type Element interface {
	ID() string
	TypeName() string
	Category() Category
	BoundingBox() (core.BBox, bool)

	element()
}

// Curved 暴露定位曲线的图元
type Curved interface {
	Element
	LocationCurve() (Curve, bool)
}

// Base 图元公共属性
type Base struct {
	Handle string
	Type   string     // 宿主中的运行时类型名，只用于提示
	Cat    Category   // 类别
	Box    *core.BBox // 包围盒，没有则为 nil
}

func (b *Base) ID() string { return b.Handle }

func (b *Base) TypeName() string { return b.Type }

func (b *Base) Category() Category { return b.Cat }

func (b *Base) BoundingBox() (core.BBox, bool) {
	if b.Box == nil {
		return core.BBox{}, false
	}
	return *b.Box, true
}

func (b *Base) element() {}

// Grid 轴网
type Grid struct {
	Base
	Curve Curve
}

// ReferencePlane 参照平面
type ReferencePlane struct {
	Base
	Origin    core.Point
	Direction core.Vector
}

// CurveElement 基于定位曲线的图元：管道、风管、桥架、线管以及一般的线式构件
type CurveElement struct {
	Base
	Curve Curve
}

func (c *CurveElement) LocationCurve() (Curve, bool) {
	return c.Curve, len(c.Curve.Points) > 0
}

// Instance 族实例。Facing、Transform 取不到时为 nil，
// Curve 只有线式族才有
type Instance struct {
	Base
	Facing    *core.Vector
	Transform *Transform
	Curve     *Curve
}

func (i *Instance) LocationCurve() (Curve, bool) {
	if i.Curve == nil {
		return Curve{}, false
	}
	return *i.Curve, true
}

// Viewer 剖面/立面视图在平面中的图元，通过草图平面关联到所属视图
type Viewer struct {
	Base
	SketchPlaneView string // 所属视图名称
}

// Transform 放置变换
type Transform struct {
	Origin core.Point
	BasisX core.Vector
	BasisY core.Vector
	BasisZ core.Vector
}
