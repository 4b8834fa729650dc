package align

import (
	"github.com/zooyer/parallel/core"
	"github.com/zooyer/parallel/model"
)

// Strategy 针对某一类图元提取方向和代表点。
// 不匹配或者几何退化时返回 false，由 Extractor 继续尝试下一个
type Strategy interface {
	Name() string
	Direction(doc model.Document, el model.Element) (core.Vector, bool)
	Origin(doc model.Document, el model.Element) (core.Point, bool)
}

// curveOrigin 曲线中点，求值失败退回起点
func curveOrigin(c model.Curve) (core.Point, bool) {
	if p, ok := c.Evaluate(0.5); ok {
		return p, true
	}
	if len(c.Points) == 0 || !core.Finite(c.Start()) {
		return core.Point{}, false
	}
	return c.Start(), true
}

// gridStrategy 轴网
type gridStrategy struct{}

func (gridStrategy) Name() string { return "grid" }

func (gridStrategy) Direction(_ model.Document, el model.Element) (core.Vector, bool) {
	g, ok := el.(*model.Grid)
	if !ok {
		return core.Vector{}, false
	}
	return g.Curve.Direction()
}

func (gridStrategy) Origin(_ model.Document, el model.Element) (core.Point, bool) {
	g, ok := el.(*model.Grid)
	if !ok {
		return core.Point{}, false
	}
	return curveOrigin(g.Curve)
}

// planeStrategy 参照平面，方向直接取平面自身的方向
type planeStrategy struct{}

func (planeStrategy) Name() string { return "reference-plane" }

func (planeStrategy) Direction(_ model.Document, el model.Element) (core.Vector, bool) {
	p, ok := el.(*model.ReferencePlane)
	if !ok {
		return core.Vector{}, false
	}
	return core.Normalize(p.Direction)
}

func (planeStrategy) Origin(_ model.Document, el model.Element) (core.Point, bool) {
	p, ok := el.(*model.ReferencePlane)
	if !ok || !core.Finite(p.Origin) {
		return core.Point{}, false
	}
	return p.Origin, true
}

// mepStrategy 类别属于机电集合且有定位曲线的图元
type mepStrategy struct {
	categories model.CategorySet
}

func (mepStrategy) Name() string { return "mep" }

func (s mepStrategy) curve(el model.Element) (model.Curve, bool) {
	if !s.categories.Contains(el.Category()) {
		return model.Curve{}, false
	}
	c, ok := el.(model.Curved)
	if !ok {
		return model.Curve{}, false
	}
	return c.LocationCurve()
}

func (s mepStrategy) Direction(_ model.Document, el model.Element) (core.Vector, bool) {
	c, ok := s.curve(el)
	if !ok {
		return core.Vector{}, false
	}
	return c.Direction()
}

func (s mepStrategy) Origin(_ model.Document, el model.Element) (core.Point, bool) {
	c, ok := s.curve(el)
	if !ok {
		return core.Point{}, false
	}
	return curveOrigin(c)
}

// instanceStrategy 族实例：先取朝向，再取放置变换的 X 轴
type instanceStrategy struct{}

func (instanceStrategy) Name() string { return "instance" }

func (instanceStrategy) Direction(_ model.Document, el model.Element) (core.Vector, bool) {
	inst, ok := el.(*model.Instance)
	if !ok {
		return core.Vector{}, false
	}
	if inst.Facing != nil {
		if v, ok := core.Normalize(*inst.Facing); ok {
			return v, true
		}
	}
	if inst.Transform != nil {
		if v, ok := core.Normalize(inst.Transform.BasisX); ok {
			return v, true
		}
	}
	return core.Vector{}, false
}

func (instanceStrategy) Origin(_ model.Document, el model.Element) (core.Point, bool) {
	inst, ok := el.(*model.Instance)
	if !ok {
		return core.Point{}, false
	}
	if inst.Transform != nil && core.Finite(inst.Transform.Origin) {
		return inst.Transform.Origin, true
	}
	if inst.Curve != nil {
		return curveOrigin(*inst.Curve)
	}
	return core.Point{}, false
}

// curveStrategy 其余有定位曲线的图元
type curveStrategy struct{}

func (curveStrategy) Name() string { return "curve" }

func (curveStrategy) Direction(_ model.Document, el model.Element) (core.Vector, bool) {
	c, ok := el.(model.Curved)
	if !ok {
		return core.Vector{}, false
	}
	curve, ok := c.LocationCurve()
	if !ok {
		return core.Vector{}, false
	}
	return curve.Direction()
}

func (curveStrategy) Origin(_ model.Document, el model.Element) (core.Point, bool) {
	c, ok := el.(model.Curved)
	if !ok {
		return core.Point{}, false
	}
	curve, ok := c.LocationCurve()
	if !ok {
		return core.Point{}, false
	}
	return curveOrigin(curve)
}

// sectionStrategy 剖面视图图元，方向取所属视图的右方向
type sectionStrategy struct{}

func (sectionStrategy) Name() string { return "section" }

func (sectionStrategy) view(doc model.Document, el model.Element) (model.View, bool) {
	v, ok := el.(*model.Viewer)
	if !ok || doc == nil {
		return model.View{}, false
	}
	view, ok := doc.View(v.SketchPlaneView)
	if !ok || view.Kind != model.ViewSection {
		return model.View{}, false
	}
	return view, true
}

func (s sectionStrategy) Direction(doc model.Document, el model.Element) (core.Vector, bool) {
	view, ok := s.view(doc, el)
	if !ok {
		return core.Vector{}, false
	}
	return core.Normalize(view.RightDirection)
}

func (s sectionStrategy) Origin(doc model.Document, el model.Element) (core.Point, bool) {
	view, ok := s.view(doc, el)
	if !ok || !core.Finite(view.Origin) {
		return core.Point{}, false
	}
	return view.Origin, true
}
