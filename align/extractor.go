package align

import (
	"github.com/zooyer/parallel/core"
	"github.com/zooyer/parallel/model"
)

// Resolution 方向提取结果
type Resolution struct {
	Strategy  string
	Direction core.Vector
}

// Extractor 按优先级依次尝试各个策略，第一个成功的生效
type Extractor struct {
	strategies []Strategy
}

// NewExtractor mep 为机电类别集合，为 nil 时使用默认集合
func NewExtractor(mep model.CategorySet) *Extractor {
	if mep == nil {
		mep = model.DefaultMEPCategories()
	}
	return NewExtractorWith(
		gridStrategy{},
		planeStrategy{},
		mepStrategy{categories: mep},
		instanceStrategy{},
		curveStrategy{},
		sectionStrategy{},
	)
}

// NewExtractorWith 使用自定义的策略顺序
func NewExtractorWith(strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

// Strategies 策略名称，按优先级排列
func (e *Extractor) Strategies() []string {
	names := make([]string, 0, len(e.strategies))
	for _, s := range e.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Resolve 返回方向以及命中的策略
func (e *Extractor) Resolve(doc model.Document, el model.Element) (Resolution, bool) {
	if el == nil {
		return Resolution{}, false
	}
	for _, s := range e.strategies {
		if v, ok := s.Direction(doc, el); ok {
			return Resolution{Strategy: s.Name(), Direction: v}, true
		}
	}
	return Resolution{}, false
}

// Direction 图元的单位方向向量，所有策略都不匹配返回 false
func (e *Extractor) Direction(doc model.Document, el model.Element) (core.Vector, bool) {
	r, ok := e.Resolve(doc, el)
	return r.Direction, ok
}

// Origin 图元的代表点，优先级与 Direction 相同
func (e *Extractor) Origin(doc model.Document, el model.Element) (core.Point, bool) {
	if el == nil {
		return core.Point{}, false
	}
	for _, s := range e.strategies {
		if p, ok := s.Origin(doc, el); ok {
			return p, true
		}
	}
	return core.Point{}, false
}

// Pivot 旋转轴经过的点：代表点，其次包围盒中心，最后是原点
func (e *Extractor) Pivot(doc model.Document, el model.Element) core.Point {
	if p, ok := e.Origin(doc, el); ok {
		return p
	}
	if el != nil {
		if box, ok := el.BoundingBox(); ok {
			if c := box.Center(); core.Finite(c) {
				return c
			}
		}
	}
	return core.Point{}
}
