package model

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zooyer/parallel/core"
)

// Curve 定位曲线，用折线表示，直线就是两个点
type Curve struct {
	Points []core.Point
}

// NewLine 由起点和终点构造直线
func NewLine(start, end core.Point) Curve {
	return Curve{Points: []core.Point{start, end}}
}

func (c Curve) Start() core.Point {
	if len(c.Points) == 0 {
		return core.Point{}
	}
	return c.Points[0]
}

func (c Curve) End() core.Point {
	if len(c.Points) == 0 {
		return core.Point{}
	}
	return c.Points[len(c.Points)-1]
}

// Length 折线总长
func (c Curve) Length() float64 {
	var length float64
	for i := 1; i < len(c.Points); i++ {
		length += r3.Norm(r3.Sub(c.Points[i], c.Points[i-1]))
	}
	return length
}

// Direction 起点指向终点的单位向量，长度为零时返回 false
func (c Curve) Direction() (core.Vector, bool) {
	if len(c.Points) < 2 {
		return core.Vector{}, false
	}
	return core.Normalize(r3.Sub(c.End(), c.Start()))
}

// Evaluate 按归一化弧长参数 t∈[0,1] 求点，退化曲线返回 false
func (c Curve) Evaluate(t float64) (core.Point, bool) {
	if t < 0 || t > 1 || len(c.Points) < 2 {
		return core.Point{}, false
	}
	total := c.Length()
	if total == 0 || !core.Finite(core.Vector{X: total}) {
		return core.Point{}, false
	}

	target := t * total
	for i := 1; i < len(c.Points); i++ {
		seg := r3.Sub(c.Points[i], c.Points[i-1])
		n := r3.Norm(seg)
		if target <= n || i == len(c.Points)-1 {
			if n == 0 {
				return c.Points[i], true
			}
			return r3.Add(c.Points[i-1], r3.Scale(target/n, seg)), true
		}
		target -= n
	}
	return c.End(), true
}
