package utils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zooyer/parallel/core"
	"github.com/zooyer/parallel/entities"
)

// Affine 块局部坐标到世界坐标的变换：Origin + p.X*X + p.Y*Y + p.Z*Z
type Affine struct {
	X, Y, Z core.Vector
	Origin  core.Point
}

// InsertAffine 块参照的变换：缩放 -> 绕拉伸方向旋转 -> OCS 转 WCS -> 平移
func InsertAffine(ins *entities.Insert) Affine {
	ax, ay, az := core.ArbitraryAxis(ins.Extrusion)
	rad := ins.Rotation * math.Pi / 180.0
	cos, sin := math.Cos(rad), math.Sin(rad)

	return Affine{
		X:      r3.Scale(ins.Scale.X, r3.Add(r3.Scale(cos, ax), r3.Scale(sin, ay))),
		Y:      r3.Scale(ins.Scale.Y, r3.Add(r3.Scale(-sin, ax), r3.Scale(cos, ay))),
		Z:      r3.Scale(ins.Scale.Z, az),
		Origin: core.OCSToWCS(ins.InsertionPoint, az),
	}
}

// Vector 只变换方向，不平移
func (a Affine) Vector(v core.Vector) core.Vector {
	return r3.Add(r3.Add(r3.Scale(v.X, a.X), r3.Scale(v.Y, a.Y)), r3.Scale(v.Z, a.Z))
}

func (a Affine) Point(p core.Point) core.Point {
	return r3.Add(a.Origin, a.Vector(p))
}
