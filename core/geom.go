package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point 代表三维空间中的一个点
type Point = r3.Vec

// Vector 代表三维方向向量
type Vector = r3.Vec

// BBox 代表包围盒
type BBox = r3.Box

var (
	AxisX = Vector{X: 1}
	AxisY = Vector{Y: 1}
	AxisZ = Vector{Z: 1}
)

// Line 由一点和方向确定的直线，旋转轴使用
type Line struct {
	Origin    Point
	Direction Vector
}

// Finite 判断向量各分量都是有限值
func Finite(v Vector) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Normalize 单位化，零向量或非有限值返回 false
func Normalize(v Vector) (Vector, bool) {
	if !Finite(v) {
		return Vector{}, false
	}
	n := r3.Norm(v)
	if n == 0 || math.IsInf(n, 0) {
		return Vector{}, false
	}
	return r3.Scale(1/n, v), true
}

// FlattenXY 投影到 XY 平面（Z 清零）
func FlattenXY(v Vector) Vector {
	return Vector{X: v.X, Y: v.Y}
}

// AngleBetween 返回两向量夹角，范围 [0, π]
// 用 atan2(|a×b|, a·b) 计算，小角度下比 acos 稳定
func AngleBetween(a, b Vector) float64 {
	return math.Atan2(r3.Norm(r3.Cross(a, b)), r3.Dot(a, b))
}

// Rotate 将点 p 绕轴线 axis 旋转 angle 弧度（右手定则）
func (l Line) Rotate(p Point, angle float64) Point {
	rel := r3.Sub(p, l.Origin)
	return r3.Add(l.Origin, r3.Rotate(rel, angle, l.Direction))
}

// RotateVector 只旋转方向，与轴线位置无关
func (l Line) RotateVector(v Vector, angle float64) Vector {
	return r3.Rotate(v, angle, l.Direction)
}

// EmptyBBox 返回一个可以被 Extend 扩展的空盒子
func EmptyBBox() BBox {
	return BBox{
		Min: Point{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Point{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// Extend 扩展包围盒使其包含点 p
func Extend(box BBox, p Point) BBox {
	box.Min.X = math.Min(box.Min.X, p.X)
	box.Min.Y = math.Min(box.Min.Y, p.Y)
	box.Min.Z = math.Min(box.Min.Z, p.Z)
	box.Max.X = math.Max(box.Max.X, p.X)
	box.Max.Y = math.Max(box.Max.Y, p.Y)
	box.Max.Z = math.Max(box.Max.Z, p.Z)
	return box
}

// ValidBBox 判断包围盒是否被扩展过（Min 不大于 Max）
func ValidBBox(box BBox) bool {
	return box.Min.X <= box.Max.X && box.Min.Y <= box.Max.Y && box.Min.Z <= box.Max.Z
}

// ArbitraryAxis DXF 任意轴算法：由拉伸方向求 OCS 的三个单位轴，拉伸方向退化时取世界坐标轴
func ArbitraryAxis(extrusion Vector) (ax, ay, az Vector) {
	az, ok := Normalize(extrusion)
	if !ok {
		return AxisX, AxisY, AxisZ
	}
	const limit = 1.0 / 64
	if math.Abs(az.X) < limit && math.Abs(az.Y) < limit {
		ax, _ = Normalize(r3.Cross(AxisY, az))
	} else {
		ax, _ = Normalize(r3.Cross(AxisZ, az))
	}
	ay, _ = Normalize(r3.Cross(az, ax))
	return ax, ay, az
}

// OCSToWCS 将 OCS 坐标转换到世界坐标
func OCSToWCS(p Point, extrusion Vector) Point {
	ax, ay, az := ArbitraryAxis(extrusion)
	return r3.Add(r3.Add(r3.Scale(p.X, ax), r3.Scale(p.Y, ay)), r3.Scale(p.Z, az))
}

// WCSToOCS 将世界坐标转换到 OCS
func WCSToOCS(p Point, extrusion Vector) Point {
	ax, ay, az := ArbitraryAxis(extrusion)
	return Point{X: r3.Dot(p, ax), Y: r3.Dot(p, ay), Z: r3.Dot(p, az)}
}
