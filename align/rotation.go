package align

import (
	"fmt"
	"math"

	"github.com/zooyer/golib/xmath"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zooyer/parallel/core"
)

const (
	// ParallelTolerance 小于该弧度视为已经平行（约 0.057°）
	ParallelTolerance = 0.001

	// DefaultParallelToleranceDegrees AreParallel 的默认容差（角度制）
	DefaultParallelToleranceDegrees = 0.1
)

// Rotation 旋转指令。Angle 为 0 时 Axis 为 nil，使用前先判断角度
type Rotation struct {
	Angle float64    // 弧度，范围 (-π/2, π/2]
	Axis  *core.Line // 旋转轴
}

// IsParallel 不需要旋转
func (r Rotation) IsParallel() bool {
	return r.Angle == 0 || r.Axis == nil
}

// Degrees 角度制
func (r Rotation) Degrees() float64 {
	return ToDegrees(r.Angle)
}

// CounterClockwise 从上往下看是否为逆时针
func (r Rotation) CounterClockwise() bool {
	if r.IsParallel() {
		return false
	}
	return r.Angle*r.Axis.Direction.Z > 0
}

func (r Rotation) String() string {
	return Describe(r)
}

// Apply 将旋转作用到方向向量上，平行时原样返回
func (r Rotation) Apply(v core.Vector) core.Vector {
	if r.IsParallel() {
		return v
	}
	return r.Axis.RotateVector(v, r.Angle)
}

// isParallel 严格小于容差才算平行
func isParallel(angle float64) bool {
	return math.Abs(angle) < ParallelTolerance
}

// flatten 投影到 XY 平面并单位化
func flatten(v core.Vector) (core.Vector, bool) {
	return core.Normalize(core.FlattenXY(v))
}

// foldedAngle 两条直线在 XY 平面上的夹角。反向视为平行，
// 大于 π/2 时减去 π，取转动量更小的方向
func foldedAngle(v1, v2 core.Vector) float64 {
	angle := core.AngleBetween(v2, v1)
	if angle > math.Pi/2 {
		angle -= math.Pi
	}
	return angle
}

// ComputeRotation 计算把 target 转到与 reference 平行所需的旋转。
// 零向量表示方向不支持，结果为不旋转。pivot 只在需要旋转时调用
func ComputeRotation(reference, target core.Vector, pivot func() core.Point) Rotation {
	v1, ok := flatten(reference)
	if !ok {
		return Rotation{}
	}
	v2, ok := flatten(target)
	if !ok {
		return Rotation{}
	}

	angle := foldedAngle(v1, v2)
	if isParallel(angle) {
		return Rotation{}
	}

	// 叉乘顺序决定正负号：绕 v2×v1 转 angle 使 v2 转向 v1
	axis, ok := core.Normalize(r3.Cross(v2, v1))
	if !ok {
		return Rotation{}
	}

	var origin core.Point
	if pivot != nil {
		origin = pivot()
	}
	if !core.Finite(origin) {
		origin = core.Point{}
	}

	return Rotation{
		Angle: angle,
		Axis:  &core.Line{Origin: origin, Direction: axis},
	}
}

// AreParallel XY 投影后的夹角在 0° 或 180° 的容差范围内
func AreParallel(d1, d2 core.Vector, toleranceDegrees float64) bool {
	v1, ok := flatten(d1)
	if !ok {
		return false
	}
	v2, ok := flatten(d2)
	if !ok {
		return false
	}
	deg := ToDegrees(core.AngleBetween(v1, v2))
	return xmath.Equal(deg, 0, toleranceDegrees) || xmath.Equal(deg, 180, toleranceDegrees)
}

// ToDegrees 弧度转角度
func ToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Describe 旋转的文字描述
func Describe(r Rotation) string {
	if r.IsParallel() {
		return "already parallel"
	}
	direction := "clockwise"
	if r.CounterClockwise() {
		direction = "counterclockwise"
	}
	return fmt.Sprintf("rotating %.2f° %s", math.Abs(r.Degrees()), direction)
}
