package entities

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zooyer/parallel/core"
)

// rotateOCS 绕世界坐标轴旋转 OCS 中的点以及绕拉伸方向的转角（角度制），
// 返回旋转后的点、转角和拉伸方向，点和转角都相对新的拉伸方向
func rotateOCS(axis core.Line, angle float64, point core.Point, rotation float64, extrusion core.Vector) (core.Point, float64, core.Vector) {
	ax, ay, az := core.ArbitraryAxis(extrusion)
	rad := rotation * math.Pi / 180
	xdir := r3.Add(r3.Scale(math.Cos(rad), ax), r3.Scale(math.Sin(rad), ay))

	world := axis.Rotate(core.OCSToWCS(point, az), angle)
	xdir = axis.RotateVector(xdir, angle)
	az = axis.RotateVector(az, angle)

	ax, ay, az = core.ArbitraryAxis(az)
	rotation = math.Atan2(r3.Dot(xdir, ay), r3.Dot(xdir, ax)) * 180 / math.Pi
	return core.WCSToOCS(world, az), rotation, az
}
