package utils

// Compose 合并嵌套块的变换：子块先变换到父块坐标，再经过父块变换到世界坐标。
// 父子拉伸方向不同时转角不能直接相加，所以按基向量合并
func (a Affine) Compose(child Affine) Affine {
	return Affine{
		X:      a.Vector(child.X),
		Y:      a.Vector(child.Y),
		Z:      a.Vector(child.Z),
		Origin: a.Point(child.Origin),
	}
}
