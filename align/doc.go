// Package align 计算让一个图元与参照图元在水平面内平行所需的旋转。
//
// 流程分两步：
//
//  1. Extractor 按固定优先级（轴网、参照平面、机电管线、族实例、线式图元、剖面视图）
//     从图元中提取方向向量和代表点，前面的策略命中后不再尝试后面的；
//  2. ComputeRotation 把两个方向投影到 XY 平面，求出带符号的转角和旋转轴。
//     一条直线没有正反，夹角大于 90° 时取反向，转角始终落在 (-π/2, π/2]。
//
// 两者都不会返回错误：提取失败返回 false，几何退化时转角为 0。
// 旋转的执行（事务、回滚）由宿主负责。
package align
