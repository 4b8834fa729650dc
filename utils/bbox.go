package utils

import (
	"strings"

	"github.com/zooyer/parallel/core"
	"github.com/zooyer/parallel/dxf"
	"github.com/zooyer/parallel/entities"
)

// maxBlockDepth 块嵌套深度上限，防止块循环引用
const maxBlockDepth = 16

// TransformBBox 执行矩阵变换：将局部坐标变换到插入点所在的世界坐标
func TransformBBox(local core.BBox, tf Affine) core.BBox {
	box := core.EmptyBBox()
	for _, p := range local.Vertices() {
		box = core.Extend(box, tf.Point(p))
	}
	return box
}

// GetEntityBBoxWCS 实体在世界坐标下的包围盒，块参照会展开嵌套块计算
func GetEntityBBoxWCS(d *dxf.Document, entity entities.Entity) core.BBox {
	switch e := entity.(type) {
	case *entities.Insert:
		tf := InsertAffine(e)
		if box, ok := blockBBox(d, e.BlockName, tf, 0); ok {
			return box
		}
		return core.BBox{Min: tf.Origin, Max: tf.Origin}
	default:
		return e.BBox()
	}
}

// blockBBox tf 已经是块局部坐标到世界坐标的组合变换
func blockBBox(d *dxf.Document, name string, tf Affine, depth int) (core.BBox, bool) {
	if d == nil || depth > maxBlockDepth {
		return core.BBox{}, false
	}
	block, ok := d.Blocks[strings.ToUpper(name)]
	if !ok || len(block.Entities) == 0 {
		return core.BBox{}, false
	}

	var (
		box   = core.EmptyBBox()
		found bool
	)
	for _, sub := range block.Entities {
		var sb core.BBox
		if child, ok := sub.(*entities.Insert); ok {
			combined := tf.Compose(InsertAffine(child))
			if nested, ok := blockBBox(d, child.BlockName, combined, depth+1); ok {
				sb = nested
			} else {
				sb = core.BBox{Min: combined.Origin, Max: combined.Origin}
			}
		} else {
			sb = TransformBBox(sub.BBox(), tf)
		}
		box = core.Extend(core.Extend(box, sb.Min), sb.Max)
		found = true
	}

	return box, found
}
