package align

import (
	"fmt"

	"github.com/zooyer/parallel/core"
	"github.com/zooyer/parallel/model"
)

// UnsupportedElementError 没有任何策略能提取方向
type UnsupportedElementError struct {
	ID       string
	TypeName string
}

func (e *UnsupportedElementError) Error() string {
	return fmt.Sprintf("unsupported element type %s (id %s)", e.TypeName, e.ID)
}

func unsupported(el model.Element) error {
	if el == nil {
		return &UnsupportedElementError{TypeName: "<nil>"}
	}
	return &UnsupportedElementError{ID: el.ID(), TypeName: el.TypeName()}
}

// Result 一次对齐的计算结果
type Result struct {
	Reference Resolution
	Target    Resolution
	Rotation  Rotation
}

// Aligner 把方向提取和旋转计算串起来
type Aligner struct {
	Extractor *Extractor
}

// NewAligner mep 为 nil 时使用默认机电类别
func NewAligner(mep model.CategorySet) *Aligner {
	return &Aligner{Extractor: NewExtractor(mep)}
}

// Align 计算把 target 转到与 reference 平行的旋转。
// 任一图元无法提取方向时返回 *UnsupportedElementError，不会进入旋转计算
func (a *Aligner) Align(doc model.Document, reference, target model.Element) (Result, error) {
	ref, ok := a.Extractor.Resolve(doc, reference)
	if !ok {
		return Result{}, unsupported(reference)
	}
	tgt, ok := a.Extractor.Resolve(doc, target)
	if !ok {
		return Result{}, unsupported(target)
	}

	rotation := ComputeRotation(ref.Direction, tgt.Direction, func() core.Point {
		return a.Extractor.Pivot(doc, target)
	})

	return Result{Reference: ref, Target: tgt, Rotation: rotation}, nil
}
