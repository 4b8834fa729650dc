package model

import (
	"github.com/zooyer/parallel/core"
)

// ViewKind 视图类型
type ViewKind int

const (
	ViewPlan ViewKind = iota
	ViewSection
	ViewElevation
)

func (k ViewKind) String() string {
	switch k {
	case ViewSection:
		return "section"
	case ViewElevation:
		return "elevation"
	default:
		return "plan"
	}
}

// View 视图
type View struct {
	Name           string
	Kind           ViewKind
	Origin         core.Point
	RightDirection core.Vector
}

// MarkerSlots 立面标记最多容纳的立面视图数
const MarkerSlots = 4

// ElevationMarker 立面标记，立面视图真正可旋转的几何属于它
type ElevationMarker struct {
	ElementID string
	Views     [MarkerSlots]string // 空字符串表示该位置没有视图
}

// Slot 返回视图所在位置，不存在返回 -1
func (m ElevationMarker) Slot(view string) int {
	if view == "" {
		return -1
	}
	for i, v := range m.Views {
		if v == view {
			return i
		}
	}
	return -1
}

// Document 宿主文档的只读查询
type Document interface {
	View(name string) (View, bool)
	ElevationMarkers() []ElevationMarker
}
