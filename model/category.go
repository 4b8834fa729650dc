package model

import (
	"sort"
	"strings"
)

// Category 图元类别标识
type Category string

// 沿用宿主内置类别名
const (
	CategoryPipeCurves       Category = "OST_PipeCurves"
	CategoryPipeFitting      Category = "OST_PipeFitting"
	CategoryPipeAccessory    Category = "OST_PipeAccessory"
	CategoryFlexPipeCurves   Category = "OST_FlexPipeCurves"
	CategoryDuctCurves       Category = "OST_DuctCurves"
	CategoryDuctFitting      Category = "OST_DuctFitting"
	CategoryDuctAccessory    Category = "OST_DuctAccessory"
	CategoryFlexDuctCurves   Category = "OST_FlexDuctCurves"
	CategoryCableTray        Category = "OST_CableTray"
	CategoryCableTrayFitting Category = "OST_CableTrayFitting"
	CategoryConduit          Category = "OST_Conduit"
	CategoryConduitFitting   Category = "OST_ConduitFitting"
	CategoryGrids            Category = "OST_Grids"
	CategoryReferencePlane   Category = "OST_CLines"
	CategoryGenericModel     Category = "OST_GenericModel"
	CategoryViewers          Category = "OST_Viewers"
	CategoryElevationMarks   Category = "OST_Elev"
	CategoryUnknown          Category = ""
)

// CategorySet 类别集合
type CategorySet map[Category]struct{}

// NewCategorySet 忽略空类别
func NewCategorySet(categories ...Category) CategorySet {
	set := make(CategorySet, len(categories))
	for _, c := range categories {
		if c = Category(strings.TrimSpace(string(c))); c != CategoryUnknown {
			set[c] = struct{}{}
		}
	}
	return set
}

// DefaultMEPCategories 管道、风管、桥架、线管及其管件、附件、软管
func DefaultMEPCategories() CategorySet {
	return NewCategorySet(
		CategoryPipeCurves, CategoryPipeFitting, CategoryPipeAccessory, CategoryFlexPipeCurves,
		CategoryDuctCurves, CategoryDuctFitting, CategoryDuctAccessory, CategoryFlexDuctCurves,
		CategoryCableTray, CategoryCableTrayFitting,
		CategoryConduit, CategoryConduitFitting,
	)
}

func (s CategorySet) Contains(c Category) bool {
	_, ok := s[c]
	return ok
}

// Sorted 按名称排序，便于输出
func (s CategorySet) Sorted() []Category {
	list := make([]Category, 0, len(s))
	for c := range s {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}
