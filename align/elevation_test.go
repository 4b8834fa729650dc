package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zooyer/parallel/model"
)

func TestIsElevationDerived(t *testing.T) {
	doc := newFakeDocument()

	assert.True(t, IsElevationDerived(doc, &model.Viewer{SketchPlaneView: "ELEVATION-2"}))
	assert.False(t, IsElevationDerived(doc, &model.Viewer{SketchPlaneView: "SECTION-1"}))
	assert.False(t, IsElevationDerived(doc, &model.Viewer{SketchPlaneView: "NOPE"}))
	assert.False(t, IsElevationDerived(doc, &model.Grid{}))
	assert.False(t, IsElevationDerived(nil, &model.Viewer{SketchPlaneView: "ELEVATION-2"}))
}

func TestResolveElevationMarkerOwner(t *testing.T) {
	doc := newFakeDocument()

	// ELEVATION-2 位于 M2 的第 3 个位置（下标 2）
	marker, ok := ResolveElevationMarkerOwner(doc, &model.Viewer{SketchPlaneView: "ELEVATION-2"})
	require.True(t, ok)
	assert.Equal(t, "M2", marker.ElementID)
	assert.Equal(t, 2, marker.Slot("ELEVATION-2"))

	// 视图不在任何标记中
	doc.views["ELEVATION-7"] = model.View{Name: "ELEVATION-7", Kind: model.ViewElevation}
	_, ok = ResolveElevationMarkerOwner(doc, &model.Viewer{SketchPlaneView: "ELEVATION-7"})
	assert.False(t, ok)

	_, ok = ResolveElevationMarkerOwner(doc, &model.Viewer{SketchPlaneView: "SECTION-1"})
	assert.False(t, ok)
}

func TestRotationTarget(t *testing.T) {
	doc := newFakeDocument()
	doc.views["ELEVATION-7"] = model.View{Name: "ELEVATION-7", Kind: model.ViewElevation}

	tests := []struct {
		name    string
		element model.Element
		want    string
		ok      bool
	}{
		{"grid", &model.Grid{Base: base("G1", "Grid", model.CategoryGrids)}, "G1", true},
		{"section viewer", &model.Viewer{Base: base("V1", "Viewer", model.CategoryViewers), SketchPlaneView: "SECTION-1"}, "V1", true},
		{"elevation viewer", &model.Viewer{Base: base("V2", "Viewer", model.CategoryViewers), SketchPlaneView: "ELEVATION-2"}, "M2", true},
		{"orphan elevation", &model.Viewer{Base: base("V3", "Viewer", model.CategoryViewers), SketchPlaneView: "ELEVATION-7"}, "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := RotationTarget(doc, tt.element)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestElevationMarker_Slot(t *testing.T) {
	m := model.ElevationMarker{ElementID: "M", Views: [model.MarkerSlots]string{"A", "", "C", ""}}
	assert.Equal(t, 0, m.Slot("A"))
	assert.Equal(t, 2, m.Slot("C"))
	assert.Equal(t, -1, m.Slot("B"))
	assert.Equal(t, -1, m.Slot(""))
}
