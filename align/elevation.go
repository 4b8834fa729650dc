package align

import (
	"github.com/zooyer/parallel/model"
)

// IsElevationDerived 图元所属视图是立面视图。
// 旋转立面视图自身的几何没有效果，需要改为旋转它的立面标记
func IsElevationDerived(doc model.Document, el model.Element) bool {
	v, ok := el.(*model.Viewer)
	if !ok || doc == nil {
		return false
	}
	view, ok := doc.View(v.SketchPlaneView)
	return ok && view.Kind == model.ViewElevation
}

// ResolveElevationMarkerOwner 在所有立面标记中查找包含该图元视图的那个
func ResolveElevationMarkerOwner(doc model.Document, el model.Element) (model.ElevationMarker, bool) {
	if !IsElevationDerived(doc, el) {
		return model.ElevationMarker{}, false
	}
	name := el.(*model.Viewer).SketchPlaneView
	for _, marker := range doc.ElevationMarkers() {
		if marker.Slot(name) >= 0 {
			return marker, true
		}
	}
	return model.ElevationMarker{}, false
}

// RotationTarget 实际需要旋转的图元 ID，立面视图改为其立面标记
func RotationTarget(doc model.Document, el model.Element) (string, bool) {
	if el == nil {
		return "", false
	}
	if IsElevationDerived(doc, el) {
		marker, ok := ResolveElevationMarkerOwner(doc, el)
		if !ok {
			return "", false
		}
		return marker.ElementID, true
	}
	return el.ID(), true
}
