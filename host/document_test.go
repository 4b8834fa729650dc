package host

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zooyer/parallel/align"
	"github.com/zooyer/parallel/config"
	"github.com/zooyer/parallel/core"
	"github.com/zooyer/parallel/dxf"
	"github.com/zooyer/parallel/entities"
	"github.com/zooyer/parallel/model"
)

const delta = 1e-9

func open(t *testing.T) *Document {
	t.Helper()
	drawing, err := dxf.Open("testdata/sample.dxf")
	require.NoError(t, err)
	return New(drawing, nil)
}

func curve(t *testing.T, el model.Element) model.Curve {
	t.Helper()
	c, ok := el.(model.Curved)
	require.True(t, ok, "%s 没有定位曲线", el.ID())
	lc, ok := c.LocationCurve()
	require.True(t, ok)
	return lc
}

func TestDocument_Classify(t *testing.T) {
	doc := open(t)

	tests := []struct {
		id       string
		element  model.Element
		category model.Category
	}{
		{"1A", &model.Grid{}, model.CategoryGrids},
		{"2A", &model.CurveElement{}, model.CategoryPipeCurves},
		{"3A", &model.ReferencePlane{}, model.CategoryReferencePlane},
		{"4A", &model.Instance{}, model.Category("0")},
		{"5A", &model.Viewer{}, model.CategoryViewers},
		{"6A", &model.Viewer{}, model.CategoryViewers},
		{"7A", &model.Instance{}, model.CategoryElevationMarks},
		{"8A", &model.CurveElement{}, model.Category("LOCKED")},
		{"9A", &model.CurveElement{}, model.Category("WALL")},
		{"AA", &model.CurveElement{}, model.Category("WALL")},
	}
	require.Len(t, doc.Elements(), len(tests))
	for i, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			el, ok := doc.Element(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.id, el.ID())
			assert.IsType(t, tt.element, el)
			assert.Equal(t, tt.category, el.Category())
			assert.Same(t, el, doc.Elements()[i], "按图纸顺序排列")
		})
	}

	_, ok := doc.Element("ZZ")
	assert.False(t, ok)
}

func TestDocument_Elements(t *testing.T) {
	doc := open(t)

	el, ok := doc.Element(" 2a ")
	require.True(t, ok, "ID 忽略大小写和空白")
	assert.Equal(t, "2A | LINE | PIPE | OST_PipeCurves", doc.Describe(el))
	assert.Equal(t, []core.Point{{}, {X: 10, Y: 10}}, curve(t, el).Points)

	el, _ = doc.Element("3A")
	plane := el.(*model.ReferencePlane)
	assert.Equal(t, core.AxisX, plane.Direction)
	assert.Equal(t, "3A | XLINE | 0 | OST_CLines", doc.Describe(el))

	el, _ = doc.Element("9A")
	assert.Equal(t, []core.Point{{}, {X: 3}, {X: 3, Y: 4}}, curve(t, el).Points)

	el, _ = doc.Element("5A")
	assert.Equal(t, "SECTION-A", el.(*model.Viewer).SketchPlaneView)
	box, ok := el.BoundingBox()
	require.True(t, ok, "没有块定义时取插入点")
	assert.Equal(t, core.Point{X: 5}, box.Min)
}

func TestDocument_Instance(t *testing.T) {
	doc := open(t)

	el, ok := doc.Element("4A")
	require.True(t, ok)
	door := el.(*model.Instance)

	require.NotNil(t, door.Transform)
	assert.Equal(t, core.Point{X: 5, Y: 5}, door.Transform.Origin)
	assert.InDelta(t, math.Sqrt(3)/2, door.Transform.BasisX.X, delta)
	assert.InDelta(t, 0.5, door.Transform.BasisX.Y, delta)

	// 块内朝向 (0,1) 随块参照旋转 30°
	require.NotNil(t, door.Facing)
	assert.InDelta(t, -0.5, door.Facing.X, delta)
	assert.InDelta(t, math.Sqrt(3)/2, door.Facing.Y, delta)

	box, ok := door.BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 4.75, box.Min.X, delta)
	assert.InDelta(t, 5, box.Min.Y, delta)
	assert.InDelta(t, 5+math.Sqrt(3)/2, box.Max.X, delta)
	assert.InDelta(t, 5.5, box.Max.Y, delta)

	el, _ = doc.Element("7A")
	assert.Nil(t, el.(*model.Instance).Facing)
}

// 镜像插入的块：拉伸方向为 -Z，OCS 转角 30° 对应世界坐标 150°
func TestDocument_MirroredInstance(t *testing.T) {
	data := strings.Join([]string{
		"0", "SECTION", "2", "ENTITIES",
		"0", "LINE", "5", "1", "8", "GRID", "10", "0", "20", "0", "11", "10", "21", "0",
		"0", "INSERT", "5", "2", "8", "0", "2", "DOOR", "10", "3", "20", "4", "50", "30", "230", "-1",
		"0", "ENDSEC", "0", "EOF",
	}, "\n")
	drawing, err := dxf.Load(strings.NewReader(data))
	require.NoError(t, err)
	doc := New(drawing, nil)
	aligner := align.NewAligner(nil)

	el, ok := doc.Element("2")
	require.True(t, ok)
	inst := el.(*model.Instance)
	require.NotNil(t, inst.Transform)
	assert.InDelta(t, -3, inst.Transform.Origin.X, delta)
	assert.InDelta(t, 4, inst.Transform.Origin.Y, delta)
	assert.InDelta(t, -math.Sqrt(3)/2, inst.Transform.BasisX.X, delta)
	assert.InDelta(t, 0.5, inst.Transform.BasisX.Y, delta)

	grid, _ := doc.Element("1")
	result, err := aligner.Align(doc, grid, el)
	require.NoError(t, err)
	assert.Equal(t, "instance", result.Target.Strategy)
	assert.True(t, result.Rotation.CounterClockwise())
	assert.InDelta(t, 30, math.Abs(result.Rotation.Degrees()), 1e-9)
	assert.InDelta(t, -3, result.Rotation.Axis.Origin.X, delta, "绕插入点旋转")

	tx := doc.Begin("对齐")
	require.NoError(t, tx.Rotate("2", *result.Rotation.Axis, result.Rotation.Angle))
	require.NoError(t, tx.Commit())

	el, _ = doc.Element("2")
	result, err = aligner.Align(doc, grid, el)
	require.NoError(t, err)
	assert.True(t, result.Rotation.IsParallel())

	e, _ := doc.Entity("2")
	ins := e.(*entities.Insert)
	assert.InDelta(t, 0, ins.Rotation, 1e-9)
	assert.InDelta(t, 3, ins.InsertionPoint.X, 1e-9)
	assert.InDelta(t, 4, ins.InsertionPoint.Y, 1e-9)
}

func TestDocument_Views(t *testing.T) {
	doc := open(t)

	tests := []struct {
		name   string
		kind   model.ViewKind
		origin core.Point
		right  core.Vector
	}{
		{"section-a", model.ViewSection, core.Point{X: 5}, core.AxisX},
		{"ELEVATION-N", model.ViewElevation, core.Point{Y: 20}, core.Vector{X: -1}},
		{"PLAN-1", model.ViewPlan, core.Point{}, core.AxisX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := doc.View(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.origin, v.Origin)
			assert.InDelta(t, tt.right.X, v.RightDirection.X, delta)
			assert.InDelta(t, tt.right.Y, v.RightDirection.Y, delta)
			assert.InDelta(t, tt.right.Z, v.RightDirection.Z, delta)
		})
	}

	_, ok := doc.View("NOPE")
	assert.False(t, ok)
}

func TestDocument_ElevationMarkers(t *testing.T) {
	doc := open(t)

	markers := doc.ElevationMarkers()
	require.Len(t, markers, 1)
	assert.Equal(t, "7A", markers[0].ElementID)
	assert.Equal(t, [model.MarkerSlots]string{"", "", "ELEVATION-N", ""}, markers[0].Views)
	assert.Equal(t, 2, markers[0].Slot("ELEVATION-N"))
}

func TestDocument_Config(t *testing.T) {
	drawing, err := dxf.Open("testdata/sample.dxf")
	require.NoError(t, err)

	cfg, err := config.Parse([]byte("grid_layers: [WALL]\nlayer_categories: {PIPE: OST_DuctCurves}\n"))
	require.NoError(t, err)
	doc := New(drawing, cfg)

	el, _ := doc.Element("1A")
	assert.IsType(t, &model.CurveElement{}, el, "GRID 不再是轴网图层")
	el, _ = doc.Element("9A")
	assert.IsType(t, &model.Grid{}, el)
	el, _ = doc.Element("2A")
	assert.Equal(t, model.CategoryDuctCurves, el.Category())
}

func TestTransaction_Commit(t *testing.T) {
	doc := open(t)

	tx := doc.Begin("对齐")
	assert.Equal(t, "对齐", tx.Name())
	require.NoError(t, tx.Rotate("2a", core.Line{Direction: core.AxisZ}, math.Pi/4))
	require.NoError(t, tx.Commit())

	el, ok := doc.Element("2A")
	require.True(t, ok)
	c := curve(t, el)
	assert.InDelta(t, 0, c.End().X, delta)
	assert.InDelta(t, 10*math.Sqrt2, c.End().Y, delta)

	assert.ErrorIs(t, tx.Commit(), ErrClosed)
	assert.ErrorIs(t, tx.RollBack(), ErrClosed)
	assert.ErrorIs(t, tx.Rotate("2A", core.Line{Direction: core.AxisZ}, 1), ErrClosed)
}

func TestTransaction_RollBack(t *testing.T) {
	doc := open(t)

	tx := doc.Begin("对齐")
	axis := core.Line{Origin: core.Point{X: 5, Y: 5}, Direction: core.AxisZ}
	require.NoError(t, tx.Rotate("2A", axis, 0.3))
	require.NoError(t, tx.Rotate("2A", axis, 0.4))
	require.NoError(t, tx.Rotate("7A", axis, 0.5))
	require.NoError(t, tx.RollBack())

	e, ok := doc.Entity("2A")
	require.True(t, ok)
	line := e.(*entities.Line)
	assert.Equal(t, core.Point{}, line.Start)
	assert.Equal(t, core.Point{X: 10, Y: 10}, line.End)

	e, _ = doc.Entity("7A")
	marker := e.(*entities.Insert)
	assert.Equal(t, core.Point{Y: 25}, marker.InsertionPoint)
	assert.Zero(t, marker.Rotation)
	assert.Equal(t, "ELEVATION-N", marker.Attributes[2].Text)

	require.Len(t, doc.ElevationMarkers(), 1)
	assert.Equal(t, "7A", doc.ElevationMarkers()[0].ElementID)
}

func TestTransaction_RotateViews(t *testing.T) {
	doc := open(t)

	// 立面标记带着它的立面一起转
	tx := doc.Begin("对齐")
	require.NoError(t, tx.Rotate("7A", core.Line{Origin: core.Point{Y: 25}, Direction: core.AxisZ}, math.Pi/2))
	require.NoError(t, tx.Commit())

	v, ok := doc.View("ELEVATION-N")
	require.True(t, ok)
	assert.InDelta(t, 5, v.Origin.X, delta)
	assert.InDelta(t, 25, v.Origin.Y, delta)
	assert.InDelta(t, 0, v.RightDirection.X, delta)
	assert.InDelta(t, -1, v.RightDirection.Y, delta)

	// 回滚时剖面视图也要恢复
	tx = doc.Begin("对齐")
	require.NoError(t, tx.Rotate("5A", core.Line{Origin: core.Point{X: 5}, Direction: core.AxisZ}, math.Pi/2))
	v, _ = doc.View("SECTION-A")
	assert.InDelta(t, 1, v.RightDirection.X, delta, "提交前查询结果不变")
	require.NoError(t, tx.RollBack())

	v, _ = doc.View("SECTION-A")
	assert.Equal(t, core.Point{X: 5}, v.Origin)
	assert.InDelta(t, 1, v.RightDirection.X, delta)
	assert.InDelta(t, 0, v.RightDirection.Y, delta)
	assert.Equal(t, core.Vector{Y: -1}, doc.dxf.Views["SECTION-A"].Direction)
}

func TestTransaction_Errors(t *testing.T) {
	doc := open(t)
	axis := core.Line{Direction: core.AxisZ}

	tx := doc.Begin("对齐")
	err := tx.Rotate("8A", axis, 0.5)
	assert.True(t, errors.Is(err, ErrLocked), "锁定图层上的图元不能旋转")

	err = tx.Rotate("ZZ", axis, 0.5)
	assert.ErrorIs(t, err, ErrNotFound)

	err = tx.Rotate("1A", core.Line{}, 0.5)
	assert.ErrorIs(t, err, ErrNotRotatable)

	assert.NoError(t, tx.Rotate("1A", axis, 0), "零角度不修改")
	require.NoError(t, tx.RollBack())

	e, _ := doc.Entity("8A")
	assert.Equal(t, core.Point{X: 5, Y: 1}, e.(*entities.Line).End)
}

func TestParseVector(t *testing.T) {
	tests := []struct {
		in   string
		want core.Vector
		ok   bool
	}{
		{"0,1", core.Vector{Y: 1}, true},
		{" 1, 2, 3 ", core.Vector{X: 1, Y: 2, Z: 3}, true},
		{"", core.Vector{}, false},
		{"1", core.Vector{}, false},
		{"1,2,3,4", core.Vector{}, false},
		{"a,b", core.Vector{}, false},
		{"NaN,1", core.Vector{}, false},
	}
	for _, tt := range tests {
		v, ok := parseVector(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, v, tt.in)
	}
}
