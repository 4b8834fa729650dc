// Package host 把 DXF 图纸适配成图元模型：
// 负责把实体归类成图元、回答视图与立面标记查询，并在事务中执行旋转。
package host

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/zooyer/parallel/config"
	"github.com/zooyer/parallel/core"
	"github.com/zooyer/parallel/dxf"
	"github.com/zooyer/parallel/entities"
	"github.com/zooyer/parallel/model"
	"github.com/zooyer/parallel/utils"
)

// 编译期检查
var _ model.Document = (*Document)(nil)

type Document struct {
	dxf *dxf.Document
	cfg *config.Config

	elements []model.Element
	byID     map[string]model.Element
	index    map[string]int // 图元 ID -> dxf.Entities 下标
	views    map[string]model.View
	markers  []model.ElevationMarker
}

// New cfg 为 nil 时使用内置配置
func New(doc *dxf.Document, cfg *config.Config) *Document {
	if cfg == nil {
		cfg = config.Default()
	}
	d := &Document{dxf: doc, cfg: cfg}
	d.refresh()
	return d
}

// refresh 重新归类所有实体，几何被修改后需要调用
func (d *Document) refresh() {
	d.elements = nil
	d.byID = make(map[string]model.Element)
	d.index = make(map[string]int)
	d.views = make(map[string]model.View)
	d.markers = nil

	for name, v := range d.dxf.Views {
		d.views[name] = model.View{
			Name:           name,
			Kind:           d.cfg.ViewKind(name),
			Origin:         v.Target,
			RightDirection: rightDirection(v.Direction),
		}
	}

	for i, e := range d.dxf.Entities {
		id := e.ID()
		if id == "" {
			// 没有句柄的实体按顺序编号
			id = "#" + strconv.Itoa(i+1)
		}
		id = strings.ToUpper(id)
		el, ok := d.classify(id, e)
		if !ok {
			continue
		}
		d.elements = append(d.elements, el)
		d.byID[id] = el
		d.index[id] = i

		if ins, ok := e.(*entities.Insert); ok && d.isMarker(ins) {
			d.markers = append(d.markers, d.marker(id, ins))
		}
	}
}

// Elements 按图纸顺序返回所有图元
func (d *Document) Elements() []model.Element {
	return d.elements
}

func (d *Document) Element(id string) (model.Element, bool) {
	el, ok := d.byID[normalizeID(id)]
	return el, ok
}

// Entity 图元对应的 DXF 实体
func (d *Document) Entity(id string) (entities.Entity, bool) {
	i, ok := d.index[normalizeID(id)]
	if !ok {
		return nil, false
	}
	return d.dxf.Entities[i], true
}

func (d *Document) View(name string) (model.View, bool) {
	v, ok := d.views[strings.ToUpper(strings.TrimSpace(name))]
	return v, ok
}

func (d *Document) ElevationMarkers() []model.ElevationMarker {
	return d.markers
}

func (d *Document) classify(id string, e entities.Entity) (model.Element, bool) {
	base := model.Base{
		Handle: id,
		Type:   e.Type(),
		Cat:    d.cfg.Category(e.Layer()),
	}
	if box := utils.GetEntityBBoxWCS(d.dxf, e); core.ValidBBox(box) {
		base.Box = &box
	}

	switch e := e.(type) {
	case *entities.XLine:
		base.Cat = model.CategoryReferencePlane
		return &model.ReferencePlane{Base: base, Origin: e.Base, Direction: e.Direction}, true
	case *entities.Line:
		return d.curveElement(base, e.Layer(), model.NewLine(e.Start, e.End)), true
	case *entities.LWPolyline:
		points := append([]core.Point(nil), e.Vertices...)
		return d.curveElement(base, e.Layer(), model.Curve{Points: points}), true
	case *entities.Insert:
		if utils.HasAttr(e, d.cfg.Attributes.Viewer) {
			base.Cat = model.CategoryViewers
			view := strings.ToUpper(strings.TrimSpace(utils.GetAttr(e, d.cfg.Attributes.Viewer)))
			return &model.Viewer{Base: base, SketchPlaneView: view}, true
		}
		if d.isMarker(e) {
			base.Cat = model.CategoryElevationMarks
		}
		tf := utils.InsertAffine(e)
		inst := &model.Instance{
			Base: base,
			Transform: &model.Transform{
				Origin: tf.Origin,
				BasisX: tf.X,
				BasisY: tf.Y,
				BasisZ: tf.Z,
			},
		}
		if facing, ok := parseVector(utils.GetAttr(e, d.cfg.Attributes.Facing)); ok {
			// 朝向属性是块内坐标，转换到世界坐标
			world := tf.Vector(facing)
			inst.Facing = &world
		}
		return inst, true
	}
	return nil, false
}

func (d *Document) curveElement(base model.Base, layer string, curve model.Curve) model.Element {
	if d.cfg.IsGridLayer(layer) {
		base.Cat = model.CategoryGrids
		return &model.Grid{Base: base, Curve: curve}
	}
	return &model.CurveElement{Base: base, Curve: curve}
}

func (d *Document) isMarker(ins *entities.Insert) bool {
	return d.cfg.Blocks.ElevationMarker != "" &&
		strings.ToUpper(ins.BlockName) == d.cfg.Blocks.ElevationMarker
}

func (d *Document) marker(id string, ins *entities.Insert) model.ElevationMarker {
	m := model.ElevationMarker{ElementID: id}
	for i, tag := range d.cfg.Attributes.MarkerSlots {
		if i >= model.MarkerSlots {
			break
		}
		m.Views[i] = strings.ToUpper(strings.TrimSpace(utils.GetAttr(ins, tag)))
	}
	return m
}

// linkedViews 随图元一起旋转的视图：剖面符号对应的视图，立面标记上的各个立面
func (d *Document) linkedViews(e entities.Entity) []string {
	ins, ok := e.(*entities.Insert)
	if !ok {
		return nil
	}
	var names []string
	if utils.HasAttr(ins, d.cfg.Attributes.Viewer) {
		names = append(names, strings.ToUpper(strings.TrimSpace(utils.GetAttr(ins, d.cfg.Attributes.Viewer))))
	}
	if d.isMarker(ins) {
		for _, name := range d.marker("", ins).Views {
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// rightDirection 视图右方向。dir 是从目标点指向观察者的方向，
// 视线方向为 -dir；竖直视线（平面视图）取 X 轴
func rightDirection(dir core.Vector) core.Vector {
	look, ok := core.Normalize(r3.Scale(-1, dir))
	if !ok || math.Abs(look.Z) > 1-1e-9 {
		return core.AxisX
	}
	right, ok := core.Normalize(r3.Cross(look, core.AxisZ))
	if !ok {
		return core.AxisX
	}
	return right
}

// parseVector 解析 "x,y" 或 "x,y,z"
func parseVector(s string) (core.Vector, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Vector{}, false
	}
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return core.Vector{}, false
	}
	var f [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return core.Vector{}, false
		}
		f[i] = v
	}
	v := core.Vector{X: f[0], Y: f[1], Z: f[2]}
	if !core.Finite(v) {
		return core.Vector{}, false
	}
	return v, true
}

func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Describe 图元的一行描述，用于选择列表
func (d *Document) Describe(el model.Element) string {
	layer := ""
	if e, ok := d.Entity(el.ID()); ok {
		layer = e.Layer()
	}
	return fmt.Sprintf("%s | %s | %s | %s", el.ID(), el.TypeName(), layer, el.Category())
}
