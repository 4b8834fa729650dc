package host

import (
	"errors"
	"fmt"

	"github.com/zooyer/parallel/core"
	"github.com/zooyer/parallel/dxf"
	"github.com/zooyer/parallel/entities"
)

var (
	ErrNotFound     = errors.New("element not found")
	ErrLocked       = errors.New("element is on a locked layer")
	ErrNotRotatable = errors.New("element cannot be rotated")
	ErrClosed       = errors.New("transaction is closed")
)

// Transaction 修改图纸几何的事务，提交前的修改可以整体回滚
type Transaction struct {
	doc    *Document
	name   string
	saved  map[int]entities.Entity // dxf.Entities 下标 -> 修改前的副本
	views  map[string]dxf.View     // 视图名 -> 修改前的副本
	closed bool
}

// Begin 开始一个事务，同一时间只应存在一个
func (d *Document) Begin(name string) *Transaction {
	return &Transaction{
		doc:   d,
		name:  name,
		saved: make(map[int]entities.Entity),
		views: make(map[string]dxf.View),
	}
}

func (t *Transaction) Name() string {
	return t.name
}

// Rotate 将图元绕 axis 旋转 angle 弧度，图元关联的视图一起旋转
func (t *Transaction) Rotate(id string, axis core.Line, angle float64) error {
	if t.closed {
		return ErrClosed
	}
	entity, ok := t.doc.Entity(id)
	if !ok {
		return fmt.Errorf("rotate %s: %w", id, ErrNotFound)
	}
	if t.doc.dxf.LayerLocked(entity.Layer()) {
		return fmt.Errorf("rotate %s on layer %s: %w", id, entity.Layer(), ErrLocked)
	}
	r, ok := entity.(entities.Rotatable)
	if !ok {
		return fmt.Errorf("rotate %s (%s): %w", id, entity.Type(), ErrNotRotatable)
	}
	if _, ok := core.Normalize(axis.Direction); !ok {
		return fmt.Errorf("rotate %s: %w: degenerate axis", id, ErrNotRotatable)
	}
	if angle == 0 {
		return nil
	}

	i := t.doc.index[normalizeID(id)]
	if _, ok := t.saved[i]; !ok {
		t.saved[i] = entity.Clone()
	}
	r.Rotate(axis, angle)
	for _, name := range t.doc.linkedViews(entity) {
		t.rotateView(name, axis, angle)
	}
	return nil
}

// rotateView 视图的目标点和观察方向跟随图元旋转
func (t *Transaction) rotateView(name string, axis core.Line, angle float64) {
	view, ok := t.doc.dxf.Views[name]
	if !ok || view == nil {
		return
	}
	if _, ok := t.views[name]; !ok {
		t.views[name] = *view
	}
	view.Target = axis.Rotate(view.Target, angle)
	view.Direction = axis.RotateVector(view.Direction, angle)
}

// Commit 保留修改并刷新图元
func (t *Transaction) Commit() error {
	if t.closed {
		return ErrClosed
	}
	t.closed = true
	if len(t.saved) > 0 {
		t.doc.refresh()
	}
	return nil
}

// RollBack 恢复事务开始前的几何
func (t *Transaction) RollBack() error {
	if t.closed {
		return ErrClosed
	}
	t.closed = true
	for i, original := range t.saved {
		t.doc.dxf.Entities[i] = original
	}
	for name, original := range t.views {
		*t.doc.dxf.Views[name] = original
	}
	if len(t.saved) > 0 {
		t.doc.refresh()
	}
	return nil
}
