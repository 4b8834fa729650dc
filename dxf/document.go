package dxf

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zooyer/parallel/core"
	"github.com/zooyer/parallel/entities"
)

// Layer 图层表记录
type Layer struct {
	Name   string
	Flags  int  // 组码 70
	Locked bool // 组码 70 的第 3 位(值 4)
}

// View 视图表记录
type View struct {
	Name      string
	Target    core.Point  // 组码 12/22/32，视图目标点 (WCS)
	Direction core.Vector // 组码 11/21/31，从目标点指向观察者的方向 (WCS)
}

type Block struct {
	Name     string
	Entities []entities.Entity
}

type Document struct {
	Blocks   map[string]*Block
	Entities []entities.Entity
	Layers   map[string]*Layer
	Views    map[string]*View
}

// LayerLocked 图层未定义时视为未锁定
func (d *Document) LayerLocked(name string) bool {
	if layer, ok := d.Layers[strings.ToUpper(name)]; ok {
		return layer.Locked
	}
	return false
}

func (d *Document) parseBlocks(scanner *core.Scanner) error {
	var currentBlock *Block
	if !scanner.Next() {
		return nil
	}
	for {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "ENDSEC" {
			break
		}
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "BLOCK" {
			currentBlock = &Block{Entities: []entities.Entity{}}
			for scanner.Next() {
				if scanner.LastTag.Code == 2 {
					currentBlock.Name = strings.ToUpper(scanner.LastTag.Value)
					break
				}
				if scanner.LastTag.Code == 0 {
					break
				}
			}
			d.Blocks[currentBlock.Name] = currentBlock
			if scanner.LastTag.Code == 0 {
				continue
			}
		} else if currentBlock != nil && tag.Code == 0 &&
			tag.Value != "BLOCK" && tag.Value != "ENDBLK" {
			ent, positioned, err := parseEntity(scanner)
			if err != nil {
				return fmt.Errorf("block %s: %w", currentBlock.Name, err)
			}
			if ent != nil {
				currentBlock.Entities = append(currentBlock.Entities, ent)
				if positioned {
					continue
				}
			}
		}
		if !scanner.Next() {
			break
		}
	}
	return nil
}

func (d *Document) parseEntities(scanner *core.Scanner) error {
	for {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "ENDSEC" {
			break
		}
		if tag.Code == 0 {
			ent, positioned, err := parseEntity(scanner)
			if err != nil {
				return err
			}
			if ent != nil {
				d.Entities = append(d.Entities, ent)
				if positioned {
					continue
				}
			}
		}
		if !scanner.Next() {
			break
		}
	}
	return nil
}

// parseEntity 解析当前 0 组码开始的实体，未注册的类型返回 nil。
// positioned 为 true 时扫描器已经停在下一个 0 组码上，调用方不能再 Next
func parseEntity(scanner *core.Scanner) (ent entities.Entity, positioned bool, err error) {
	if ent = entities.CreateEntity(scanner.LastTag.Value); ent == nil {
		return nil, false, nil
	}
	count := scanner.Count()
	if err = ent.Parse(scanner); err != nil {
		return nil, false, fmt.Errorf("parse %s %s: %w", ent.Type(), ent.ID(), err)
	}
	// 没有前进或者停在非 0 组码，说明读到了文件尾
	return ent, scanner.Count() != count && scanner.LastTag.Code == 0, nil
}

func (d *Document) parseTables(scanner *core.Scanner) {
	for scanner.Next() {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "ENDSEC" {
			break
		}
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "TABLE" {
			scanner.Next()
			tableName := strings.ToUpper(scanner.LastTag.Value)
			switch tableName {
			case "LAYER":
				d.parseTable(scanner, "LAYER", d.parseLayer)
			case "VIEW":
				d.parseTable(scanner, "VIEW", d.parseView)
			}
		}
	}
}

// parseTable 遍历表中的每条记录，record 负责读完一条记录并停在下一个 0 组码上
func (d *Document) parseTable(scanner *core.Scanner, name string, record func(*core.Scanner)) {
	for {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "ENDTAB" {
			break
		}

		if tag.Code == 0 && strings.ToUpper(tag.Value) == name {
			record(scanner)
			if scanner.LastTag.Code == 0 {
				continue
			}
		}

		if !scanner.Next() {
			break
		}
	}
}

func (d *Document) parseLayer(scanner *core.Scanner) {
	layer := &Layer{}
	for scanner.Next() {
		t := scanner.LastTag
		if t.Code == 0 {
			break
		}
		switch t.Code {
		case 2: // 图层名称
			layer.Name = strings.ToUpper(t.AsString())
		case 70: // 标志位，4 表示锁定
			layer.Flags = t.AsInt()
			layer.Locked = layer.Flags&4 != 0
		}
	}
	if layer.Name != "" {
		d.Layers[layer.Name] = layer
	}
}

func (d *Document) parseView(scanner *core.Scanner) {
	view := &View{Direction: core.AxisZ}
	for scanner.Next() {
		t := scanner.LastTag
		if t.Code == 0 {
			break
		}
		switch t.Code {
		case 2: // 视图名称
			view.Name = strings.ToUpper(t.AsString())
		case 11:
			view.Direction.X = t.AsFloat()
		case 21:
			view.Direction.Y = t.AsFloat()
		case 31:
			view.Direction.Z = t.AsFloat()
		case 12:
			view.Target.X = t.AsFloat()
		case 22:
			view.Target.Y = t.AsFloat()
		case 32:
			view.Target.Z = t.AsFloat()
		}
	}
	if view.Name != "" {
		d.Views[view.Name] = view
	}
}

func Open(filename string) (doc *Document, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return
	}

	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}()

	return Load(file)
}

func Load(reader io.Reader) (doc *Document, err error) {
	var (
		scanner  = core.NewScanner(reader)
		document = &Document{
			Blocks:   make(map[string]*Block),
			Entities: make([]entities.Entity, 0, 1024),
			Layers:   make(map[string]*Layer),
			Views:    make(map[string]*View),
		}
	)

	for scanner.Next() {
		tag := scanner.LastTag
		if tag.Code == 0 && strings.ToUpper(tag.Value) == "SECTION" {
			if !scanner.Next() {
				break
			}
			sectionName := strings.ToUpper(scanner.LastTag.Value)
			switch sectionName {
			case "TABLES":
				document.parseTables(scanner)
			case "BLOCKS":
				err = document.parseBlocks(scanner)
			case "ENTITIES":
				err = document.parseEntities(scanner)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	return document, scanner.Err()
}
