// Package config 读取图层、块、属性与图元类型之间的映射配置
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zooyer/parallel/model"
)

//go:embed default.yaml
var defaultYAML []byte

// FileName 图纸目录下的配置文件名
const FileName = "parallel.yaml"

type Views struct {
	SectionPrefix   string `yaml:"section_prefix"`
	ElevationPrefix string `yaml:"elevation_prefix"`
}

type Blocks struct {
	ElevationMarker string `yaml:"elevation_marker"`
}

type Attributes struct {
	Viewer      string   `yaml:"viewer"`
	Facing      string   `yaml:"facing"`
	MarkerSlots []string `yaml:"marker_slots"`
}

type Config struct {
	GridLayers      []string          `yaml:"grid_layers"`
	LayerCategories map[string]string `yaml:"layer_categories"`
	MEPCategories   []string          `yaml:"mep_categories"`
	Views           Views             `yaml:"views"`
	Blocks          Blocks            `yaml:"blocks"`
	Attributes      Attributes        `yaml:"attributes"`
}

// Default 内置配置
func Default() *Config {
	cfg, err := parse(defaultYAML, &Config{})
	if err != nil {
		panic(fmt.Sprintf("config: default.yaml: %v", err))
	}
	return cfg
}

// Parse 在内置配置上覆盖 YAML。列表整体替换，layer_categories 逐项合并
func Parse(data []byte) (*Config, error) {
	return parse(data, Default())
}

func parse(data []byte, cfg *Config) (*Config, error) {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load 读取配置文件，文件不存在时返回内置配置
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// normalize 图层名、块名、属性标签统一大写
func (c *Config) normalize() {
	for i, l := range c.GridLayers {
		c.GridLayers[i] = upper(l)
	}
	categories := make(map[string]string, len(c.LayerCategories))
	for layer, cat := range c.LayerCategories {
		categories[upper(layer)] = strings.TrimSpace(cat)
	}
	c.LayerCategories = categories
	c.Views.SectionPrefix = upper(c.Views.SectionPrefix)
	c.Views.ElevationPrefix = upper(c.Views.ElevationPrefix)
	c.Blocks.ElevationMarker = upper(c.Blocks.ElevationMarker)
	c.Attributes.Viewer = upper(c.Attributes.Viewer)
	c.Attributes.Facing = upper(c.Attributes.Facing)
	for i, s := range c.Attributes.MarkerSlots {
		c.Attributes.MarkerSlots[i] = upper(s)
	}
}

func (c *Config) Validate() error {
	if c.Views.SectionPrefix == "" || c.Views.ElevationPrefix == "" {
		return errors.New("views: section_prefix and elevation_prefix are required")
	}
	if c.Views.SectionPrefix == c.Views.ElevationPrefix {
		return errors.New("views: section_prefix and elevation_prefix must differ")
	}
	if c.Attributes.Viewer == "" {
		return errors.New("attributes: viewer is required")
	}
	if n := len(c.Attributes.MarkerSlots); n == 0 || n > model.MarkerSlots {
		return fmt.Errorf("attributes: marker_slots must have 1 to %d tags, got %d", model.MarkerSlots, n)
	}
	return nil
}

// IsGridLayer 判断图层是否为轴网图层
func (c *Config) IsGridLayer(layer string) bool {
	layer = upper(layer)
	for _, l := range c.GridLayers {
		if l == layer {
			return true
		}
	}
	return false
}

// Category 图层对应的类别，未配置时就是图层名
func (c *Config) Category(layer string) model.Category {
	if cat, ok := c.LayerCategories[upper(layer)]; ok {
		return model.Category(cat)
	}
	return model.Category(upper(layer))
}

// MEP 机电类别集合
func (c *Config) MEP() model.CategorySet {
	categories := make([]model.Category, 0, len(c.MEPCategories))
	for _, cat := range c.MEPCategories {
		categories = append(categories, model.Category(cat))
	}
	return model.NewCategorySet(categories...)
}

// ViewKind 按视图名称前缀区分视图类型
func (c *Config) ViewKind(name string) model.ViewKind {
	name = upper(name)
	switch {
	case strings.HasPrefix(name, c.Views.SectionPrefix):
		return model.ViewSection
	case strings.HasPrefix(name, c.Views.ElevationPrefix):
		return model.ViewElevation
	default:
		return model.ViewPlan
	}
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
