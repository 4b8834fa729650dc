package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zooyer/parallel/model"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.IsGridLayer("grid"))
	assert.True(t, cfg.IsGridLayer(" Axis "))
	assert.False(t, cfg.IsGridLayer("PIPE"))

	assert.Equal(t, model.CategoryPipeCurves, cfg.Category("pipe"))
	assert.Equal(t, model.CategoryCableTrayFitting, cfg.Category("CABLETRAY-FITTING"))
	assert.Equal(t, model.Category("WALL"), cfg.Category("wall"))

	assert.Equal(t, model.DefaultMEPCategories(), cfg.MEP())

	assert.Equal(t, model.ViewSection, cfg.ViewKind("section-a"))
	assert.Equal(t, model.ViewElevation, cfg.ViewKind("ELEVATION-N"))
	assert.Equal(t, model.ViewPlan, cfg.ViewKind("PLAN-1"))

	assert.Equal(t, "ELEVMARKER", cfg.Blocks.ElevationMarker)
	assert.Equal(t, "VIEW", cfg.Attributes.Viewer)
	assert.Equal(t, []string{"VIEW1", "VIEW2", "VIEW3", "VIEW4"}, cfg.Attributes.MarkerSlots)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
grid_layers: [axes]
layer_categories:
  sprinkler: OST_Sprinklers
mep_categories: [OST_Sprinklers]
views:
  section_prefix: sec
`))
	require.NoError(t, err)

	// 列表整体替换
	assert.Equal(t, []string{"AXES"}, cfg.GridLayers)
	assert.False(t, cfg.IsGridLayer("GRID"))
	assert.Equal(t, model.NewCategorySet("OST_Sprinklers"), cfg.MEP())

	// 映射逐项合并
	assert.Equal(t, model.Category("OST_Sprinklers"), cfg.Category("SPRINKLER"))
	assert.Equal(t, model.CategoryPipeCurves, cfg.Category("PIPE"))

	// 未给出的字段保持默认
	assert.Equal(t, "SEC", cfg.Views.SectionPrefix)
	assert.Equal(t, "ELEVATION", cfg.Views.ElevationPrefix)
	assert.Equal(t, model.ViewSection, cfg.ViewKind("SEC-1"))

	// 不影响内置配置
	assert.Equal(t, "SECTION", Default().Views.SectionPrefix)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "grid_layers: [GRID"},
		{"empty prefix", "views: {section_prefix: ''}"},
		{"same prefix", "views: {section_prefix: VIEW, elevation_prefix: view}"},
		{"no viewer", "attributes: {viewer: ''}"},
		{"no slots", "attributes: {marker_slots: []}"},
		{"too many slots", "attributes: {marker_slots: [A, B, C, D, E]}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	cfg, err := Parse(nil)
	require.NoError(t, err, "空配置等于内置配置")
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err, "配置文件不存在时使用内置配置")
	assert.Equal(t, Default(), cfg)

	filename := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(filename, []byte("blocks: {elevation_marker: elev}\n"), 0644))
	cfg, err = Load(filename)
	require.NoError(t, err)
	assert.Equal(t, "ELEV", cfg.Blocks.ElevationMarker)

	require.NoError(t, os.WriteFile(filename, []byte("attributes: {viewer: ''}\n"), 0644))
	_, err = Load(filename)
	assert.ErrorContains(t, err, FileName)
}
