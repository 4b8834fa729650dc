package utils

import (
	"strings"

	"github.com/zooyer/parallel/entities"
)

// GetAttrs 属性标签统一转成大写
func GetAttrs(ins *entities.Insert) map[string]string {
	var attrs = make(map[string]string)
	for _, a := range ins.Attributes {
		attrs[strings.ToUpper(a.Tag)] = a.Text
	}

	return attrs
}

func GetAttr(ins *entities.Insert, key string) string {
	return GetAttrs(ins)[strings.ToUpper(key)]
}

// HasAttr 区分属性不存在和属性值为空
func HasAttr(ins *entities.Insert, key string) bool {
	_, ok := GetAttrs(ins)[strings.ToUpper(key)]
	return ok
}
