package zhnorm

import (
	"regexp"
	"sort"
)

var reTemperature = regexp.MustCompile(`(-?)(\d+(\.\d+)?)(°C|℃|度|摄氏度)`)

var measureDict = map[string]string{
	"cm2": "平方厘米", "cm²": "平方厘米", "cm3": "立方厘米", "cm³": "立方厘米",
	"cm": "厘米", "m2": "平方米", "m²": "平方米", "m³": "立方米",
	"m3": "立方米", "ml": "毫升", "m": "米", "mm": "毫米",
	"kg": "千克", "g": "克",
	"s": "秒", "ds": "毫秒",
	"db": "分贝",
	"km": "千米",
	"m/s": "米每秒", "km/s": "千米每秒", "km/h": "千米每小时", "mm/s": "毫米每秒",
}

var measureKeys []string

func init() {
	measureKeys = make([]string, 0, len(measureDict))
	for k := range measureDict {
		measureKeys = append(measureKeys, k)
	}
	sort.Slice(measureKeys, func(i, j int) bool { return len(measureKeys[i]) > len(measureKeys[j]) })
}

// NormalizeQuantifiers verbalizes measurement units first (longest unit
// token wins ties against shorter prefixes like "m" vs "mm"), then
// temperatures.
func NormalizeQuantifiers(s string) string {
	s = ReplaceMeasure(s)
	s = replaceTemperature(s)
	return s
}

func replaceTemperature(s string) string {
	return replaceAllSubmatchFunc(reTemperature, s, func(g []string) string {
		sign := ""
		if g[1] != "" {
			sign = "零下"
		}
		temperature := num2str(g[2], false)
		unit := "度"
		if g[4] == "摄氏度" {
			unit = "摄氏度"
		}
		return sign + temperature + unit
	})
}

// ReplaceMeasure verbalizes a number immediately followed by a known
// measurement-unit token, trying longer unit spellings first.
func ReplaceMeasure(s string) string {
	for _, key := range measureKeys {
		re := regexp.MustCompile(`(\d+(\.\d+)?)(\s*)` + regexp.QuoteMeta(key))
		s = replaceAllSubmatchFunc(re, s, func(g []string) string {
			return num2str(g[1], false) + measureDict[key]
		})
	}
	return s
}
