package dict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadCharDict(t *testing.T) {
	p := writeTemp(t, "zh_dict.json", `{"行":"xing2,hang2"}`)
	d, err := LoadCharDict(p)
	require.NoError(t, err)
	assert.Equal(t, "xing2,hang2", d["行"])
}

func TestLoadPhraseDict(t *testing.T) {
	p := writeTemp(t, "phrases.json", `{"银行":[["yin2"],["hang2","xing2"]]}`)
	d, err := LoadPhraseDict(p)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"yin2"}, {"hang2", "xing2"}}, d["银行"])
}

func TestLoadRepMap(t *testing.T) {
	p := writeTemp(t, "rep_map.json", `{"，":",", "。":"."}`)
	d, err := LoadRepMap(p)
	require.NoError(t, err)
	assert.Equal(t, ",", d["，"])
}

func TestLoadEnglishDict(t *testing.T) {
	p := writeTemp(t, "eng_dict.json", `{"HELLO":[["HH","AH0","L","OW1"]]}`)
	d, err := LoadEnglishDict(p)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"HH", "AH0", "L", "OW1"}}, d["HELLO"])
}

func TestLoadZhNormDict(t *testing.T) {
	p := writeTemp(t, "zh_dict.json", `{"t2s_mapping":{"traditional":"漢","simplified":"汉"},"special_symbol_mapping":{"“":",","”":","}}`)
	d, err := LoadZhNormDict(p)
	require.NoError(t, err)
	assert.Equal(t, "漢", d.T2SMapping.Traditional)
	assert.Equal(t, "汉", d.T2SMapping.Simplified)
	assert.Equal(t, ",", d.SpecialSymbolMapping["“"])
}

func TestLoadCharDictMissingFile(t *testing.T) {
	_, err := LoadCharDict(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadCharDictMalformed(t *testing.T) {
	p := writeTemp(t, "bad.json", `{not json`)
	_, err := LoadCharDict(p)
	assert.Error(t, err)
}
