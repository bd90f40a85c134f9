package dict

import (
	"encoding/json"
	"os"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/common"
)

// LoadCharDict reads the single-character pinyin table from a JSON file
// shaped as {"char": "pinyin1,pinyin2"}.
func LoadCharDict(path string) (CharDict, error) {
	var d CharDict
	if err := loadJSON(path, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadPhraseDict reads the phrase pinyin table from a JSON file shaped as
// {"phrase": [["yin2"], ["hang2","xing2"]]}.
func LoadPhraseDict(path string) (PhraseDict, error) {
	var d PhraseDict
	if err := loadJSON(path, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadRepMap reads the punctuation replacement table from a JSON file
// shaped as {"，": ","}.
func LoadRepMap(path string) (ReplacementMap, error) {
	var d ReplacementMap
	if err := loadJSON(path, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadEnglishDict reads the ARPA pronunciation dictionary from a JSON file
// shaped as {"WORD": [["HH","AH0","L","OW1"]]}.
func LoadEnglishDict(path string) (EnglishDict, error) {
	var d EnglishDict
	if err := loadJSON(path, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadZhNormDict reads the traditional-to-simplified map and the special
// symbol replacement table the Chinese normalizer's final pass consumes.
func LoadZhNormDict(path string) (ZhNormDict, error) {
	var d ZhNormDict
	if err := loadJSON(path, &d); err != nil {
		return ZhNormDict{}, err
	}
	return d, nil
}

// LoadAll loads every JSON dictionary named by a ModelPaths config block.
// Any failure is a fatal ConfigLoadError.
func LoadAll(paths common.ModelPaths) (*Dictionaries, error) {
	chars, err := LoadCharDict(paths.PinyinDict)
	if err != nil {
		return nil, err
	}
	phrases, err := LoadPhraseDict(paths.PhrasesDict)
	if err != nil {
		return nil, err
	}
	rep, err := LoadRepMap(paths.RepMap)
	if err != nil {
		return nil, err
	}
	eng, err := LoadEnglishDict(paths.EnglishDict)
	if err != nil {
		return nil, err
	}
	zhNorm, err := LoadZhNormDict(paths.ZhNormDict)
	if err != nil {
		return nil, err
	}
	return &Dictionaries{
		CharDict:    chars,
		PhraseDict:  phrases,
		RepMap:      rep,
		EnglishDict: eng,
		ZhNorm:      zhNorm,
	}, nil
}

func loadJSON(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return common.NewError(common.KindConfigLoad, path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return common.NewError(common.KindConfigLoad, path, err)
	}
	return nil
}
