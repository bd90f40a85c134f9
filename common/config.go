package common

import (
	"errors"
	"os"

	"gopkg.in/yaml.v2"
)

// HTTPConfig is the server bind address, the only HTTP-layer configuration
// item the core consults.
type HTTPConfig struct {
	IP   string `yaml:"ip"`
	Port uint16 `yaml:"port"`
}

// ReferenceVoiceConfig names the on-disk reference audio and its matching
// transcript, per the "reference voice as configuration" design note: no
// hardcoded paths, a recognized set of tuning keys.
type ReferenceVoiceConfig struct {
	AudioPath  string `yaml:"audio_path"`
	Transcript string `yaml:"transcript"`
}

// ModelPaths names every on-disk asset the acoustic and linguistic
// back-ends load at startup.
type ModelPaths struct {
	ContentEncoder   string `yaml:"content_encoder_onnx"`
	LatentQuantizer  string `yaml:"latent_quantizer_onnx"`
	FirstStageAR     string `yaml:"first_stage_decoder_onnx"`
	StageDecoder     string `yaml:"stage_decoder_onnx"`
	Vocoder          string `yaml:"vocoder_onnx"`
	ContextualBert   string `yaml:"contextual_bert_onnx"`
	BertTokenizer    string `yaml:"bert_tokenizer_json"`
	EnglishDict      string `yaml:"eng_dict_json"`
	RepMap           string `yaml:"rep_map_json"`
	ZhNormDict       string `yaml:"zh_dict_json"`
	PhrasesDict      string `yaml:"phrases_dict_json"`
	PinyinDict       string `yaml:"pinyin_dict_json"`
	G2PFallbackModel string `yaml:"g2p_fallback_npz"`
}

// Config is the top-level process configuration, loaded once at startup
// from a single YAML file path (the only required process input).
type Config struct {
	HTTP           HTTPConfig           `yaml:"http"`
	ReferenceVoice ReferenceVoiceConfig `yaml:"reference_voice"`
	Models         ModelPaths           `yaml:"models"`
	// GoJiebaDictDir is parsed from the config file but not read: gojieba's
	// dictionary files always go to xdg.DataHome/sovits-engine/gojieba/dict.
	GoJiebaDictDir string `yaml:"gojieba_dict_dir"`
}

// LoadConfig reads and parses a YAML configuration file. A missing or
// malformed file is a ConfigLoadError: fatal at startup.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, NewError(KindConfigLoad, path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, NewError(KindConfigLoad, path, err)
	}
	if cfg.ReferenceVoice.AudioPath == "" {
		return nil, NewError(KindConfigLoad, path, errMissingReferenceAudio)
	}
	return &cfg, nil
}

var errMissingReferenceAudio = errors.New("reference_voice.audio_path is required")
