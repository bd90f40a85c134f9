package chinese

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/yanyiwu/gojieba"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/tonesandhi"
)

// jiebaDictFiles lists the dictionary assets gojieba needs, downloaded once
// into an XDG data directory on first use -- the same set and source the
// teacher's gojieba provider fetches.
var jiebaDictFiles = []string{
	"jieba.dict.utf8", "hmm_model.utf8", "user.dict.utf8", "idf.utf8", "stop_words.utf8",
}

const jiebaDictBaseURL = "https://raw.githubusercontent.com/yanyiwu/gojieba/v1.4.6/deps/cppjieba/dict/"

// Jieba wraps gojieba's segmenter, exposing the two call shapes the
// Chinese front-end needs: POS-tagged cut and search-mode cut (the latter
// satisfying tonesandhi.Cutter for split_word's re-segmentation).
type Jieba struct {
	inner *gojieba.Jieba
}

var _ tonesandhi.Cutter = (*Jieba)(nil)

// NewJieba downloads (if missing) gojieba's dictionary files to the user's
// XDG data directory and constructs the segmenter.
func NewJieba(ctx context.Context) (*Jieba, error) {
	dictDir, err := ensureJiebaDictDir()
	if err != nil {
		return nil, fmt.Errorf("jieba: dictionary directory: %w", err)
	}
	if err := ensureJiebaDictionaries(ctx, dictDir); err != nil {
		return nil, fmt.Errorf("jieba: dictionary download: %w", err)
	}
	inner := gojieba.NewJieba(
		filepath.Join(dictDir, "jieba.dict.utf8"),
		filepath.Join(dictDir, "hmm_model.utf8"),
		filepath.Join(dictDir, "user.dict.utf8"),
		filepath.Join(dictDir, "idf.utf8"),
		filepath.Join(dictDir, "stop_words.utf8"),
	)
	return &Jieba{inner: inner}, nil
}

// Close releases the underlying cppjieba resources.
func (j *Jieba) Close() {
	if j.inner != nil {
		j.inner.Free()
		j.inner = nil
	}
}

// Tag runs precise-mode segmentation with HMM and POS tagging, returning
// one tonesandhi.Tag per token; word and pos slices from gojieba are
// guaranteed equal length for the same input.
func (j *Jieba) Tag(text string) []tonesandhi.Tag {
	tagged := j.inner.Tag(text)
	out := make([]tonesandhi.Tag, 0, len(tagged))
	for _, t := range tagged {
		i := strings.LastIndex(t, "/")
		if i < 0 {
			out = append(out, tonesandhi.Tag{Word: t})
			continue
		}
		out = append(out, tonesandhi.Tag{Word: t[:i], Pos: t[i+1:]})
	}
	return out
}

// CutForSearch satisfies tonesandhi.Cutter: search-mode segmentation,
// producing finer-grained tokens than precise mode (used by split_word to
// split a word into two parts for the neutral-tone and three-tone rules).
func (j *Jieba) CutForSearch(sentence string, useHMM bool) []string {
	return j.inner.CutForSearch(sentence, useHMM)
}

func ensureJiebaDictDir() (string, error) {
	dictDir := filepath.Join(xdg.DataHome, "sovits-engine", "gojieba", "dict")
	return dictDir, os.MkdirAll(dictDir, 0755)
}

func ensureJiebaDictionaries(ctx context.Context, dictDir string) error {
	for _, name := range jiebaDictFiles {
		dest := filepath.Join(dictDir, name)
		if _, err := os.Stat(dest); err == nil {
			continue
		}
		if err := downloadJiebaFile(ctx, jiebaDictBaseURL+name, dest); err != nil {
			return fmt.Errorf("failed to download %s: %w", name, err)
		}
	}
	return nil
}

func downloadJiebaFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	tmpPath := destPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer func() {
		out.Close()
		os.Remove(tmpPath)
	}()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
