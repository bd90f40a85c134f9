package pinyin

import "strings"

// vRepMap contracts a lazy_pinyin "restored" final back to the compact
// spelling the acoustic alphabet trains on, but only when a real initial
// consonant swallows the glide (niu = n + iou -> n + iu). Embedded
// verbatim from chinese.rs's v_rep_map.
var vRepMap = map[string]string{"uei": "ui", "iou": "iu", "uen": "un"}

// pinyinRepMap rewrites a zero-initial final that is spelled as a whole
// new syllable rather than a glide + remainder (you = "i" -> "yi", not
// "y" + ""). Embedded verbatim from chinese.rs's pinyin_rep_map.
var pinyinRepMap = map[string]string{"i": "yi", "u": "wu", "in": "yin", "ing": "ying"}

// singleRepMapInitial is chinese.rs's single_rep_map read as "which glide
// consonant does this zero-initial final spell with": i- and u- finals
// take y-/w- and drop the glide vowel from the final (ia -> y + a); v-
// (u"-umlaut) finals take y- but the final itself is unchanged, since ve/
// van/vn are themselves alphabet entries, not stand-ins for another
// final; e- takes no consonant at all (single_rep_map's "e"->"e" entry is
// a no-op marking e-initial zero-initial finals as glide-less, same as
// the unlisted a-/o- finals).
var singleRepMapInitial = map[byte]string{'i': "y", 'u': "w", 'v': "y"}

// retroflexInitials take the "buzzed" apical vowel spelled ir in the
// acoustic alphabet (zhi, chi, shi, ri); sibilantInitials take i0 (zi, ci,
// si). Both are written as a bare "i" final by the pinyin engine.
var retroflexInitials = map[string]bool{"zh": true, "ch": true, "sh": true, "r": true}
var sibilantInitials = map[string]bool{"z": true, "c": true, "s": true}

// Pair decomposes a syllable's (Initials-style initial, InitialsTone3-style
// final+tone) pair into the two acoustic-alphabet phoneme tokens the
// decoder was trained on.
//
// For a syllable with a real initial consonant, this is v_rep_map's
// iou/uei/uen contraction (chinese.rs, embedded verbatim above) plus the
// apical-vowel disambiguation zh/ch/sh/r-i -> ir and z/c/s-i -> i0. The
// apical split has no grounding in the retrieved corpus -- chinese.rs
// consumes a ~400-entry syllable->phoneme-pair table
// (zh_normalization::opencpop_strict::OPENCPOP_STRICT) whose data never
// shipped with the retrieved sources, only the code around it -- so it is
// a from-scratch rule built from standard Mandarin phonology rather than
// a ported table.
//
// For a zero-initial syllable (empty initial), chinese.rs's
// pinyin_rep_map/single_rep_map chain (embedded verbatim above) spells
// out the glide consonant the syllable surfaces with: y- for an i/ü-led
// final, w- for a u-led final, or no consonant at all for a, o, e, ai,
// ei, ao, ou, an, en, ang, eng, er, ong. A zero-initial ueng takes the w-
// glide (w + eng), and bare ê, absent from the trained alphabet, falls
// back to e. After a real initial, ueng and ê fall back to their nearest
// trained neighbor (ong, e) since neither has a dedicated phoneme.
func Pair(initial, finalWithTone string) (initialSym, finalSym string) {
	tone, bare := splitTone(finalWithTone)

	if initial == "" {
		if bare == "ê" {
			bare = "e"
		}
		sym, final := zeroInitialGlide(bare)
		return sym, final + tone
	}

	if rep, ok := vRepMap[bare]; ok {
		bare = rep
	}
	switch bare {
	case "ueng":
		bare = "ong"
	case "ê":
		bare = "e"
	}
	if bare == "i" {
		switch {
		case retroflexInitials[initial]:
			bare = "ir"
		case sibilantInitials[initial]:
			bare = "i0"
		}
	}
	return initial, bare + tone
}

func splitTone(finalWithTone string) (tone, bare string) {
	tone = "5"
	bare = finalWithTone
	if n := len(bare); n > 0 {
		if last := bare[n-1]; last >= '1' && last <= '5' {
			tone = string(last)
			bare = bare[:n-1]
		}
	}
	return tone, bare
}

// zeroInitialGlide applies chinese.rs's pinyin_rep_map/single_rep_map
// chain to a zero-initial bare final (no tone digit), returning the
// synthetic glide initial ("y", "w", or "" for a glide-less vowel final)
// and the final symbol that belongs with it.
func zeroInitialGlide(bare string) (initialSym, finalSym string) {
	if rep, ok := pinyinRepMap[bare]; ok {
		// rep is the whole spelled syllable (e.g. "yi"); its first
		// rune is always the glide consonant, the rest is the final.
		return rep[:1], rep[1:]
	}
	if bare == "" {
		return "", bare
	}
	switch bare[0] {
	case 'v':
		return "y", bare
	case 'i', 'u':
		return singleRepMapInitial[bare[0]], strings.TrimPrefix(bare, string(bare[0]))
	default:
		return "", bare
	}
}
