package markdown

import "github.com/yaklabco/gomdsite/pkg/langdetect"

// Options configures a render.
type Options struct {
	// AssetPrefix is prepended to relative image sources, typically "../"
	// repeated once per directory level of the output page.
	AssetPrefix string

	// DetectLanguage labels fences that carry no language using content
	// detection.
	DetectLanguage bool

	// Detector overrides the language detector. Nil uses langdetect.Detect.
	Detector func(code []byte) string
}

func (o Options) detect(code string) string {
	if !o.DetectLanguage {
		return ""
	}
	detector := o.Detector
	if detector == nil {
		detector = langdetect.Detect
	}
	lang := detector([]byte(code))
	if lang == langdetect.LangText {
		return ""
	}
	return lang
}
