package filestore

import "strings"

// Kind is the family a stored file belongs to.
type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
	KindVideo    Kind = "video"
)

// Rules is the immutable set of accepted extensions per kind.
type Rules struct {
	allowed map[Kind]map[string]struct{}
}

// NewRules builds the extension sets from configuration. Extensions are
// matched case-insensitively and a missing leading dot is tolerated.
func NewRules(cfg Config) Rules {
	return Rules{allowed: map[Kind]map[string]struct{}{
		KindImage:    extensionSet(cfg.ImageExtensions),
		KindDocument: extensionSet(cfg.DocumentExtensions),
		KindVideo:    extensionSet(cfg.VideoExtensions),
	}}
}

// Allows reports whether ext is accepted for kind.
func (r Rules) Allows(kind Kind, ext string) bool {
	set, ok := r.allowed[kind]
	if !ok {
		return false
	}
	_, ok = set[normalizeExt(ext)]
	return ok
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		if n := normalizeExt(e); n != "" && n != "." {
			set[n] = struct{}{}
		}
	}
	return set
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
