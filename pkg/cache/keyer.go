package cache

import "time"

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered or exported artifact.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes an artifact's bytes.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Renderer  string  `json:"renderer,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	Padding   float64 `json:"padding,omitempty"`
	Stroke    string  `json:"stroke,omitempty"`
	NodeFill  string  `json:"node_fill,omitempty"`
	NoLabels  bool    `json:"no_labels,omitempty"`
	Pinned    bool    `json:"pinned,omitempty"`
	ModelName string  `json:"model_name,omitempty"`
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}

// ScopedKeyer prepends a fixed prefix to another keyer's keys. The CLI scopes
// keys by version so an upgrade never reads artifacts from an older renderer.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, opts)
}

// TTLArtifact is how long rendered artifacts stay cached. Keys change with
// the input, so the TTL only bounds disk and memory use.
const TTLArtifact = 7 * 24 * time.Hour
