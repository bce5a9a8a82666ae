package domain

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
)

// ContentKind discriminates the closed set of clip payload types.
type ContentKind int

const (
	// ContentText is UTF-8 text content.
	ContentText ContentKind = iota

	// ContentImage is an opaque image payload with a MIME type.
	ContentImage
)

// Content is a clipboard payload: either text or image bytes.
// The variant set is small and fixed; every consumer (fingerprinting,
// preview, search, persistence) handles both cases exhaustively.
type Content struct {
	// Kind selects the active variant.
	Kind ContentKind

	// Text is the payload for ContentText.
	Text string

	// Data is the payload for ContentImage.
	Data []byte

	// MIME is the image media type, e.g. "image/png".
	MIME string
}

// TextContent builds a text payload.
func TextContent(s string) Content {
	return Content{Kind: ContentText, Text: s}
}

// ImageContent builds an image payload.
func ImageContent(data []byte, mime string) Content {
	return Content{Kind: ContentImage, Data: data, MIME: mime}
}

// Fingerprint returns a stable 64-bit hash of the content bytes, used for
// deduplication. The kind is mixed in so an image whose bytes spell a text
// payload never collides with that text.
func (c Content) Fingerprint() uint64 {
	h := fnv.New64a()
	switch c.Kind {
	case ContentText:
		h.Write([]byte{0})
		h.Write([]byte(c.Text))
	case ContentImage:
		h.Write([]byte{1})
		h.Write([]byte(c.MIME))
		h.Write(c.Data)
	}
	return h.Sum64()
}

// Preview returns a single display line, truncated to max runes.
func (c Content) Preview(max int) string {
	switch c.Kind {
	case ContentImage:
		return fmt.Sprintf("[image: %s (%d bytes)]", c.MIME, len(c.Data))
	default:
		line := c.Text
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		runes := []rune(line)
		if max > 0 && len(runes) > max {
			return string(runes[:max]) + "..."
		}
		return line
	}
}

// SearchText returns the text the fuzzy index matches against. Images are
// matched on a synthetic label, never on pixel data.
func (c Content) SearchText() string {
	if c.Kind == ContentImage {
		return fmt.Sprintf("[image %s]", c.MIME)
	}
	return c.Text
}

// Empty reports whether the content carries no payload at all.
func (c Content) Empty() bool {
	return c.Text == "" && len(c.Data) == 0
}

// Clip is one captured clipboard record. Content is immutable after
// creation; Pinned and Register mutate in place.
type Clip struct {
	// ID is a monotonic, unique identifier assigned by History.
	ID uint64

	// Content is the captured payload.
	Content Content

	// CapturedAt is when the clip was captured.
	CapturedAt time.Time

	// Pinned exempts the clip from rotation eviction.
	Pinned bool

	// Register is the single-letter register name assigned to this clip,
	// or 0 for none. Denormalised: the named register may no longer
	// exist, which renders as unregistered.
	Register byte

	// Fingerprint is the derived content hash, stored for O(1) dedup.
	Fingerprint uint64
}

// NewClip builds a clip with a derived fingerprint.
func NewClip(id uint64, content Content) Clip {
	return Clip{
		ID:          id,
		Content:     content,
		CapturedAt:  time.Now(),
		Fingerprint: content.Fingerprint(),
	}
}
