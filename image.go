package strata

import "image"

// ImageSource supplies the pixels of an image layer. A source is either
// ready, or pending until its loader resolves it.
type ImageSource interface {
	// Image returns the decoded image and whether it is ready.
	Image() (image.Image, bool)
	// OnLoad registers fn to run when the image becomes ready. If the image
	// is already ready, fn runs immediately.
	OnLoad(fn func())
}

// PendingImage is an ImageSource resolved once by its loader.
type PendingImage struct {
	img     image.Image
	ready   bool
	waiters []func()
}

// NewPendingImage returns an image that is not loaded yet.
func NewPendingImage() *PendingImage { return &PendingImage{} }

// LoadedImage wraps an already decoded image.
func LoadedImage(img image.Image) *PendingImage {
	return &PendingImage{img: img, ready: true}
}

// Image implements ImageSource.
func (p *PendingImage) Image() (image.Image, bool) { return p.img, p.ready }

// OnLoad implements ImageSource.
func (p *PendingImage) OnLoad(fn func()) {
	if p.ready {
		fn()
		return
	}
	p.waiters = append(p.waiters, fn)
}

// Resolve marks the image as loaded and runs every registered callback in
// registration order. Resolving twice is a no-op.
func (p *PendingImage) Resolve(img image.Image) {
	if p.ready {
		return
	}
	p.img = img
	p.ready = true
	waiters := p.waiters
	p.waiters = nil
	for _, fn := range waiters {
		fn()
	}
}

// Waiting reports how many callbacks are registered.
func (p *PendingImage) Waiting() int { return len(p.waiters) }

// ImageResolver maps an image source string (path, URL or data URL) to an
// ImageSource. Hosts install one with [Canvas.SetImageResolver].
type ImageResolver func(src string) ImageSource
