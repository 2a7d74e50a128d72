// Package imageload resolves image layer sources. A [Loader] turns a source
// string (file path, http(s) URL or data URL) into a pending image, decodes
// it in the background and resolves it on the goroutine that owns the
// canvas when the host calls [Loader.Poll].
//
// png, jpeg, gif, bmp, tiff and webp are supported.
package imageload

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/phanxgames/strata"
)

// ErrEmptyData is returned for sources that decode to zero bytes.
var ErrEmptyData = errors.New("imageload: empty data")

// ErrBadDataURL is returned for malformed data URLs.
var ErrBadDataURL = errors.New("imageload: malformed data URL")

// Loader decodes image sources. The zero value is not usable; create one
// with [New].
type Loader struct {
	// FS serves relative paths. Nil means the OS file system.
	FS fs.FS
	// Client fetches http and https sources.
	Client *http.Client
	// Timeout bounds one fetch. Zero means no limit.
	Timeout time.Duration
	// Sync decodes inside Resolve instead of in the background, so the
	// returned source is ready at once unless loading failed.
	Sync bool

	mu      sync.Mutex
	cache   map[string]*strata.PendingImage
	results chan result
	pending int
}

type result struct {
	src string
	img image.Image
	err error
}

// New returns a loader using http.DefaultClient.
func New() *Loader {
	return &Loader{
		Client:  http.DefaultClient,
		cache:   make(map[string]*strata.PendingImage),
		results: make(chan result, 16),
	}
}

// Resolve implements strata.ImageResolver. Repeated calls for the same
// source share one image.
func (ld *Loader) Resolve(src string) strata.ImageSource {
	ld.mu.Lock()
	if p, ok := ld.cache[src]; ok {
		ld.mu.Unlock()
		return p
	}
	p := strata.NewPendingImage()
	ld.cache[src] = p
	ld.mu.Unlock()

	if ld.Sync {
		img, err := ld.Load(context.Background(), src)
		ld.finish(result{src: src, img: img, err: err})
		return p
	}

	ld.mu.Lock()
	ld.pending++
	ld.mu.Unlock()
	go func() {
		img, err := ld.Load(context.Background(), src)
		ld.results <- result{src: src, img: img, err: err}
	}()
	return p
}

// Poll resolves every image whose decode has finished and returns how many
// were resolved. Call it from the goroutine that drives the canvas.
func (ld *Loader) Poll() int {
	n := 0
	for {
		select {
		case r := <-ld.results:
			ld.mu.Lock()
			ld.pending--
			ld.mu.Unlock()
			ld.finish(r)
			n++
		default:
			return n
		}
	}
}

// Wait blocks until every background load has been resolved or ctx is
// done.
func (ld *Loader) Wait(ctx context.Context) error {
	for ld.Pending() > 0 {
		select {
		case r := <-ld.results:
			ld.mu.Lock()
			ld.pending--
			ld.mu.Unlock()
			ld.finish(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Pending returns the number of background loads not yet resolved.
func (ld *Loader) Pending() int {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return ld.pending
}

// finish resolves the cached image. A failed load stays pending, so image
// layers using it keep waiting.
func (ld *Loader) finish(r result) {
	if r.err != nil {
		strata.Logger().Warn("imageload: load failed", "src", r.src, "err", r.err)
		return
	}
	ld.mu.Lock()
	p := ld.cache[r.src]
	ld.mu.Unlock()
	if p != nil {
		p.Resolve(r.img)
	}
}

// Load fetches and decodes one source.
func (ld *Loader) Load(ctx context.Context, src string) (image.Image, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		data, err := DecodeDataURL(src)
		if err != nil {
			return nil, err
		}
		return Decode(bytes.NewReader(data))
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return ld.fetch(ctx, src)
	}
	return ld.open(src)
}

func (ld *Loader) open(name string) (image.Image, error) {
	var (
		f   io.ReadCloser
		err error
	)
	if ld.FS != nil {
		f, err = ld.FS.Open(strings.TrimPrefix(name, "/"))
	} else {
		f, err = os.Open(name)
	}
	if err != nil {
		return nil, fmt.Errorf("imageload: open %s: %w", name, err)
	}
	defer f.Close()
	return Decode(f)
}

func (ld *Loader) fetch(ctx context.Context, src string) (image.Image, error) {
	if ld.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ld.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("imageload: %w", err)
	}
	client := ld.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imageload: get %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imageload: get %s: %s", src, resp.Status)
	}
	return Decode(resp.Body)
}

// Decode decodes an image, detecting its format from the data.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageload: decode: %w", err)
	}
	return img, nil
}

// DecodeDataURL returns the payload of a data URL such as
// "data:image/png;base64,iVBOR...".
func DecodeDataURL(src string) ([]byte, error) {
	rest, ok := strings.CutPrefix(src, "data:")
	if !ok {
		return nil, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrBadDataURL
	}
	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
		}
		data = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
		}
		data = []byte(s)
	}
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return data, nil
}
