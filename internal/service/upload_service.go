// Package service implements the application's business logic.
package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"esperanca/internal/config"
	"esperanca/internal/models"
	"esperanca/internal/observability"

	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	xdraw "golang.org/x/image/draw"
)

const (
	// ContentImageWidth/Height is the target for text and gallery images.
	ContentImageWidth  = 1200
	ContentImageHeight = 800
	// BannerImageWidth/Height is the target for carousel banners.
	BannerImageWidth  = 1200
	BannerImageHeight = 400
	// SupportImageMaxWidth caps support option images, keeping aspect ratio.
	SupportImageMaxWidth = 800
	// StoreImageMaxSize bounds both dimensions of store product photos.
	StoreImageMaxSize = 1024

	processedJPEGQuality = 90
	storeJPEGQuality     = 85
)

// Processor transforms upload bytes before anything touches the disk. The
// returned bytes are what gets written, so a failing processor leaves no
// partial file behind.
type Processor func(content []byte, ext string) ([]byte, error)

// UploadService stores and removes uploaded files under a single root
// directory. Stored paths are always forward-slash relative to that root.
type UploadService struct {
	root   string
	logger *slog.Logger
}

// NewUploadService returns an UploadService rooted at the configured upload
// directory.
func NewUploadService(cfg *config.Config, logger *slog.Logger) *UploadService {
	return &UploadService{root: cfg.UploadRoot, logger: logger}
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// sanitizeFilename reduces a client-supplied filename to a safe basename.
// Path separators and shell-hostile characters collapse to underscores.
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")
	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}

// Store writes an upload into the given folder under the root. The final name
// is the sanitized original name suffixed with a UTC microsecond timestamp so
// repeated uploads never collide. When a processor is supplied it runs before
// the write; processing failures therefore leave nothing on disk.
func (s *UploadService) Store(ctx context.Context, folder, filename string, content []byte, processor Processor) (string, error) {
	start := time.Now()

	safe := sanitizeFilename(filename)
	if safe == "" {
		return "", models.NewValidationError("Nome de arquivo inválido.")
	}
	if len(content) == 0 {
		return "", models.NewValidationError("Nenhum arquivo enviado.")
	}

	ext := strings.ToLower(filepath.Ext(safe))
	name := strings.TrimSuffix(safe, filepath.Ext(safe))

	if processor != nil {
		processed, err := processor(content, ext)
		if err != nil {
			observability.UploadsTotal.WithLabelValues(folder, "rejected").Inc()
			return "", err
		}
		content = processed
	}

	now := time.Now().UTC()
	timestamp := now.Format("20060102150405") + fmt.Sprintf("%06d", now.Nanosecond()/1000)
	finalName := fmt.Sprintf("%s_%s%s", name, timestamp, ext)

	targetDir := filepath.Join(s.root, filepath.FromSlash(folder))
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		observability.UploadsTotal.WithLabelValues(folder, "error").Inc()
		return "", models.NewInternalError(err)
	}

	targetPath := filepath.Join(targetDir, finalName)
	if err := os.WriteFile(targetPath, content, 0o644); err != nil {
		observability.UploadsTotal.WithLabelValues(folder, "error").Inc()
		return "", models.NewInternalError(err)
	}

	observability.UploadsTotal.WithLabelValues(folder, "ok").Inc()
	observability.UploadProcessingDuration.WithLabelValues(folder).Observe(time.Since(start).Seconds())
	s.logger.InfoContext(ctx, "upload stored", "folder", folder, "file", finalName, "bytes", len(content))

	return filepath.ToSlash(filepath.Join(folder, finalName)), nil
}

// StoreImage processes a store product photo: decode, shrink to fit within
// StoreImageMaxSize, re-encode as JPEG in memory, then write under a random
// name. The single write keeps the operation atomic.
func (s *UploadService) StoreImage(ctx context.Context, content []byte) (string, error) {
	start := time.Now()

	decoded, err := decodeUpright(content)
	if err != nil {
		observability.UploadsTotal.WithLabelValues(config.StoreImageFolder, "rejected").Inc()
		return "", models.NewValidationError("Formato não reconhecido. Tente novamente com outro arquivo de imagem.")
	}

	shrunk := resizeToFit(decoded, StoreImageMaxSize, StoreImageMaxSize)
	encoded, err := encodeJPEG(shrunk, storeJPEGQuality)
	if err != nil {
		observability.UploadsTotal.WithLabelValues(config.StoreImageFolder, "error").Inc()
		return "", models.NewInternalError(err)
	}

	targetDir := filepath.Join(s.root, filepath.FromSlash(config.StoreImageFolder))
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		observability.UploadsTotal.WithLabelValues(config.StoreImageFolder, "error").Inc()
		return "", models.NewInternalError(err)
	}

	finalName := strings.ReplaceAll(uuid.NewString(), "-", "") + ".jpg"
	if err := os.WriteFile(filepath.Join(targetDir, finalName), encoded, 0o644); err != nil {
		observability.UploadsTotal.WithLabelValues(config.StoreImageFolder, "error").Inc()
		return "", models.NewInternalError(err)
	}

	observability.UploadsTotal.WithLabelValues(config.StoreImageFolder, "ok").Inc()
	observability.UploadProcessingDuration.WithLabelValues(config.StoreImageFolder).Observe(time.Since(start).Seconds())
	s.logger.InfoContext(ctx, "store image saved", "file", finalName, "bytes", len(encoded))

	return filepath.ToSlash(filepath.Join(config.StoreImageFolder, finalName)), nil
}

// Delete removes a previously stored file. Empty paths and missing files are
// no-ops; paths resolving outside the upload root are refused.
func (s *UploadService) Delete(ctx context.Context, relPath string) error {
	if relPath == "" {
		return nil
	}

	candidate, inside, err := s.confine(relPath)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !inside {
		s.logger.WarnContext(ctx, "refusing to delete file outside upload root", "path", relPath)
		return nil
	}

	if err := os.Remove(candidate); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Resolve maps a stored relative path to its absolute location, refusing
// anything that escapes the upload root.
func (s *UploadService) Resolve(relPath string) (string, error) {
	candidate, inside, err := s.confine(relPath)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if !inside {
		return "", models.NewNotFoundError("Arquivo", relPath)
	}
	return candidate, nil
}

// confine resolves relPath under the upload root, following symlinks on both
// root and target, and reports whether the final location stays inside the
// root. A symlink stored under the root that points elsewhere fails the check.
func (s *UploadService) confine(relPath string) (string, bool, error) {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", false, err
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	candidate := filepath.Clean(filepath.Join(root, filepath.FromSlash(relPath)))
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", false, err
		}
		// Nothing on disk to follow; the lexical path decides.
		resolved = candidate
	}

	if resolved != root && !strings.HasPrefix(resolved, root+string(os.PathSeparator)) {
		return "", false, nil
	}
	return resolved, true, nil
}

// FitProcessor returns a Processor that covers the exact width x height:
// scale until both dimensions are covered, then center-crop the excess.
func FitProcessor(width, height int) Processor {
	return func(content []byte, ext string) ([]byte, error) {
		decoded, err := decodeUpright(content)
		if err != nil {
			return nil, models.NewValidationError("O arquivo enviado não é uma imagem válida.")
		}
		fitted := cropToCover(decoded, width, height)
		return encodeForExt(fitted, ext)
	}
}

// MaxWidthProcessor returns a Processor that shrinks images wider than
// maxWidth, preserving aspect ratio. Narrower images pass through a re-encode
// unchanged in size.
func MaxWidthProcessor(maxWidth int) Processor {
	return func(content []byte, ext string) ([]byte, error) {
		decoded, err := decodeUpright(content)
		if err != nil {
			return nil, models.NewValidationError("O arquivo enviado não é uma imagem válida.")
		}

		b := decoded.Bounds()
		if maxWidth > 0 && b.Dx() > maxWidth {
			newH := int(float64(b.Dy()) * (float64(maxWidth) / float64(b.Dx())))
			if newH < 1 {
				newH = 1
			}
			decoded = scaleTo(decoded, maxWidth, newH)
		}
		return encodeForExt(decoded, ext)
	}
}

// decodeUpright decodes an upload and applies its EXIF orientation, so photos
// taken with a rotated camera come out upright before any resizing.
func decodeUpright(content []byte) (image.Image, error) {
	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	return applyOrientation(decoded, exifOrientation(content)), nil
}

// exifOrientation reads the EXIF orientation tag. Anything unreadable counts
// as the identity orientation.
func exifOrientation(content []byte) int {
	meta, err := exif.Decode(bytes.NewReader(content))
	if err != nil {
		return 1
	}
	tag, err := meta.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	value, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return value
}

// applyOrientation remaps pixels per EXIF orientation values 2 through 8.
// Values 5-8 swap the output dimensions.
func applyOrientation(src image.Image, orientation int) image.Image {
	if orientation < 2 || orientation > 8 {
		return src
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dw, dh := w, h
	if orientation >= 5 {
		dw, dh = h, w
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var tx, ty int
			switch orientation {
			case 2: // mirrored
				tx, ty = w-1-x, y
			case 3: // rotated 180
				tx, ty = w-1-x, h-1-y
			case 4: // flipped vertically
				tx, ty = x, h-1-y
			case 5: // transposed
				tx, ty = y, x
			case 6: // rotated 90 CW
				tx, ty = h-1-y, x
			case 7: // transversed
				tx, ty = h-1-y, w-1-x
			case 8: // rotated 270 CW
				tx, ty = y, w-1-x
			}
			dst.Set(tx, ty, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// cropToCover scales the source so it covers width x height, then center-crops
// to the exact target.
func cropToCover(src image.Image, width, height int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || width <= 0 || height <= 0 {
		return src
	}

	scaleW := float64(width) / float64(w)
	scaleH := float64(height) / float64(h)
	scale := scaleW
	if scaleH > scale {
		scale = scaleH
	}

	scaledW := int(float64(w)*scale + 0.5)
	scaledH := int(float64(h)*scale + 0.5)
	if scaledW < width {
		scaledW = width
	}
	if scaledH < height {
		scaledH = height
	}
	scaled := scaleTo(src, scaledW, scaledH)

	offsetX := (scaledW - width) / 2
	offsetY := (scaledH - height) / 2
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Copy(dst, image.Point{}, scaled, image.Rect(offsetX, offsetY, offsetX+width, offsetY+height), xdraw.Src, nil)
	return dst
}

// resizeToFit shrinks the source to fit within maxWidth x maxHeight. Images
// already inside the bounds are returned unchanged.
func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || (w <= maxWidth && h <= maxHeight) {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return scaleTo(src, newW, newH)
}

func scaleTo(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

func encodeForExt(img image.Image, ext string) ([]byte, error) {
	switch ext {
	case ".png":
		buf := bytes.NewBuffer(nil)
		if err := png.Encode(buf, img); err != nil {
			return nil, models.NewInternalError(err)
		}
		return buf.Bytes(), nil
	case ".gif":
		buf := bytes.NewBuffer(nil)
		if err := gif.Encode(buf, img, nil); err != nil {
			return nil, models.NewInternalError(err)
		}
		return buf.Bytes(), nil
	default:
		out, err := encodeJPEG(img, processedJPEGQuality)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		return out, nil
	}
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
