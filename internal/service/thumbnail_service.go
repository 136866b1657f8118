package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"image/jpeg"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"go-shop-admin/internal/repository"
	"go-shop-admin/pkg/apierror"

	_ "image/gif"
	_ "image/png"
)

// ThumbnailService serves scaled JPEG thumbnails of product images. Scaled
// copies are cached on disk keyed by source path and size, and regenerated
// when the source image is newer than the cache entry.
type ThumbnailService struct {
	products      *repository.ProductRepository
	mediaRoot     string
	thumbnailRoot string
}

func NewThumbnailService(products *repository.ProductRepository, mediaRoot, thumbnailRoot string) *ThumbnailService {
	if strings.TrimSpace(mediaRoot) == "" {
		mediaRoot = "./data/media"
	}
	if strings.TrimSpace(thumbnailRoot) == "" {
		thumbnailRoot = "./data/.thumbnails"
	}
	return &ThumbnailService{products: products, mediaRoot: mediaRoot, thumbnailRoot: thumbnailRoot}
}

// ProductThumbnail returns an open JPEG thumbnail for the product's image.
// The caller owns the returned file handle.
func (s *ThumbnailService) ProductThumbnail(ctx context.Context, productID string, size int) (*os.File, os.FileInfo, error) {
	if size <= 0 {
		size = 256
	}
	if size > 1024 {
		size = 1024
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(p.ImageURL) == "" {
		return nil, nil, apierror.New("NOT_FOUND", "product has no image", productID, http.StatusNotFound)
	}

	resolved, err := s.resolve(p.ImageURL)
	if err != nil {
		return nil, nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apierror.New("NOT_FOUND", "product image not found", p.ImageURL, http.StatusNotFound)
		}
		return nil, nil, err
	}

	if err := os.MkdirAll(s.thumbnailRoot, 0o755); err != nil {
		return nil, nil, err
	}

	thumbPath := s.thumbnailPath(resolved, size)
	if thumbInfo, err := os.Stat(thumbPath); err == nil {
		if !thumbInfo.ModTime().Before(info.ModTime()) {
			thumbFile, openErr := os.Open(thumbPath)
			if openErr == nil {
				return thumbFile, thumbInfo, nil
			}
		}
	}

	return s.generate(resolved, thumbPath, size, info)
}

// resolve joins the stored image path against the media root and rejects
// anything escaping it.
func (s *ThumbnailService) resolve(imagePath string) (string, error) {
	root, err := filepath.Abs(s.mediaRoot)
	if err != nil {
		return "", err
	}

	joined := filepath.Join(root, filepath.Clean("/"+imagePath))
	if joined != root && !strings.HasPrefix(joined, root+string(os.PathSeparator)) {
		return "", apierror.New("BAD_REQUEST", "invalid image path", imagePath, http.StatusBadRequest)
	}
	return joined, nil
}

func (s *ThumbnailService) generate(resolved, thumbPath string, size int, info os.FileInfo) (*os.File, os.FileInfo, error) {
	file, err := os.Open(resolved)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, nil, apierror.New("UNSUPPORTED_TYPE", "cannot decode image", err.Error(), http.StatusUnsupportedMediaType)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, nil, apierror.New("UNSUPPORTED_TYPE", "invalid image dimensions", resolved, http.StatusUnsupportedMediaType)
	}

	maxDim := width
	if height > maxDim {
		maxDim = height
	}

	scale := float64(size) / float64(maxDim)
	if scale > 1 {
		scale = 1
	}

	targetWidth := int(math.Round(float64(width) * scale))
	targetHeight := int(math.Round(float64(height) * scale))
	if targetWidth < 1 {
		targetWidth = 1
	}
	if targetHeight < 1 {
		targetHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	thumbWriter, err := os.OpenFile(thumbPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, err
	}

	encodeErr := jpeg.Encode(thumbWriter, dst, &jpeg.Options{Quality: 95})
	closeErr := thumbWriter.Close()
	if encodeErr != nil {
		return nil, nil, encodeErr
	}
	if closeErr != nil {
		return nil, nil, closeErr
	}

	_ = os.Chtimes(thumbPath, time.Now().UTC(), info.ModTime())

	thumbFile, err := os.Open(thumbPath)
	if err != nil {
		return nil, nil, err
	}

	thumbInfo, err := os.Stat(thumbPath)
	if err != nil {
		_ = thumbFile.Close()
		return nil, nil, err
	}

	return thumbFile, thumbInfo, nil
}

func (s *ThumbnailService) thumbnailPath(resolvedPath string, size int) string {
	hash := sha256.Sum256([]byte(resolvedPath + "|" + strconv.Itoa(size)))
	name := hex.EncodeToString(hash[:]) + ".jpg"
	return filepath.Join(s.thumbnailRoot, name)
}
