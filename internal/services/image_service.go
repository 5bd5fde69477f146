package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/autoventa/autoventa-api/internal/storage"
	"github.com/disintegration/imaging"
)

// ImageService handles vehicle photo processing and storage
type ImageService struct {
	storage *storage.LocalStorage
}

func NewImageService(store *storage.LocalStorage) *ImageService {
	return &ImageService{storage: store}
}

// ProcessAndSaveVehiclePhoto saves the original photo and a listing-sized
// thumbnail, returning the storage-relative paths for both.
func (s *ImageService) ProcessAndSaveVehiclePhoto(file multipart.File, header *multipart.FileHeader) (originalPath, thumbnailPath string, err error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", "", fmt.Errorf("formato de imagen no soportado (solo JPG/PNG)")
	}

	// Decode to validate and to build the thumbnail
	img, _, err := image.Decode(file)
	if err != nil {
		return "", "", fmt.Errorf("error al decodificar imagen: %w", err)
	}

	// Store the original stream unchanged
	if _, err := file.Seek(0, 0); err != nil {
		return "", "", fmt.Errorf("error al leer archivo: %w", err)
	}
	originalPath, err = s.storage.Upload(file, header, "vehicles")
	if err != nil {
		return "", "", fmt.Errorf("error al guardar imagen original: %w", err)
	}

	// 640x480 fit keeps the full vehicle visible in listing cards
	thumbImg := imaging.Fit(img, 640, 480, imaging.Lanczos)

	var buf bytes.Buffer
	if ext == ".png" {
		err = png.Encode(&buf, thumbImg)
	} else {
		err = jpeg.Encode(&buf, thumbImg, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", "", fmt.Errorf("error al generar thumbnail: %w", err)
	}

	thumbnailPath, err = s.storage.UploadFromBytes(buf.Bytes(), "thumb"+ext, "vehicles/thumbs")
	if err != nil {
		return "", "", fmt.Errorf("error al guardar thumbnail: %w", err)
	}

	return originalPath, thumbnailPath, nil
}

// DeleteVehiclePhoto removes a stored photo file. A missing file is not
// an error; the database reference is what matters.
func (s *ImageService) DeleteVehiclePhoto(path string) error {
	if err := s.storage.Delete(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
