package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ImageVariant là một kích thước được sinh ra từ ảnh gốc
type ImageVariant struct {
	Name    string
	MaxSide int
}

var DefaultVariants = []ImageVariant{
	{Name: "large", MaxSide: 1200},
	{Name: "medium", MaxSide: 600},
	{Name: "thumbnail", MaxSide: 300},
}

type ImageProcessor struct {
	MaxSize  int64 // bytes
	Quality  int
	Variants []ImageVariant
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	return &ImageProcessor{
		MaxSize:  maxSize,
		Quality:  90,
		Variants: DefaultVariants,
	}
}

// ValidateImage chỉ nhận JPEG/PNG <= MaxSize, trả về format đã detect
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file")
	}
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return format, nil
	default:
		return "", fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// ProcessImage resize theo từng variant rồi encode JPEG. Ảnh nhỏ hơn variant không bị phóng to.
func (p *ImageProcessor) ProcessImage(data []byte) (map[string][]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	bounds := img.Bounds()
	variants := make(map[string][]byte, len(p.Variants))
	for _, v := range p.Variants {
		resized := img
		if bounds.Dx() > v.MaxSide || bounds.Dy() > v.MaxSide {
			resized = imaging.Fit(img, v.MaxSide, v.MaxSide, imaging.Lanczos)
		}
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: p.Quality}); err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", v.Name, err)
		}
		variants[v.Name] = buf.Bytes()
	}
	return variants, nil
}
