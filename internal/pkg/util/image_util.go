package util

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
)

const maxImageEdge = 1920

// NormalizeImage 解码上传的图片，按最长边缩放后统一转码为 JPEG
func NormalizeImage(reader io.Reader) (*bytes.Buffer, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageEdge || bounds.Dy() > maxImageEdge {
		img = imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf, nil
}

// GetSafeContentType 基于文件头嗅探内容类型，不信任客户端声明
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	head := make([]byte, 512)
	n, err := reader.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return strings.ToLower(http.DetectContentType(head[:n])), nil
}
