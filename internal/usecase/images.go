package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

// ImageFile is one uploaded attachment as it arrives from the transport
// layer. The reader is consumed exactly once by the media client.
type ImageFile struct {
	Filename string
	Reader   io.Reader
}

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

func validateImageName(filename string, allowed map[string]struct{}) error {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := allowed[ext]; !ok {
		return domain.Validationf("file type %q is not allowed", ext)
	}
	return nil
}

// uploadImages validates every file up front, then uploads sequentially and
// returns the resulting URLs in submission order.
func uploadImages(ctx context.Context, media domain.MediaUploader, files []ImageFile, folder string) ([]string, error) {
	for _, file := range files {
		if err := validateImageName(file.Filename, imageExtensions); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := media.UploadImage(ctx, file.Reader, file.Filename, folder)
		if err != nil {
			return nil, fmt.Errorf("upload image %q: %w", file.Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}
