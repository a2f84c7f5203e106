// internal/media/media.go
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Storage persists uploaded images and hands back a relative path that is stored on the row.
type Storage interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
	Delete(ctx context.Context, path string) error
}

// Image is a validated upload waiting to be saved.
type Image struct {
	Data []byte
	Ext  string
	MIME string
}

// ReadImage reads an uploaded file and checks its size, extension and sniffed content type.
// Every rejection matches domain.ErrInvalidInput.
func ReadImage(fh *multipart.FileHeader, maxBytes int64) (*Image, error) {
	ext, ok := core.NormalizeImageExtension(fh.Filename)
	if !ok {
		return nil, domain.Invalid("image", "file type not allowed, use jpg, jpeg, png or webp")
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, domain.Invalid("image", "file is larger than %d bytes", maxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		customLog.Warnf("Media: Failed to open upload '%s': %v", fh.Filename, err)
		return nil, domain.Invalid("image", "could not read uploaded file")
	}
	defer f.Close()

	return readImage(f, ext, maxBytes)
}

// ReadImageFrom validates an image read from r. name supplies the extension.
func ReadImageFrom(r io.Reader, name string, maxBytes int64) (*Image, error) {
	ext, ok := core.NormalizeImageExtension(name)
	if !ok {
		return nil, domain.Invalid("image", "file type not allowed, use jpg, jpeg, png or webp")
	}
	return readImage(r, ext, maxBytes)
}

func readImage(r io.Reader, ext string, maxBytes int64) (*Image, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.Invalid("image", "could not read uploaded file")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, domain.Invalid("image", "file is larger than %d bytes", maxBytes)
	}
	if len(data) == 0 {
		return nil, domain.Invalid("image", "file is empty")
	}

	mtype := mimetype.Detect(data)
	if !core.AllowedImageMIMETypes[mtype.String()] {
		customLog.Warnf("Media: Rejected upload with sniffed type %s (extension %s)", mtype.String(), ext)
		return nil, domain.Invalid("image", "content is not a jpeg, png or webp image")
	}
	// The stored extension follows the content, not the client's filename.
	if canonical, ok := core.NormalizeImageExtension(mtype.Extension()); ok {
		ext = canonical
	}

	return &Image{Data: data, Ext: ext, MIME: mtype.String()}, nil
}

// Save stores img through s.
func (img *Image) Save(ctx context.Context, s Storage) (string, error) {
	path, err := s.Save(ctx, bytes.Clone(img.Data), img.Ext)
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return path, nil
}
