package domain

// MaxUploadSize bounds image uploads (10 MiB).
const MaxUploadSize int64 = 10 << 20

type UploadKind string

const (
	UploadAvatar  UploadKind = "avatar"
	UploadBanner  UploadKind = "banner"
	UploadArtwork UploadKind = "artwork"
	UploadNews    UploadKind = "news"
)

func (k UploadKind) Valid() bool {
	switch k {
	case UploadAvatar, UploadBanner, UploadArtwork, UploadNews:
		return true
	}
	return false
}

// imageExtensions lists the accepted content types with the extension
// stored objects get.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageExtension returns the file extension for an accepted image content
// type.
func ImageExtension(contentType string) (string, bool) {
	ext, ok := imageExtensions[contentType]
	return ext, ok
}

// Upload describes a stored image.
type Upload struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
