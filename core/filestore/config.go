package filestore

// Config holds the upload rules and public URL layout for stored files.
type Config struct {
	// PublicPrefix is the URL path under which stored objects are served.
	PublicPrefix string `mapstructure:"public_prefix" default:"/media"`
	// ImageExtensions lists accepted image extensions (comma separated in env).
	ImageExtensions []string `mapstructure:"image_extensions" default:".jpg,.jpeg,.png,.webp,.avif"`
	// DocumentExtensions lists accepted document extensions.
	DocumentExtensions []string `mapstructure:"document_extensions" default:".pdf,.doc,.docx,.xls,.xlsx,.ppt,.pptx,.txt"`
	// VideoExtensions lists accepted video extensions.
	VideoExtensions []string `mapstructure:"video_extensions" default:".mp4,.webm,.mov,.m4v"`
	// MaxImageBytes caps product image uploads.
	MaxImageBytes int64 `mapstructure:"max_image_bytes" default:"5242880"`
}
