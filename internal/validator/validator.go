package validator

import (
	"context"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-audio/wav"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
)

type FileType string

const (
	Audio   FileType = "audio"
	Image   FileType = "image"
	Unknown FileType = "unknown"
)

var (
	AudioExtensions = []string{".wav", ".mp3", ".m4a", ".flac"}
	ImageExtensions = []string{".jpg", ".jpeg", ".png", ".heic", ".webp"}
)

const bytesPerMB = 1024 * 1024

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// DetectFileType classifies path by extension, then by the registered MIME
// type for the extension, then by sniffing the first 512 bytes.
func DetectFileType(path string) (FileType, error) {
	if err := requireFile(path); err != nil {
		return Unknown, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if slices.Contains(AudioExtensions, ext) {
		return Audio, nil
	}
	if slices.Contains(ImageExtensions, ext) {
		return Image, nil
	}

	if ext != "" {
		if t := classifyMIME(mime.TypeByExtension(ext)); t != Unknown {
			return t, nil
		}
	}

	return sniff(path), nil
}

func classifyMIME(m string) FileType {
	switch {
	case strings.HasPrefix(m, "audio/"):
		return Audio
	case strings.HasPrefix(m, "image/"):
		return Image
	}
	return Unknown
}

func sniff(path string) FileType {
	f, err := os.Open(path)
	if err != nil {
		return Unknown
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Unknown
	}
	return classifyMIME(http.DetectContentType(head[:n]))
}

// SizeInMegabytes returns the file size in MiB.
func SizeInMegabytes(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, apperr.Wrap(apperr.ErrValidation, err, "stat %s", path)
	}
	return float64(info.Size()) / bytesPerMB, nil
}

// AudioDuration returns the playing time of a PCM WAV file.
func AudioDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, apperr.Wrap(apperr.ErrValidation, err, "open %s", path)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, apperr.New(apperr.ErrFileFormat, "not a valid WAV file: %s", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		return 0, apperr.Wrap(apperr.ErrFileFormat, err, "read WAV data chunk of %s", path)
	}
	if dec.AvgBytesPerSec == 0 {
		return 0, apperr.New(apperr.ErrFileFormat, "WAV header of %s has no byte rate", path)
	}
	secs := float64(dec.PCMSize) / float64(dec.AvgBytesPerSec)
	return time.Duration(secs * float64(time.Second)), nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return apperr.New(apperr.ErrValidation, "file does not exist: %s", path)
		}
		return apperr.Wrap(apperr.ErrValidation, err, "stat %s", path)
	}
	if !info.Mode().IsRegular() {
		return apperr.New(apperr.ErrValidation, "path is not a file: %s", path)
	}
	return nil
}

func checkSize(path, label string, maxMB float64) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, apperr.Wrap(apperr.ErrValidation, err, "stat %s", path)
	}
	size := info.Size()
	if maxMB > 0 && float64(size)/bytesPerMB > maxMB {
		return size, apperr.New(apperr.ErrValidation, "%s file too large: %s (max: %s)",
			label, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(maxMB*bytesPerMB)))
	}
	return size, nil
}

func (v *implValidator) ValidateAudio(ctx context.Context, path string) error {
	if err := requireFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(AudioExtensions, ext) {
		return apperr.New(apperr.ErrFileFormat, "unsupported audio format: %q. Supported formats: %s",
			ext, strings.Join(AudioExtensions, ", "))
	}

	size, err := checkSize(path, "audio", v.limits.MaxAudioSizeMB)
	if err != nil {
		return err
	}

	if ext == ".wav" && v.limits.MaxAudioDuration > 0 {
		d, err := AudioDuration(path)
		if err != nil {
			return err
		}
		if d > v.limits.MaxAudioDuration {
			return apperr.New(apperr.ErrValidation, "audio too long: %s (max: %s)",
				d.Round(time.Second), v.limits.MaxAudioDuration)
		}
	}

	v.logger.Debug(ctx, "Audio input ok: %s (%s)", path, humanize.IBytes(uint64(size)))
	return nil
}

func (v *implValidator) ValidateImage(ctx context.Context, path string) error {
	if err := requireFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(ImageExtensions, ext) {
		return apperr.New(apperr.ErrFileFormat, "unsupported image format: %q. Supported formats: %s",
			ext, strings.Join(ImageExtensions, ", "))
	}

	size, err := checkSize(path, "image", v.limits.MaxImageSizeMB)
	if err != nil {
		return err
	}

	v.logger.Debug(ctx, "Image input ok: %s (%s)", path, humanize.IBytes(uint64(size)))
	return nil
}
