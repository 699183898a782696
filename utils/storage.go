package utils

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UniqueName prefixes name with a timestamp and random hex so uploads never
// collide. Only the extension of the original name is kept.
func UniqueName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	}
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), hex.EncodeToString(b), ext)
}

// DecodeDataURI accepts raw base64 or a data URI like
// "data:image/png;base64,...." and returns the bytes plus a file extension.
func DecodeDataURI(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, "", fmt.Errorf("empty base64 string")
	}

	ext := ".jpg"
	if strings.HasPrefix(s, "data:") {
		meta, payload, ok := strings.Cut(s, ";base64,")
		if !ok {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		s = payload
		switch strings.TrimPrefix(meta, "data:") {
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		}
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.URLEncoding.DecodeString(s)
		if err != nil {
			return nil, "", fmt.Errorf("base64 decode failed: %w", err)
		}
	}
	return data, ext, nil
}

// LocalStorage writes uploads under Root and serves them from BaseURL.
type LocalStorage struct {
	Root    string
	BaseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	folder = filepath.Clean("/" + folder)[1:]
	name := UniqueName(filepath.Base(filename))

	dir := filepath.Join(s.Root, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return s.BaseURL + "/" + path.Join("uploads", filepath.ToSlash(folder), name), nil
}

// CloudinaryStorage uploads to a Cloudinary account.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	prefix string
}

// NewCloudinaryStorage reads credentials from a cloudinary:// URL.
func NewCloudinaryStorage(url, prefix string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	return &CloudinaryStorage{cld: cld, prefix: strings.Trim(prefix, "/")}, nil
}

func (s *CloudinaryStorage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	// the uploader needs a sized body
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	name := UniqueName(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:   path.Join(s.prefix, folder),
		PublicID: name,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}
