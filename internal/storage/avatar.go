package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscred "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/ajoca/Barberia/internal/config"
)

const (
	avatarMaxDim      = 512
	avatarWebPQuality = 85
)

// AvatarUploader converte o avatar enviado em base64 para webp
// redimensionado e sobe para o S3. Quando o bucket não está configurado,
// o handler mantém o base64 no banco (comportamento legado).
type AvatarUploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewAvatarUploader(cfg *config.Config) *AvatarUploader {
	if cfg.S3Bucket == "" {
		return nil
	}

	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			awscred.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	}

	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &AvatarUploader{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimSuffix(cfg.S3PublicURL, "/"),
	}
}

func (u *AvatarUploader) Enabled() bool {
	return u != nil
}

// Upload decodifica (aceita data-URI ou base64 puro), limita a 512px,
// re-encoda em webp e devolve a URL pública do objeto.
func (u *AvatarUploader) Upload(ctx context.Context, b64 string) (string, error) {
	raw := b64
	if i := strings.Index(raw, ","); i >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	img = scaleDown(img, avatarMaxDim)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: avatarWebPQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("avatars/%s.webp", uuid.NewString())

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	if u.publicURL != "" {
		return u.publicURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key), nil
}

func scaleDown(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
