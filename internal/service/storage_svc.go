package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"shophub_v1_202608/pkg/config"
	"shophub_v1_202608/pkg/errs"
)

// ==================== 存储服务 ====================

// 允许的上传类型（商品图片）
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Storage 对象存储接口
type Storage interface {
	// Upload 上传文件，返回公开访问 URL
	Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error)
	// Delete 按 URL 删除文件
	Delete(ctx context.Context, url string) error
}

// StorageService 商品图片上传服务
// 校验大小和类型后委托给底层 provider，key 按租户隔离
type StorageService struct {
	provider    Storage
	maxFileSize int64
}

// NewStorageService 按配置创建存储服务
func NewStorageService(cfg *config.AppConfig) (*StorageService, error) {
	var provider Storage
	var err error
	switch cfg.StorageProvider {
	case "s3":
		provider, err = newS3Storage(cfg)
	case "local", "":
		provider, err = newLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.StorageProvider)
	}
	if err != nil {
		return nil, err
	}
	return &StorageService{provider: provider, maxFileSize: cfg.MaxFileSize}, nil
}

// UploadImage 上传商品图片，返回公开 URL
func (s *StorageService) UploadImage(ctx context.Context, tenantID int64, data []byte, filename string) (string, error) {
	if int64(len(data)) > s.maxFileSize {
		return "", errs.Validation(fmt.Sprintf("文件超过大小限制 %d 字节", s.maxFileSize))
	}
	contentType := http.DetectContentType(data)
	if !allowedImageTypes[contentType] {
		return "", errs.Validation("仅支持 jpeg/png/webp/gif 图片")
	}

	// key 以租户 ID 开头，保证对象空间隔离
	key := fmt.Sprintf("tenants/%d/%s", tenantID, filename)
	url, err := s.provider.Upload(ctx, data, key, contentType)
	if err != nil {
		return "", errs.Internal(fmt.Errorf("上传失败: %w", err))
	}
	return url, nil
}

// Delete 删除文件
func (s *StorageService) Delete(ctx context.Context, url string) error {
	return s.provider.Delete(ctx, url)
}

// ==================== S3 实现 ====================

type s3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	cdnDomain string
}

func newS3Storage(cfg *config.AppConfig) (*s3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载 AWS 配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// 自定义端点用于 MinIO / 兼容协议的对象存储
		if cfg.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Storage{
		client:    client,
		bucket:    cfg.StorageBucket,
		region:    cfg.StorageRegion,
		cdnDomain: cfg.StorageCDNDomain,
	}, nil
}

func (s *s3Storage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	key := s.generateKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传 S3 失败: %w", err)
	}

	return s.publicURL(key), nil
}

func (s *s3Storage) Delete(ctx context.Context, url string) error {
	key := s.extractKey(url)
	if key == "" {
		return fmt.Errorf("无法解析文件路径")
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// generateKey 保留目录部分，文件名换成 uuid，按日期归档
func (s *s3Storage) generateKey(filename string) string {
	dir := filepath.Dir(filename)
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	datePath := time.Now().Format("2006/01/02")
	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	if dir != "" && dir != "." {
		return fmt.Sprintf("%s/%s/%s", dir, datePath, name)
	}
	return fmt.Sprintf("%s/%s", datePath, name)
}

func (s *s3Storage) publicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *s3Storage) extractKey(url string) string {
	if s.cdnDomain != "" && strings.Contains(url, s.cdnDomain) {
		return strings.TrimPrefix(url, fmt.Sprintf("https://%s/", s.cdnDomain))
	}
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

// ==================== 本地存储（开发环境） ====================

type localStorage struct {
	baseDir string
	baseURL string
}

func newLocalStorage(cfg *config.AppConfig) (*localStorage, error) {
	baseDir := cfg.StorageLocalDir
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}

	baseURL := cfg.StorageEndpoint
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%s/uploads", cfg.ServerPort)
	}
	return &localStorage{baseDir: baseDir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *localStorage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	// 只保留目录部分（租户前缀），避免把外部文件名写进磁盘路径
	rel := filepath.Join(filepath.Dir(filename), uuid.NewString()+ext)

	path := filepath.Join(s.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.baseURL, filepath.ToSlash(rel)), nil
}

func (s *localStorage) Delete(ctx context.Context, url string) error {
	rel := strings.TrimPrefix(url, s.baseURL+"/")
	if rel == url || strings.Contains(rel, "..") {
		return fmt.Errorf("无法解析文件路径")
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
