package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// getS3Config config AWS dari env
func getS3Config() (aws.Config, error) {
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "ap-southeast-1" // default Singapore
	}

	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	if accessKey == "" || secretKey == "" {
		return aws.Config{}, fmt.Errorf("S3_ACCESS_KEY atau S3_SECRET_KEY belum diisi")
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("gagal load AWS config: %w", err)
	}
	return cfg, nil
}

// UploadProofImage upload bukti transfer crypto ke S3.
// Balikin object key-nya; yang disimpan ke DB cuma key, bukan byte
// gambarnya.
func UploadProofImage(ctx context.Context, userID uint64, filename string, file io.Reader, contentType string) (string, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return "", fmt.Errorf("S3_BUCKET belum diisi di environment")
	}

	cfg, err := getS3Config()
	if err != nil {
		return "", err
	}
	client := s3.NewFromConfig(cfg)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Key unik per upload biar nama file user tidak bisa saling timpa
	key := fmt.Sprintf("proofs/%d/%s-%s", userID, uuid.NewString(), filename)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload S3 gagal: %w", err)
	}

	return key, nil
}

// GenerateSignedURL presigned GET untuk nampilin bukti di detail transaksi
func GenerateSignedURL(objectKey string, expiry time.Duration) (string, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return "", fmt.Errorf("S3_BUCKET belum diisi di environment")
	}

	cfg, err := getS3Config()
	if err != nil {
		return "", err
	}

	presigner := s3.NewPresignClient(s3.NewFromConfig(cfg))
	presigned, err := presigner.PresignGetObject(context.TODO(),
		&s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(objectKey),
		},
		func(po *s3.PresignOptions) {
			po.Expires = expiry
		},
	)
	if err != nil {
		return "", fmt.Errorf("gagal presign URL S3: %w", err)
	}

	return presigned.URL, nil
}
