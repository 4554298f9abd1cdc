package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hytech-racing/car-search-webserver/internal/models"
	"github.com/hytech-racing/car-search-webserver/internal/utils"
)

const ExportPrefix = "exports/"

const signedUrlExpiry = 10 * time.Minute

// S3Repository allows for the server to archive exports in S3
type S3Repository struct {
	s3_session *s3Session
}

// ExportObjectKey returns the key an export file is archived under, grouped by year and month.
// The file name is escaped into a single key segment so it always stays under exports/yyyy/mm/.
func ExportObjectKey(fileName string, at time.Time) string {
	return ExportPrefix + at.Format("2006") + "/" + at.Format("01") + "/" + utils.SafeFileName(fileName)
}

// exportFileName is the inverse of the escaping done by ExportObjectKey.
func exportFileName(key string) string {
	name := path.Base(key)
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

// WriteObjectReader writes an object to the S3 bucket from a reader.
func (s *S3Repository) WriteObjectReader(ctx context.Context, reader io.Reader, objectName string, contentType string) error {
	_, err := s.s3_session.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3_session.bucket),
		Key:         aws.String(objectName),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("couldn't upload file %v to %v:%v: %w",
			objectName, s.s3_session.bucket, objectName, err)
	}

	return nil
}

// ListExports returns every archived export, with a presigned download URL for each.
func (s *S3Repository) ListExports(ctx context.Context) ([]models.ArchivedExport, error) {
	exports := make([]models.ArchivedExport, 0)

	paginator := s3.NewListObjectsV2Paginator(s.s3_session.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.s3_session.bucket),
		Prefix: aws.String(ExportPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("couldn't list exports in %v: %w", s.s3_session.bucket, err)
		}

		for _, object := range page.Contents {
			key := aws.ToString(object.Key)
			signedUrl, err := s.GetSignedUrl(ctx, key)
			if err != nil {
				return nil, err
			}

			exports = append(exports, models.ArchivedExport{
				AwsBucket:    s.s3_session.bucket,
				Key:          key,
				FileName:     exportFileName(key),
				Size:         aws.ToInt64(object.Size),
				LastModified: aws.ToTime(object.LastModified),
				SignedUrl:    signedUrl,
			})
		}
	}

	return exports, nil
}

// GetSignedUrl responds with a presigned URL for objectPath valid for 10 minutes
func (s *S3Repository) GetSignedUrl(ctx context.Context, objectPath string) (string, error) {
	request, err := s.s3_session.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.s3_session.bucket),
		Key:    aws.String(objectPath),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = signedUrlExpiry
	})
	if err != nil {
		return "", fmt.Errorf("couldn't get a presigned request to get %v:%v: %w", s.s3_session.bucket, objectPath, err)
	}

	return request.URL, nil
}

func (s *S3Repository) Bucket() string {
	return s.s3_session.bucket
}
