package upload

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Ensures AzureUploader implements Uploader interface.
var _ Uploader = (*AzureUploader)(nil)

// Azure Blob store backed uploader
type AzureUploader struct {
	client *azblob.Client
	// `container` in the storage account where photos are saved
	container string
}

// `container` must be part of the storage account provided
func NewAzureUploader(
	accountName, accountKey, serviceURL, container string,
) (*AzureUploader, error) {
	if container == "" {
		return nil, errors.New("container is required")
	}

	cred, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, err
	}

	return NewAzureUploaderFromClient(client, container), nil
}

// `container` must be part of the storage account of `client`
func NewAzureUploaderFromClient(client *azblob.Client, container string) *AzureUploader {
	return &AzureUploader{
		client:    client,
		container: container,
	}
}

func (u *AzureUploader) Upload(
	ctx context.Context,
	reader io.ReadSeeker,
	length int64,
	key, contentType string,
) error {
	ctx, span := tracer.Start(ctx, "AzureUploader.Upload", trace.WithAttributes(
		attribute.String("key", key),
		attribute.Int64("length", length),
	))
	defer span.End()

	_, err := u.client.UploadStream(ctx, u.container, key, reader, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upload reader")
		return err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "uploaded blob")
	return nil
}

func isBlobNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.ErrorCode == string(bloberror.BlobNotFound)
}

func (u *AzureUploader) Exists(ctx context.Context, key string) (bool, error) {
	ctx, span := tracer.Start(ctx, "AzureUploader.Exists", trace.WithAttributes(
		attribute.String("key", key),
	))
	defer span.End()

	_, err := u.client.ServiceClient().
		NewContainerClient(u.container).
		NewBlobClient(key).
		GetProperties(ctx, nil)
	if err != nil {
		if isBlobNotFound(err) {
			span.RecordError(nil)
			span.SetStatus(codes.Ok, "did not find blob")
			return false, nil
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check blob exists")
		return false, err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "found blob")
	return true, nil
}

func (u *AzureUploader) Delete(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "AzureUploader.Delete", trace.WithAttributes(
		attribute.String("key", key),
	))
	defer span.End()

	_, err := u.client.DeleteBlob(ctx, u.container, key, nil)
	if err != nil && !isBlobNotFound(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete blob")
		return err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "deleted blob")
	return nil
}

func (u *AzureUploader) PresignedReadURL(
	ctx context.Context,
	key string,
	duration time.Duration,
) (string, error) {
	_, span := tracer.Start(ctx, "AzureUploader.PresignedReadURL", trace.WithAttributes(
		attribute.String("key", key),
		attribute.String("duration", duration.String()),
	))
	defer span.End()

	presigned, err := u.client.ServiceClient().
		NewContainerClient(u.container).
		NewBlobClient(key).
		GetSASURL(sas.BlobPermissions{Read: true}, time.Now().Add(duration), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get presigned url")
		return "", err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "got presigned url")
	return presigned, nil
}
