package storage

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureImageFetcher decodes candidate images out of an Azure blob container.
// References take the form "container/path/to/blob.jpg".
type AzureImageFetcher struct {
	client *azblob.Client
}

// NewAzureImageFetcher creates a blob-backed image fetcher with shared-key
// credentials.
func NewAzureImageFetcher(accountName, accountKey string) (ImageFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid Azure credentials: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure client: %w", err)
	}

	return &AzureImageFetcher{client: client}, nil
}

// FetchImage downloads and decodes the blob named by ref.
func (a *AzureImageFetcher) FetchImage(ctx context.Context, ref string) (image.Image, error) {
	containerName, blobName, ok := strings.Cut(ref, "/")
	if !ok || containerName == "" || blobName == "" {
		return nil, fmt.Errorf("invalid blob reference %q: want container/blob", ref)
	}

	downloadResponse, err := a.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	img, _, err := image.Decode(retryReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode blob %s: %w", ref, err)
	}
	return img, nil
}
