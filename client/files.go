package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pterolib/ptero"
	"github.com/pterolib/ptero/stream"
)

// ListFiles lists a directory of the server's filesystem.
func (c *Client) ListFiles(ctx context.Context, identifier, directory string) ([]File, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("servers", identifier, "files", "list"),
		Query:  url.Values{"directory": {directory}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files in %s: %w", directory, err)
	}
	files, _, err := ptero.UnwrapList[File](resp, ptero.ObjectFile)
	return files, err
}

// FileContents reads a file into memory. Use DownloadFile for large files.
func (c *Client) FileContents(ctx context.Context, identifier, file string) (string, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("servers", identifier, "files", "contents"),
		Query:  url.Values{"file": {file}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", file, err)
	}
	return string(resp.Body), nil
}

// WriteFile replaces a file's contents, creating it if necessary.
func (c *Client) WriteFile(ctx context.Context, identifier, file string, contents []byte) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   ptero.EscapePath("servers", identifier, "files", "write"),
		Query:  url.Values{"file": {file}},
		Raw:    contents,
	})
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", file, err)
	}
	return nil
}

// RenameFiles renames or moves files relative to root.
func (c *Client) RenameFiles(ctx context.Context, identifier, root string, renames []Rename) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPut,
		Path:   ptero.EscapePath("servers", identifier, "files", "rename"),
		Body: map[string]any{
			"root":  root,
			"files": renames,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to rename files: %w", err)
	}
	return nil
}

// CopyFile duplicates a file next to the original.
func (c *Client) CopyFile(ctx context.Context, identifier, location string) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   ptero.EscapePath("servers", identifier, "files", "copy"),
		Body:   map[string]string{"location": location},
	})
	if err != nil {
		return fmt.Errorf("failed to copy file %s: %w", location, err)
	}
	return nil
}

// DeleteFiles removes files relative to root.
func (c *Client) DeleteFiles(ctx context.Context, identifier, root string, files []string) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   ptero.EscapePath("servers", identifier, "files", "delete"),
		Body: map[string]any{
			"root":  root,
			"files": files,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	return nil
}

// CreateFolder creates a directory under root.
func (c *Client) CreateFolder(ctx context.Context, identifier, root, name string) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   ptero.EscapePath("servers", identifier, "files", "create-folder"),
		Body: map[string]string{
			"root": root,
			"name": name,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create folder %s: %w", name, err)
	}
	return nil
}

// CompressFiles archives files relative to root and returns the archive entry.
func (c *Client) CompressFiles(ctx context.Context, identifier, root string, files []string) (File, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   ptero.EscapePath("servers", identifier, "files", "compress"),
		Body: map[string]any{
			"root":  root,
			"files": files,
		},
	})
	if err != nil {
		return File{}, fmt.Errorf("failed to compress files: %w", err)
	}
	return ptero.UnwrapObject[File](resp, ptero.ObjectFile)
}

// DecompressFile unpacks an archive in place.
func (c *Client) DecompressFile(ctx context.Context, identifier, root, file string) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   ptero.EscapePath("servers", identifier, "files", "decompress"),
		Body: map[string]string{
			"root": root,
			"file": file,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to decompress %s: %w", file, err)
	}
	return nil
}

// DownloadFile obtains a signed URL for the file and opens a pull-based
// stream over it. The caller owns the returned reader and must close it;
// peak memory stays bounded by one chunk regardless of file size.
func (c *Client) DownloadFile(ctx context.Context, identifier, file string) (*stream.Reader, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("servers", identifier, "files", "download"),
		Query:  url.Values{"file": {file}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get download URL for %s: %w", file, err)
	}
	signed, err := ptero.UnwrapObject[signedURL](resp, ptero.ObjectSignedURL)
	if err != nil {
		return nil, err
	}

	body, err := c.transport.Download(ctx, signed.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", file, err)
	}
	return stream.NewReader(body.Body, stream.DefaultChunkSize), nil
}

// UploadFile streams src into directory under the given file name. The
// upload goes through a signed URL with a streaming multipart body, so src
// is never buffered wholesale.
func (c *Client) UploadFile(ctx context.Context, identifier, directory, name string, src io.Reader) error {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("servers", identifier, "files", "upload"),
	})
	if err != nil {
		return fmt.Errorf("failed to get upload URL: %w", err)
	}
	signed, err := ptero.UnwrapObject[signedURL](resp, ptero.ObjectSignedURL)
	if err != nil {
		return err
	}

	uploadURL := signed.URL
	if directory != "" {
		sep := "?"
		if u, err := url.Parse(uploadURL); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		uploadURL += sep + "directory=" + url.QueryEscape(directory)
	}

	up := stream.NewUpload("files", name, src)
	defer up.Close()

	if err := c.transport.Upload(ctx, uploadURL, up.ContentType(), up); err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}
