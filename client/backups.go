package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pterolib/ptero"
)

// ListBackups retrieves one page of a server's backups.
func (c *Client) ListBackups(ctx context.Context, identifier string) ([]Backup, ptero.Pagination, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("servers", identifier, "backups"),
	})
	if err != nil {
		return nil, ptero.Pagination{}, fmt.Errorf("failed to list backups for %s: %w", identifier, err)
	}
	return ptero.UnwrapList[Backup](resp, ptero.ObjectBackup)
}

// Backup retrieves one backup by UUID.
func (c *Client) Backup(ctx context.Context, identifier, backupUUID string) (Backup, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("servers", identifier, "backups", backupUUID),
	})
	if err != nil {
		return Backup{}, fmt.Errorf("failed to get backup %s: %w", backupUUID, err)
	}
	return ptero.UnwrapObject[Backup](resp, ptero.ObjectBackup)
}

// CreateBackup starts a new backup. The panel enforces the server's backup
// limit; exceeding it surfaces as a validation error.
func (c *Client) CreateBackup(ctx context.Context, identifier string, opts CreateBackupOptions) (Backup, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodPost,
		Path:   ptero.EscapePath("servers", identifier, "backups"),
		Body:   opts,
	})
	if err != nil {
		return Backup{}, fmt.Errorf("failed to create backup for %s: %w", identifier, err)
	}
	return ptero.UnwrapObject[Backup](resp, ptero.ObjectBackup)
}

// DeleteBackup removes a backup permanently.
func (c *Client) DeleteBackup(ctx context.Context, identifier, backupUUID string) error {
	_, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodDelete,
		Path:   ptero.EscapePath("servers", identifier, "backups", backupUUID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete backup %s: %w", backupUUID, err)
	}
	return nil
}

// BackupDownloadURL obtains a one-time signed URL for downloading a backup.
func (c *Client) BackupDownloadURL(ctx context.Context, identifier, backupUUID string) (string, error) {
	resp, err := c.transport.Do(ctx, ptero.Request{
		Method: http.MethodGet,
		Path:   ptero.EscapePath("servers", identifier, "backups", backupUUID, "download"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get backup download URL: %w", err)
	}
	signed, err := ptero.UnwrapObject[signedURL](resp, ptero.ObjectSignedURL)
	if err != nil {
		return "", err
	}
	return signed.URL, nil
}
