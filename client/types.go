package client

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PowerSignal is a power action accepted by the power endpoint.
type PowerSignal string

const (
	// PowerStart starts the server
	PowerStart PowerSignal = "start"
	// PowerStop gracefully stops the server
	PowerStop PowerSignal = "stop"
	// PowerRestart restarts the server
	PowerRestart PowerSignal = "restart"
	// PowerKill terminates the server process immediately
	PowerKill PowerSignal = "kill"
)

// Valid reports whether the signal is one the panel accepts.
func (p PowerSignal) Valid() bool {
	switch p {
	case PowerStart, PowerStop, PowerRestart, PowerKill:
		return true
	}
	return false
}

// Account holds the authenticated account's details.
type Account struct {
	ID        int    `json:"id"`
	Admin     bool   `json:"admin"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Language  string `json:"language"`
}

// Limits are a server's resource limits.
type Limits struct {
	Memory  int64 `json:"memory"`
	Swap    int64 `json:"swap"`
	Disk    int64 `json:"disk"`
	IO      int64 `json:"io"`
	CPU     int64 `json:"cpu"`
	Threads *int  `json:"threads"`
}

// FeatureLimits cap the number of auxiliary resources a server may own.
type FeatureLimits struct {
	Databases   int `json:"databases"`
	Allocations int `json:"allocations"`
	Backups     int `json:"backups"`
}

// SFTPDetails describe a server's SFTP endpoint.
type SFTPDetails struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

// Server is a server as seen through the Client API.
type Server struct {
	ServerOwner    bool          `json:"server_owner"`
	Identifier     string        `json:"identifier"`
	InternalID     int           `json:"internal_id"`
	UUID           uuid.UUID     `json:"uuid"`
	Name           string        `json:"name"`
	Node           string        `json:"node"`
	Description    string        `json:"description"`
	SFTPDetails    SFTPDetails   `json:"sftp_details"`
	Limits         Limits        `json:"limits"`
	FeatureLimits  FeatureLimits `json:"feature_limits"`
	Status         *string       `json:"status"`
	IsSuspended    bool          `json:"is_suspended"`
	IsInstalling   bool          `json:"is_installing"`
	IsTransferring bool          `json:"is_transferring"`
}

// Resources is a point-in-time usage sample for a running server.
type Resources struct {
	CurrentState string `json:"current_state"`
	IsSuspended  bool   `json:"is_suspended"`
	Usage        struct {
		MemoryBytes    int64   `json:"memory_bytes"`
		CPUAbsolute    float64 `json:"cpu_absolute"`
		DiskBytes      int64   `json:"disk_bytes"`
		NetworkRxBytes int64   `json:"network_rx_bytes"`
		NetworkTxBytes int64   `json:"network_tx_bytes"`
		Uptime         int64   `json:"uptime"`
	} `json:"resources"`
}

// Backup is a server backup.
type Backup struct {
	UUID         uuid.UUID  `json:"uuid"`
	Name         string     `json:"name"`
	IgnoredFiles []string   `json:"ignored_files"`
	SHA256Hash   string     `json:"sha256_hash"`
	Bytes        int64      `json:"bytes"`
	IsSuccessful bool       `json:"is_successful"`
	IsLocked     bool       `json:"is_locked"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// File is one entry of a directory listing.
type File struct {
	Name       string    `json:"name"`
	Mode       string    `json:"mode"`
	ModeBits   string    `json:"mode_bits"`
	Size       int64     `json:"size"`
	IsFile     bool      `json:"is_file"`
	IsSymlink  bool      `json:"is_symlink"`
	MimeType   string    `json:"mimetype"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// signedURL is the envelope attribute shape for download/upload URLs.
type signedURL struct {
	URL string `json:"url"`
}

// ListServersOptions narrow and paginate a server listing.
type ListServersOptions struct {
	Page    int `url:"page,omitempty"`
	PerPage int `url:"per_page,omitempty"`
	// Filter matches against server name, UUID and allocation.
	Filter string `url:"filter[*],omitempty"`
}

// CreateBackupOptions configure a new backup.
type CreateBackupOptions struct {
	Name string `json:"name,omitempty"`
	// Ignored is a newline-separated list of ignore patterns.
	Ignored  string `json:"ignored,omitempty"`
	IsLocked bool   `json:"is_locked,omitempty"`
}

// Rename is one from/to pair for a rename operation.
type Rename struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func validateSignal(signal PowerSignal) error {
	if !signal.Valid() {
		return fmt.Errorf("invalid power signal %q", signal)
	}
	return nil
}
