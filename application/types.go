package application

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InstalledFlag is the container installed marker. Older panels serialize it
// as 0/1, newer ones as a boolean; both decode.
type InstalledFlag bool

// UnmarshalJSON implements json.Unmarshaler
func (f *InstalledFlag) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("1")):
		*f = true
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("0")), bytes.Equal(data, []byte("null")):
		*f = false
	default:
		return fmt.Errorf("invalid installed flag %s", data)
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (f InstalledFlag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

// Limits are a server's resource limits.
type Limits struct {
	Memory      int64 `json:"memory"`
	Swap        int64 `json:"swap"`
	Disk        int64 `json:"disk"`
	IO          int64 `json:"io"`
	CPU         int64 `json:"cpu"`
	Threads     *int  `json:"threads,omitempty"`
	OOMDisabled *bool `json:"oom_disabled,omitempty"`
}

// FeatureLimits cap the number of auxiliary resources a server may own.
type FeatureLimits struct {
	Databases   int `json:"databases"`
	Allocations int `json:"allocations"`
	Backups     int `json:"backups"`
}

// Container holds a server's runtime container settings.
type Container struct {
	StartupCommand string         `json:"startup_command"`
	Image          string         `json:"image"`
	Installed      InstalledFlag  `json:"installed"`
	Environment    map[string]any `json:"environment"`
}

// Server is a server as seen through the Application API.
type Server struct {
	ID            int           `json:"id"`
	ExternalID    *string       `json:"external_id"`
	UUID          uuid.UUID     `json:"uuid"`
	Identifier    string        `json:"identifier"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Status        *string       `json:"status"`
	Suspended     bool          `json:"suspended"`
	Limits        Limits        `json:"limits"`
	FeatureLimits FeatureLimits `json:"feature_limits"`
	User          int           `json:"user"`
	Node          int           `json:"node"`
	Allocation    int           `json:"allocation"`
	Nest          int           `json:"nest"`
	Egg           int           `json:"egg"`
	Container     Container     `json:"container"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// User is a panel user account.
type User struct {
	ID         int       `json:"id"`
	ExternalID *string   `json:"external_id"`
	UUID       uuid.UUID `json:"uuid"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Language   string    `json:"language"`
	RootAdmin  bool      `json:"root_admin"`
	TwoFactor  bool      `json:"2fa"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Node is a daemon host registered with the panel.
type Node struct {
	ID                 int       `json:"id"`
	UUID               uuid.UUID `json:"uuid"`
	Public             bool      `json:"public"`
	Name               string    `json:"name"`
	Description        *string   `json:"description"`
	LocationID         int       `json:"location_id"`
	FQDN               string    `json:"fqdn"`
	Scheme             string    `json:"scheme"`
	BehindProxy        bool      `json:"behind_proxy"`
	MaintenanceMode    bool      `json:"maintenance_mode"`
	Memory             int64     `json:"memory"`
	MemoryOverallocate int       `json:"memory_overallocate"`
	Disk               int64     `json:"disk"`
	DiskOverallocate   int       `json:"disk_overallocate"`
	UploadSize         int       `json:"upload_size"`
	DaemonListen       int       `json:"daemon_listen"`
	DaemonSFTP         int       `json:"daemon_sftp"`
	DaemonBase         string    `json:"daemon_base"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Allocation is an IP/port pair owned by a node.
type Allocation struct {
	ID       int     `json:"id"`
	IP       string  `json:"ip"`
	Alias    *string `json:"alias"`
	Port     int     `json:"port"`
	Notes    *string `json:"notes"`
	Assigned bool    `json:"assigned"`
}

// Nest is a grouping of eggs (service templates).
type Nest struct {
	ID          int       `json:"id"`
	UUID        uuid.UUID `json:"uuid"`
	Author      string    `json:"author"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Egg is a service template a server is provisioned from.
type Egg struct {
	ID          int       `json:"id"`
	UUID        uuid.UUID `json:"uuid"`
	Name        string    `json:"name"`
	Nest        int       `json:"nest"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	DockerImage string    `json:"docker_image"`
	Startup     string    `json:"startup"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListOptions paginate any Application API listing.
type ListOptions struct {
	Page    int `url:"page,omitempty"`
	PerPage int `url:"per_page,omitempty"`
}

// ListServersOptions narrow and paginate a server listing.
type ListServersOptions struct {
	Page       int    `url:"page,omitempty"`
	PerPage    int    `url:"per_page,omitempty"`
	FilterName string `url:"filter[name],omitempty"`
	FilterUUID string `url:"filter[uuid],omitempty"`
}

// ListUsersOptions narrow and paginate a user listing.
type ListUsersOptions struct {
	Page           int    `url:"page,omitempty"`
	PerPage        int    `url:"per_page,omitempty"`
	FilterEmail    string `url:"filter[email],omitempty"`
	FilterUsername string `url:"filter[username],omitempty"`
}

// AllocationSettings select the allocation a new server binds to.
type AllocationSettings struct {
	Default int `json:"default"`
}

// CreateServerOptions configure a new server.
type CreateServerOptions struct {
	Name        string            `json:"name"`
	User        int               `json:"user"`
	Egg         int               `json:"egg"`
	DockerImage string            `json:"docker_image"`
	Startup     string            `json:"startup"`
	Environment map[string]string `json:"environment"`
	Limits      Limits            `json:"limits"`
	// FeatureLimits must be present even when zero; the panel rejects
	// requests without it.
	FeatureLimits FeatureLimits      `json:"feature_limits"`
	Allocation    AllocationSettings `json:"allocation"`
	ExternalID    string             `json:"external_id,omitempty"`
	Description   string             `json:"description,omitempty"`
}

// UpdateServerDetailsOptions change a server's identifying details. Zero
// fields are left untouched.
type UpdateServerDetailsOptions struct {
	Name        string  `json:"name,omitempty"`
	User        int     `json:"user,omitempty"`
	ExternalID  *string `json:"external_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateServerBuildOptions change a server's resource allocation.
type UpdateServerBuildOptions struct {
	Allocation        int           `json:"allocation"`
	Limits            Limits        `json:"limits"`
	FeatureLimits     FeatureLimits `json:"feature_limits"`
	AddAllocations    []int         `json:"add_allocations,omitempty"`
	RemoveAllocations []int         `json:"remove_allocations,omitempty"`
	OOMDisabled       *bool         `json:"oom_disabled,omitempty"`
}

// CreateUserOptions configure a new user account.
type CreateUserOptions struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password,omitempty"`
	RootAdmin bool   `json:"root_admin,omitempty"`
	Language  string `json:"language,omitempty"`
}

// UpdateUserOptions change a user account. Zero fields are left untouched.
type UpdateUserOptions struct {
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Password  string `json:"password,omitempty"`
	RootAdmin *bool  `json:"root_admin,omitempty"`
	Language  string `json:"language,omitempty"`
}

// CreateNodeOptions configure a new node.
type CreateNodeOptions struct {
	Name               string  `json:"name"`
	Description        *string `json:"description,omitempty"`
	LocationID         int     `json:"location_id"`
	Public             *bool   `json:"public,omitempty"`
	FQDN               string  `json:"fqdn"`
	Scheme             string  `json:"scheme"`
	BehindProxy        *bool   `json:"behind_proxy,omitempty"`
	Memory             int64   `json:"memory"`
	MemoryOverallocate int     `json:"memory_overallocate"`
	Disk               int64   `json:"disk"`
	DiskOverallocate   int     `json:"disk_overallocate"`
	DaemonBase         string  `json:"daemon_base,omitempty"`
	DaemonSFTP         int     `json:"daemon_sftp"`
	DaemonListen       int     `json:"daemon_listen"`
	MaintenanceMode    *bool   `json:"maintenance_mode,omitempty"`
	UploadSize         *int    `json:"upload_size,omitempty"`
}

// UpdateNodeOptions change a node. Zero fields are left untouched.
type UpdateNodeOptions struct {
	Name               string  `json:"name,omitempty"`
	Description        *string `json:"description,omitempty"`
	LocationID         int     `json:"location_id,omitempty"`
	Public             *bool   `json:"public,omitempty"`
	FQDN               string  `json:"fqdn,omitempty"`
	Scheme             string  `json:"scheme,omitempty"`
	BehindProxy        *bool   `json:"behind_proxy,omitempty"`
	Memory             int64   `json:"memory,omitempty"`
	MemoryOverallocate *int    `json:"memory_overallocate,omitempty"`
	Disk               int64   `json:"disk,omitempty"`
	DiskOverallocate   *int    `json:"disk_overallocate,omitempty"`
	DaemonBase         string  `json:"daemon_base,omitempty"`
	DaemonSFTP         int     `json:"daemon_sftp,omitempty"`
	DaemonListen       int     `json:"daemon_listen,omitempty"`
	MaintenanceMode    *bool   `json:"maintenance_mode,omitempty"`
	UploadSize         *int    `json:"upload_size,omitempty"`
}

// CreateAllocationsOptions add ports on an IP to a node. Ports accepts
// single ports ("25565") and ranges ("25565-25570").
type CreateAllocationsOptions struct {
	IP    string   `json:"ip"`
	Alias string   `json:"alias,omitempty"`
	Ports []string `json:"ports"`
}

// NodeConfiguration is the daemon configuration blob for a node, handed to
// a wings instance. It is not enveloped like other resources.
type NodeConfiguration struct {
	Debug   bool      `json:"debug"`
	UUID    uuid.UUID `json:"uuid"`
	TokenID string    `json:"token_id"`
	Token   string    `json:"token"`
	API     struct {
		Host string `json:"host"`
		Port int    `json:"port"`
		SSL  struct {
			Enabled bool   `json:"enabled"`
			Cert    string `json:"cert"`
			Key     string `json:"key"`
		} `json:"ssl"`
		UploadLimit int `json:"upload_limit"`
	} `json:"api"`
	System struct {
		Data string `json:"data"`
		SFTP struct {
			BindPort int `json:"bind_port"`
		} `json:"sftp"`
	} `json:"system"`
	Remote string `json:"remote"`
}
