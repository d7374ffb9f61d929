// Package application implements the admin-scoped Pterodactyl Application
// API (endpoints under /api/application).
//
// Application API keys address resources by explicit panel-internal numeric
// IDs and require admin scope; the panel enforces the scope, not this
// library. The package covers server provisioning (including the distinct
// delete and force-delete operations), users, nodes, node allocations and
// the nest/egg catalogue.
//
// # Usage
//
//	app, err := application.New("https://panel.example.com", apiKey, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	server, err := app.CreateServer(ctx, application.CreateServerOptions{
//	    Name:        "build",
//	    User:        1,
//	    Egg:         4,
//	    DockerImage: "ghcr.io/pterodactyl/yolks:java_21",
//	    Startup:     "java -jar server.jar",
//	    Limits:      application.Limits{Memory: 2048, Disk: 10240, IO: 500, CPU: 200},
//	    Allocation:  application.AllocationSettings{Default: 17},
//	})
//
// All methods surface failures as *ptero.Error; callers branch on its Kind.
package application
