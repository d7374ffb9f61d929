// Package client implements the user-scoped Pterodactyl Client API
// (endpoints under /api/client).
//
// Client API keys see only the servers granted to the authenticated account;
// methods therefore address servers by their short identifier rather than by
// panel-internal numeric IDs. The package covers account details, server
// listings and live resource usage, power signals and console commands,
// backups, the file manager including memory-bounded download and upload
// streaming, and the websocket console handshake.
//
// # Usage
//
//	cl, err := client.New("https://panel.example.com", apiKey, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	servers, _, err := cl.ListServers(ctx, client.ListServersOptions{})
//	for _, s := range servers {
//	    fmt.Println(s.Identifier, s.Name)
//	}
//
//	// Live console
//	ch, err := cl.Console(ctx, servers[0].Identifier)
//
// All methods surface failures as *ptero.Error; callers branch on its Kind.
package client
