// Package console provides a persistent, bidirectional channel to one
// server's live console, carrying power and command actions outbound and
// console output, status changes and resource-usage samples inbound.
//
// A Channel is obtained either through client.Console, which performs the
// token handshake automatically, or by calling Connect with credentials from
// client.WebsocketCredentials. The channel never reconnects on its own: when
// the daemon reports the session token expired the channel transitions to
// StateDisconnected and the caller must handshake again.
//
// # Usage
//
//	ch, err := cl.Console(ctx, "d3aac109")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ch.Close()
//
//	ch.SetPowerState(console.PowerStart)
//	for ev := range ch.Events() {
//	    if out, ok := ev.(console.ConsoleOutput); ok {
//	        fmt.Println(out.Line)
//	    }
//	}
//
// One logical owner drives both halves of a Channel; the send methods and
// the event stream are individually safe to use from separate goroutines.
package console
