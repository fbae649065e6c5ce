// Command walletgate serves and exercises the wallet connect gate.
//
// Commands
//
//   - serve          Serve the gate handle and the token-feed proxy over HTTP
//   - demo           Run the gate in the terminal with simulated wallets
//   - session show   Print the stored session record
//   - session clear  Delete the stored session record
//
// # HTTP API
//
//   - GET  /wallet/status         Gate snapshot: screen, progress, controls, connection
//   - POST /wallet/detect         Re-run provider detection
//   - POST /wallet/reauth         Forget the session and restart the loading screen
//   - POST /wallet/connect/:type  Connect phantom, solflare or metamask
//   - GET  /api/tokens            Token feed; ?source= picks a whitelisted upstream, ?limit= 1..50
//
// Token responses use the envelope {success, tokens, timestamp, source} and
// {success:false, error, tokens:[], timestamp} on failure. The feed is rate
// limited per client IP; Redis backs the limiter, the session store and the
// event stream when redis_url is set.
package main
