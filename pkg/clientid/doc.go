// Package clientid establishes stable anonymous visitor identities over a
// single HTTP cookie.
//
// Unlike an authenticated session, a client identity carries no claims: it
// is an opaque 54-character token that lets the rest of the application
// correlate requests from the same browser. The token is composed of a
// 27-character random digest and a 27-character HMAC of that digest, both
// encoded with a cookie-safe base64 alphabet, so possession of a token
// that verifies implies it was minted by a manager holding the secret.
//
// # Overview
//
// The `Manager` type is the entry point. ClientID is the one call most
// handlers need: it returns the verified token from the request, or mints
// a new one and stages the Set-Cookie on the response. Tokens minted
// earlier in the same request are found again by later calls, so the
// identity is stable within a request as well as across requests.
//
// # Policies
//
// Two deployment policies restrict minting:
//
//   - third-party mode trusts a cookie issued by upstream infrastructure
//     verbatim and never writes one
//   - post-only mode refuses to mint on non-POST requests, which keeps
//     crawlers and prefetchers from collecting identities
//
// When either policy blocks minting, ClientID returns ErrMissingClientID
// and the caller decides whether to proceed anonymously or fail.
//
// # Cookie Lifetime
//
// The lifetime knob has three shapes: unset issues browser-session
// cookies, zero pins the expiry far in the future (effectively permanent),
// and a positive duration expires after that much inactivity. With a
// positive duration the cookie is rewritten on every request so the
// window slides with activity. Every cookie write is accompanied by
// anti-cache headers to keep shared caches from replaying one visitor's
// identity to another.
//
// # Usage
//
//	import "github.com/dmitrymomot/sessionkit/pkg/clientid"
//
//	man, err := clientid.New(
//	    clientid.WithCookieName("visitor_id"),
//	    clientid.WithSecret(os.Getenv("CLIENTID_SECRET")),
//	)
//	if err != nil { log.Fatal(err) }
//
//	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
//	    id, err := man.ClientID(w, r)
//	    if err != nil {
//	        // identity required but unavailable under current policy
//	    }
//	    _ = id
//	})
//
// # Configuration
//
// The `Config` struct allows the manager to be constructed from
// environment variables via github.com/caarlos0/env. Only non-zero fields
// are applied.
//
//	cfg := clientid.DefaultConfig()
//	_ = env.Parse(&cfg)
//	man, _ := clientid.NewFromConfig(cfg)
//
// # Error Handling
//
// Package-level sentinel errors such as `ErrMissingClientID` and
// `ErrInvalidCookieName` are returned for the common failure scenarios so
// callers can use `errors.Is`.
package clientid
