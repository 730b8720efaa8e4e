// Package crmclient provides the primary entry point for constructing a CRM
// API client that implements the crm.Client interface.
//
// It validates and normalises a crm.Config, selects a token accessor, and wires
// the HTTP transport under one generic resource client per resource kind.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/crm-client/pkg/crm"
//	  "github.com/fivetwenty-io/crm-client/pkg/crmclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := crmclient.New(ctx, &crm.Config{
//	    APIEndpoint: "https://crm.example.com",
//	    AccessToken: "eyJhbGciOi...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  page, err := cli.Customers().List(ctx, crm.NewQueryOptions().
//	    WithFilter("Name eq 'Acme'").
//	    WithTop(10).
//	    WithCount(true))
//	  if err != nil { log.Fatal(err) }
//	  _ = page
//	}
//
// # Tokens
//
// The client never acquires or refreshes tokens itself. Supply a
// crm.TokenAccessor, a static AccessToken, or OAuth2 client credentials (in
// which case golang.org/x/oauth2 performs the grant). Without any of these,
// every operation fails with crm.ErrUnauthenticated and sends nothing.
package crmclient
