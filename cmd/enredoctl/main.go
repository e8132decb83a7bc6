// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command enredoctl is the operator CLI: schema migrations and administrator accounts.
//
// # Usage
//
//	enredoctl migrate up
//	enredoctl migrate down --steps 1
//	enredoctl admin seed --username admin --password secret
//	enredoctl admin hash-password secret
//
// Connection settings come from the same environment as the server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
