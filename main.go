// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/cmd"

func main() {
	cmd.Execute()
}
