// SPDX-License-Identifier: GPL-2.0-or-later

//go:build tools

package main

import (
	_ "golang.org/x/tools/cmd/stringer"
)
