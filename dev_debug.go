// dev_debug.go: Developer-level gate for debug builds
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

//go:build debug

package journal

// devEnabled compiles the Developer emit path in. Debug builds only.
const devEnabled = true
