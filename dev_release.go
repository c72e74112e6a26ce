// dev_release.go: Developer-level gate for release builds
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

//go:build !debug

package journal

// devEnabled is false in release builds: Dev and DevAt reduce to an
// immediate return no matter what threshold is configured.
const devEnabled = false
