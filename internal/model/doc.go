package model

// Package model defines the request-scoped values shared by the selector, the
// extraction client, the metadata lister and both front ends: download
// requests, candidate lists, video metadata, progress events, outcomes and the
// error taxonomy. Nothing here outlives a single invocation.
